//go:build integration
// +build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/ports"
	"github.com/Apurer/petshow-api/internal/platform/postgres/pgtest"
)

func TestPostgresRepository_SaveWithBreeds(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pet, err := domain.NewPet(0, 7, "Buddy", catalogdomain.SizeMedium, 14.5)
	require.NoError(t, err)
	pet.ReplaceBreeds([]int64{3, 1})

	saved, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	require.NotZero(t, saved.Entity.ID)
	assert.Equal(t, []int64{1, 3}, saved.Entity.BreedIDs)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	saved.Entity.ReplaceBreeds([]int64{2})
	require.NoError(t, saved.Entity.Rename("Buddy II"))
	updated, err := repo.Save(ctx, saved.Entity)
	require.NoError(t, err)
	assert.Equal(t, "Buddy II", updated.Entity.Name)
	assert.Equal(t, []int64{2}, updated.Entity.BreedIDs)
}

func TestPostgresRepository_ListByOwnerAndDelete(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Ace", "Bolt"} {
		pet, err := domain.NewPet(0, 1, name, catalogdomain.SizeSmall, 5)
		require.NoError(t, err)
		_, err = repo.Save(ctx, pet)
		require.NoError(t, err)
	}
	other, err := domain.NewPet(0, 2, "Cleo", catalogdomain.SizeLarge, 30)
	require.NoError(t, err)
	_, err = repo.Save(ctx, other)
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ace", list[0].Entity.Name)
	assert.Empty(t, list[0].Entity.BreedIDs)

	require.NoError(t, repo.Delete(ctx, list[0].Entity.ID))
	_, err = repo.GetByID(ctx, list[0].Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, list[0].Entity.ID), ports.ErrNotFound)
}
