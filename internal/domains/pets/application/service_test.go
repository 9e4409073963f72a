package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	petmemory "github.com/Apurer/petshow-api/internal/domains/pets/adapters/memory"
	pettypes "github.com/Apurer/petshow-api/internal/domains/pets/application/types"
	"github.com/Apurer/petshow-api/internal/domains/pets/ports"
)

// recordingCleaner keeps a release only when remove succeeds, like a committed transaction.
type recordingCleaner struct {
	released []int64
	err      error
}

func (c *recordingCleaner) ReleasePet(ctx context.Context, petID int64, remove func(context.Context) error) error {
	if c.err != nil {
		return c.err
	}
	if err := remove(ctx); err != nil {
		return err
	}
	c.released = append(c.released, petID)
	return nil
}

type failingDeleteRepo struct {
	*petmemory.Repository
	err error
}

func (r failingDeleteRepo) Delete(context.Context, int64) error {
	return r.err
}

func ptr[T any](v T) *T { return &v }

func addRex(t *testing.T, svc *Service, ownerID int64) *pettypes.PetProjection {
	t.Helper()
	proj, err := svc.AddPet(context.Background(), pettypes.AddPetInput{
		OwnerID: ownerID,
		PetMutationInput: pettypes.PetMutationInput{
			Name:     ptr("Rex"),
			SizeID:   ptr(2),
			WeightKg: ptr(18.0),
			Sex:      ptr("M"),
			BreedIDs: ptr([]int64{4, 4, 1}),
		},
	})
	require.NoError(t, err)
	return proj
}

func TestAddPet_Success(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	proj := addRex(t, svc, 1)
	require.Equal(t, int64(1), proj.Entity.ID)
	require.Equal(t, int64(1), proj.Entity.OwnerID)
	require.Equal(t, []int64{1, 4}, proj.Entity.BreedIDs)
	require.False(t, proj.Metadata.CreatedAt.IsZero())
}

func TestAddPet_InvalidInput(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	_, err := svc.AddPet(context.Background(), pettypes.AddPetInput{OwnerID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddPet(context.Background(), pettypes.AddPetInput{
		OwnerID:          1,
		PetMutationInput: pettypes.PetMutationInput{Name: ptr("Rex"), SizeID: ptr(9), WeightKg: ptr(3.0)},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePet_UpdatesMetadata(t *testing.T) {
	repo := petmemory.NewRepository()
	repo.WithClock(time.Now)
	svc := NewService(repo)

	proj := addRex(t, svc, 1)
	updated, err := svc.UpdatePet(context.Background(), pettypes.UpdatePetInput{
		OwnerID:          1,
		ID:               proj.Entity.ID,
		PetMutationInput: pettypes.PetMutationInput{Name: ptr("Rexy"), Muzzle: ptr(true)},
	})
	require.NoError(t, err)
	require.Equal(t, "Rexy", updated.Entity.Name)
	require.True(t, updated.Entity.Muzzle)
	require.Equal(t, proj.Metadata.CreatedAt, updated.Metadata.CreatedAt)
	require.GreaterOrEqual(t, updated.Metadata.UpdatedAt, proj.Metadata.UpdatedAt)
}

func TestGetPet_HidesOtherOwners(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	proj := addRex(t, svc, 1)

	_, err := svc.GetPet(context.Background(), pettypes.PetIdentifier{OwnerID: 2, ID: proj.Entity.ID})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeletePet_ReleasesParticipationFirst(t *testing.T) {
	repo := petmemory.NewRepository()
	cleaner := &recordingCleaner{}
	svc := NewService(repo, WithParticipationCleaner(cleaner))
	proj := addRex(t, svc, 1)

	err := svc.DeletePet(context.Background(), pettypes.PetIdentifier{OwnerID: 1, ID: proj.Entity.ID})
	require.NoError(t, err)
	require.Equal(t, []int64{proj.Entity.ID}, cleaner.released)

	_, err = repo.GetByID(context.Background(), proj.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeletePet_KeepsPetWhenReleaseFails(t *testing.T) {
	repo := petmemory.NewRepository()
	svc := NewService(repo, WithParticipationCleaner(&recordingCleaner{err: errors.New("store down")}))
	proj := addRex(t, svc, 1)

	err := svc.DeletePet(context.Background(), pettypes.PetIdentifier{OwnerID: 1, ID: proj.Entity.ID})
	require.Error(t, err)

	_, err = repo.GetByID(context.Background(), proj.Entity.ID)
	require.NoError(t, err)
}

func TestDeletePet_FailedDeleteKeepsParticipation(t *testing.T) {
	repo := failingDeleteRepo{Repository: petmemory.NewRepository(), err: errors.New("db down")}
	cleaner := &recordingCleaner{}
	svc := NewService(repo, WithParticipationCleaner(cleaner))
	proj := addRex(t, svc, 1)

	err := svc.DeletePet(context.Background(), pettypes.PetIdentifier{OwnerID: 1, ID: proj.Entity.ID})
	require.ErrorContains(t, err, "db down")
	require.Empty(t, cleaner.released)

	_, err = repo.GetByID(context.Background(), proj.Entity.ID)
	require.NoError(t, err)
}

func TestDeletePet_WithoutCleaner(t *testing.T) {
	repo := petmemory.NewRepository()
	svc := NewService(repo)
	proj := addRex(t, svc, 1)

	require.NoError(t, svc.DeletePet(context.Background(), pettypes.PetIdentifier{OwnerID: 1, ID: proj.Entity.ID}))
	_, err := repo.GetByID(context.Background(), proj.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
