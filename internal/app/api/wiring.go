package api

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/petshow-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/petshow-api/internal/domains/catalog/ports"
	ownermemory "github.com/Apurer/petshow-api/internal/domains/owners/adapters/memory"
	ownerobs "github.com/Apurer/petshow-api/internal/domains/owners/adapters/observability"
	ownerpostgres "github.com/Apurer/petshow-api/internal/domains/owners/adapters/persistence/postgres"
	ownerapp "github.com/Apurer/petshow-api/internal/domains/owners/application"
	ownerports "github.com/Apurer/petshow-api/internal/domains/owners/ports"
	participationdirectory "github.com/Apurer/petshow-api/internal/domains/participation/adapters/directory"
	participationmemory "github.com/Apurer/petshow-api/internal/domains/participation/adapters/memory"
	participationobs "github.com/Apurer/petshow-api/internal/domains/participation/adapters/observability"
	participationpostgres "github.com/Apurer/petshow-api/internal/domains/participation/adapters/persistence/postgres"
	participationapp "github.com/Apurer/petshow-api/internal/domains/participation/application"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
	petsmemory "github.com/Apurer/petshow-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/petshow-api/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/petshow-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/Apurer/petshow-api/internal/domains/pets/application"
	petsports "github.com/Apurer/petshow-api/internal/domains/pets/ports"
	"github.com/Apurer/petshow-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/petshow-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/petshow-api/internal/platform/postgres"
)

// Services holds the decorated use cases of every bounded context.
type Services struct {
	Owners        ownerports.Service
	Catalog       catalogports.Service
	Pets          petsports.Service
	Participation participationports.Service
}

type repositories struct {
	owners      ownerports.Repository
	catalog     catalogports.Repository
	pets        petsports.Repository
	tx          participationports.Transactor
	idempotency participationports.IdempotencyStore
}

// BuildServices connects storage and assembles the services. Without a reachable
// POSTGRES_DSN every context runs on its in-memory adapter. The returned cleanup
// closes the database pool.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func()) {
	logger := instruments.Logger
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger, platformpostgres.WithPool(cfg.DBPool()))
	if db != nil && cfg.AutoMigrate {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			logger.Warn("schema migration failed, falling back to in-memory repositories", slog.String("error", err.Error()))
			cleanup()
			db, cleanup = nil, func() {}
		}
	}
	repos := buildRepositories(db, cfg)
	if db != nil {
		logger.Info("repositories configured with postgres")
	}

	participation := participationobs.New(
		participationapp.NewService(
			repos.tx,
			participationdirectory.NewEventCatalog(repos.catalog),
			participationdirectory.NewPetDirectory(repos.pets),
			participationapp.WithStrictEligibility(cfg.StrictEligibility),
			participationapp.WithIdempotencyStore(repos.idempotency),
		),
		participationobs.WithLogger(logger),
		participationobs.WithTracer(instruments.Tracer("internal.participation.application")),
		participationobs.WithMeter(instruments.Meter("internal.participation.application")),
	)
	services := &Services{
		Owners: ownerobs.New(
			ownerapp.NewService(repos.owners),
			ownerobs.WithLogger(logger),
			ownerobs.WithTracer(instruments.Tracer("internal.owners.application")),
			ownerobs.WithMeter(instruments.Meter("internal.owners.application")),
		),
		Catalog: catalogobs.New(
			catalogapp.NewService(repos.catalog),
			catalogobs.WithLogger(logger),
			catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
			catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
		),
		Pets: petsobs.New(
			petsapp.NewService(repos.pets, petsapp.WithParticipationCleaner(participation)),
			petsobs.WithLogger(logger),
			petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
			petsobs.WithMeter(instruments.Meter("internal.pets.application")),
		),
		Participation: participation,
	}
	return services, cleanup
}

func buildRepositories(db *gorm.DB, cfg Config) repositories {
	if db == nil {
		store := participationmemory.NewStore()
		store.WithTimeout(cfg.TxTimeout)
		return repositories{
			owners:      ownermemory.NewRepository(),
			catalog:     catalogmemory.NewRepository(),
			pets:        petsmemory.NewRepository(),
			tx:          store,
			idempotency: participationmemory.NewIdempotencyStore(),
		}
	}
	return repositories{
		owners:      ownerpostgres.NewRepository(db),
		catalog:     catalogpostgres.NewRepository(db),
		pets:        petspostgres.NewRepository(db),
		tx:          participationpostgres.NewTransactor(db, participationpostgres.WithTxTimeout(cfg.TxTimeout)),
		idempotency: participationpostgres.NewIdempotencyStore(db),
	}
}
