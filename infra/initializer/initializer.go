// Package initializer builds the application dependencies from
// configuration: database, flow snapshot store, providers and logger.
package initializer

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/propvest/propvest/infra"
	infraflowstore "github.com/propvest/propvest/infra/flowstore"
	infraprovider "github.com/propvest/propvest/infra/provider"
	infrarepository "github.com/propvest/propvest/infra/repository"
	"github.com/propvest/propvest/pkg/app"
	"github.com/propvest/propvest/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := infrarepository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	deps.Uow = infrarepository.NewUoW(db)

	// Redis keeps the flow snapshots across restarts; without it the flows
	// live in process memory, which is fine for development.
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts.PoolSize = cfg.Redis.PoolSize
		opts.DialTimeout = cfg.Redis.DialTimeout
		opts.ReadTimeout = cfg.Redis.ReadTimeout
		opts.WriteTimeout = cfg.Redis.WriteTimeout
		deps.FlowStore = infraflowstore.NewRedisStore(
			redis.NewClient(opts),
			cfg.Redis.KeyPrefix,
			cfg.Plan.SnapshotTTL,
			logger,
		)
		logger.Info("Flow snapshots stored in Redis", "prefix", cfg.Redis.KeyPrefix)
	} else {
		deps.FlowStore = infraflowstore.NewMemoryStore()
		logger.Warn("Flow snapshots stored in memory; they will not survive a restart")
	}

	deps.ProfileCreator = infraprovider.NewDBProfileCreator(deps.Uow, logger)
	deps.Verifier = infraprovider.NewMockDocumentVerifier()
	deps.Payments = infraprovider.NewMockPaymentConfirmer()

	return deps, nil
}
