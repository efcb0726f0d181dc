package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/config"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/courseitda/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/courseitda/internal/infrastructure/postgres"
)

// OpenStore builds the store backend named by cfg.StoreDriver and registers its health check.
// The returned func releases the backend's connections.
func OpenStore(ctx context.Context, cfg *config.Config, pub event.Publisher, logger *logrus.Logger) (repository.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		AddCheck("postgres", pool.Ping)
		return pginfra.NewStore(pool, pub), pool.Close, nil

	case config.StoreMongo:
		client, err := mongoinfra.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongoinfra.EnsureIndexes(ctx, db, logger); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		AddCheck("mongo", func(ctx context.Context) error { return client.Ping(ctx, nil) })
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongoinfra.NewStore(db, pub), closeFn, nil

	default:
		if logger != nil {
			logger.Warn("using the in-memory store; data is lost on restart")
		}
		return memory.New(pub), func() {}, nil
	}
}
