package app

import (
	"context"
	"fmt"
	"time"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	dbpostgres "skill-matrix/internal/database/postgres"
	"skill-matrix/internal/database/schema"
	dbsqlite "skill-matrix/internal/database/sqlite"
	"skill-matrix/internal/infrastructure/cache"

	"go.uber.org/zap"
)

// Container holds the process-wide dependencies: config, the selected
// storage driver with a provisioned schema, the cache and the logger.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *zap.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := schema.Provision(ctx, db, schemaDialect(cfg)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("provision schema: %w", err)
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func openDatabase(ctx context.Context, cfg config.Config) (database.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := dbsqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return db, nil
	default:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	}
}

func schemaDialect(cfg config.Config) schema.Dialect {
	if cfg.Database.Driver == "sqlite" {
		return schema.DialectSQLite
	}
	return schema.DialectPostgres
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.App.Environment == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
