package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"skill-exchange/internal/ai/gemini"
	"skill-exchange/internal/config"
	"skill-exchange/internal/database"
	"skill-exchange/internal/database/migration"
	dbpostgres "skill-exchange/internal/database/postgres"
	"skill-exchange/internal/database/seeder"
	"skill-exchange/internal/domain/matching"
	"skill-exchange/internal/infrastructure/cache"
	"skill-exchange/internal/ws"
	"skill-exchange/migrations"

	"go.uber.org/zap"
)

// Container owns the long-lived infrastructure of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
	Hub    *ws.Hub
	Oracle *matching.Oracle

	stopHub context.CancelFunc
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{FS: migrationSource(cfg.Database), Logger: logger}
	if err := runner.Run(connectCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Database.RunSeeders {
		if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}).Run(connectCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	redis := cache.NewRedis(connectCtx, cfg.Redis, logger)

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(logger)
	go hub.Run(hubCtx)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Redis:   redis,
		Hub:     hub,
		Oracle:  newOracle(ctx, cfg.Matching, redis, logger),
		stopHub: stopHub,
	}, nil
}

func migrationSource(cfg config.DatabaseConfig) fs.FS {
	if cfg.MigrationsDir != "" {
		return os.DirFS(cfg.MigrationsDir)
	}
	return migrations.FS
}

// newOracle falls back to exact matching when the provider cannot be built.
func newOracle(ctx context.Context, cfg config.MatchingConfig, store matching.VerdictStore, logger *zap.Logger) *matching.Oracle {
	var gen matching.TextGenerator
	if cfg.SemanticAvailable() {
		g, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("semantic matching unavailable, using exact matching", zap.Error(err))
		} else {
			gen = g
		}
	}

	oracle := matching.NewOracle(gen, matching.NewVerdictCache(cfg.CacheSize), matching.OracleConfig{
		Semantic:    gen != nil,
		CallTimeout: cfg.CallTimeout,
		MinInterval: cfg.MinInterval,
	}, matching.WithVerdictStore(store), matching.WithLogger(logger))

	logger.Info("skill matcher ready", zap.Bool("ai_enabled", oracle.SemanticEnabled()))
	return oracle
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
