package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/config"
	"github.com/you/blogsvc/internal/infrastructure/database"
	"github.com/you/blogsvc/internal/infrastructure/repositories"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stores holds the collections of the configured backend and what must be
// closed on shutdown
type stores struct {
	accounts domain.AccountStore
	posts    domain.PostStore

	sql   *gorm.DB
	mongo *mongo.Client
}

// openStores connects to the configured database and prepares its schema:
// tables for SQL drivers, indexes for mongo.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, mongoDatabase(cfg))
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("database ready", zap.String("driver", cfg.DatabaseDriver), zap.String("database", db.Name()))
		return &stores{
			accounts: repositories.NewMongoAccountStore(db),
			posts:    repositories.NewMongoPostStore(db),
			mongo:    client,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		gdb, err := database.OpenSQL(cfg.DatabaseDriver, cfg.DSN, logger.Warn)
		if err != nil {
			return nil, err
		}
		if cfg.DatabaseDriver == config.DriverSQLite {
			// sqlite allows a single writer; in-memory databases are per connection
			if sqlDB, err := gdb.DB(); err == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
		if err := database.AutoMigrate(gdb); err != nil {
			_ = database.CloseSQL(gdb)
			return nil, err
		}
		log.Info("database ready", zap.String("driver", cfg.DatabaseDriver))
		return &stores{
			accounts: repositories.NewGormAccountStore(gdb),
			posts:    repositories.NewGormPostStore(gdb),
			sql:      gdb,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDriver, cfg.DatabaseDriver)
	}
}

func (s *stores) close() error {
	if s.mongo != nil {
		return s.mongo.Disconnect(context.Background())
	}
	if s.sql != nil {
		return database.CloseSQL(s.sql)
	}
	return nil
}

func mongoDatabase(cfg *config.Config) string {
	if cfg.MongoDatabase != "" {
		return cfg.MongoDatabase
	}
	return "blogsvc"
}

// Migrate prepares the configured database and exits
func Migrate(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	s, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	return s.close()
}

func openRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client, err := database.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Info("redis not configured, email resend throttling disabled")
	}
	return client, nil
}
