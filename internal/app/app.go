package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dan9191/fintrack/internal/cache"
	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/integrations/ecb"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/service"
	"github.com/Dan9191/fintrack/internal/storage"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

const connectTimeout = 10 * time.Second

// App holds the connections shared by the API server and the CLI
type App struct {
	DB      *sql.DB
	Mongo   *mongo.Client
	Redis   *redis.Client
	Files   *storage.GCS
	Users   *repository.Repository
	Docs    *repository.Mongo
	Service *service.Service

	log *logrus.Logger
}

// NewLogger builds the JSON logger at the configured level
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// Setup connects Postgres and Mongo, which are required, and the optional Redis and
// object storage. A failing optional backend is logged and left out.
func Setup(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	a := &App{log: logger}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cli, err := mongo.Connect(pingCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	a.Mongo = cli
	if err := cli.Ping(pingCtx, nil); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	if cfg.RedisAddress != "" {
		if a.Redis, err = cache.Connect(pingCtx, cfg.RedisAddress); err != nil {
			logger.Warnf("Redis unavailable, running without cache and locks: %v", err)
		}
	}

	integrations := service.Integrations{
		Cache:  cache.NewRedis(a.Redis),
		Mailer: email.NewSender(cfg, logger),
		Rates:  ecb.NewClient(cfg, logger),
	}
	if cfg.Storage.Bucket != "" {
		files, err := storage.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsJSON)
		if err != nil {
			logger.Warnf("Receipt storage unavailable: %v", err)
		} else {
			a.Files = files
			integrations.Files = files
		}
	}

	a.Users = repository.NewRepository(db)
	a.Docs = repository.NewMongo(cli, cfg.Mongo.Database)
	a.Service = service.NewService(service.NewStores(a.Users, a.Docs), integrations, logger, cfg)
	return a, nil
}

// Migrate creates the users schema and the Mongo indexes
func (a *App) Migrate(ctx context.Context) error {
	if err := a.Users.Migrate(ctx); err != nil {
		return err
	}
	return a.Docs.EnsureIndexes(ctx)
}

func (a *App) Close(ctx context.Context) {
	if a.Files != nil {
		if err := a.Files.Close(); err != nil {
			a.log.Warnf("failed to close storage client: %v", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.log.Warnf("failed to close redis: %v", err)
		}
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			a.log.Warnf("failed to disconnect mongo: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.log.Warnf("failed to close database: %v", err)
		}
	}
}
