package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/config"
	"github.com/notezipper/notezipper-go/internal/repository"
	"github.com/notezipper/notezipper-go/internal/service"
)

const connectTimeout = 10 * time.Second

// stores are the account and note stores of the configured backend.
type stores struct {
	Users service.UserStore
	Notes service.NoteStore
	Close func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (stores, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := repository.NewMySQL(ctx, cfg.DatabaseDSN)
		if err != nil {
			return stores{}, fmt.Errorf("connecting to mysql: %w", err)
		}
		if err := repository.MigrateMySQL(ctx, db); err != nil {
			db.Close()
			return stores{}, fmt.Errorf("migrating mysql schema: %w", err)
		}
		logger.Info("connected to mysql")
		return mysqlStores(db), nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return stores{
			Users: repository.NewMemoryUserRepository(),
			Notes: repository.NewMemoryNoteRepository(),
			Close: func(context.Context) error { return nil },
		}, nil

	default:
		client, db, err := repository.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, fmt.Errorf("connecting to mongodb: %w", err)
		}
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			client.Disconnect(context.Background())
			return stores{}, fmt.Errorf("creating mongodb indexes: %w", err)
		}
		logger.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))
		return mongoStores(client, db), nil
	}
}

func mysqlStores(db *sql.DB) stores {
	return stores{
		Users: repository.NewUserRepository(db),
		Notes: repository.NewNoteRepository(db),
		Close: func(context.Context) error { return db.Close() },
	}
}

func mongoStores(client *mongo.Client, db *mongo.Database) stores {
	return stores{
		Users: repository.NewMongoUserRepository(db),
		Notes: repository.NewMongoNoteRepository(db),
		Close: client.Disconnect,
	}
}
