package content

import (
	"context"
	"fmt"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/db"
)

// Backend is a store that can also seed documents under fixed ids.
type Backend interface {
	Store
	Seeder
}

// Open connects the backend selected by cfg.ContentBackend. The returned
// close function releases its connections.
func Open(ctx context.Context, cfg *config.Config) (Backend, func(context.Context) error, error) {
	switch cfg.ContentBackend {
	case config.BackendSanity:
		store := NewSanityStore(SanityOptions{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			Token:      cfg.SanityToken,
			UseCDN:     cfg.SanityUseCDN,
		})
		return store, func(context.Context) error { return nil }, nil

	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, cols, err := db.Connect(connectCtx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := db.EnsureIndexes(ctx, cols); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return NewMongoStore(cols), client.Disconnect, nil

	case config.BackendSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) error { return store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown content backend %q", cfg.ContentBackend)
}
