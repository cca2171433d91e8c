package backend

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"recondash/internal/config"
	"recondash/internal/database"
	"recondash/internal/repository/sqlstore"
	"recondash/internal/snapshot"
	"recondash/internal/storage"
)

// Embedded runs an in-process engine filled from snapshot files on first use.
type Embedded struct {
	*lazy
}

var _ Backend = (*Embedded)(nil)

// NewEmbedded builds the embedded backend. Object storage is only set up when
// an endpoint is configured.
func NewEmbedded(src config.SnapshotConfig, mc config.MinIOConfig, log *zap.Logger) (*Embedded, error) {
	var store storage.Storage
	if mc.Endpoint != "" {
		s, err := storage.NewMinIO(mc)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		store = s
	}
	return newEmbedded(src, snapshot.NewFetcher(store), database.NewEmbedded, log), nil
}

func newEmbedded(src config.SnapshotConfig, f *snapshot.Fetcher, openDB func() (*sql.DB, error), log *zap.Logger) *Embedded {
	if log == nil {
		log = zap.NewNop()
	}
	loader := snapshot.NewLoader(f, log.Named("snapshot"))
	open := func(ctx context.Context) (*sql.DB, error) {
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		if _, err := loader.Load(ctx, db, src); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}
	return &Embedded{lazy: newLazy("embedded", open, sqlstore.SQLite, log)}
}

func (*Embedded) Mode() config.Mode { return config.ModeEmbedded }
