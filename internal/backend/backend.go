// Package backend provides the two interchangeable query backends. Each
// opens its database handle lazily on first use and keeps it for the
// lifetime of the process.
package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"recondash/internal/config"
	"recondash/internal/model"
	"recondash/internal/repository"
	"recondash/internal/repository/sqlstore"
)

// ErrUnavailable reports that the backend could not be opened.
var ErrUnavailable = errors.New("backend unavailable")

// Backend is a repository plus lifecycle hooks.
type Backend interface {
	repository.ReconRepository
	Mode() config.Mode
	Ping(ctx context.Context) error
	Close() error
}

type openFunc func(ctx context.Context) (*sql.DB, error)

// lazy opens its handle once. A failed open is retried on the next call.
type lazy struct {
	mu      sync.Mutex
	open    openFunc
	dialect sqlstore.Dialect
	log     *zap.Logger

	db    *sql.DB
	store *sqlstore.Store
}

func newLazy(name string, open openFunc, d sqlstore.Dialect, log *zap.Logger) *lazy {
	if log == nil {
		log = zap.NewNop()
	}
	return &lazy{open: open, dialect: d, log: log.Named(name)}
}

func (l *lazy) get(ctx context.Context) (*sqlstore.Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store != nil {
		return l.store, nil
	}

	db, err := l.open(ctx)
	if err != nil {
		l.log.Error("backend open failed", zap.String("dialect", l.dialect.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	l.log.Info("backend opened", zap.String("dialect", l.dialect.Name))
	l.db = db
	l.store = sqlstore.New(db, l.dialect, l.log)
	return l.store, nil
}

func (l *lazy) Ping(ctx context.Context) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

func (l *lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db, l.store = nil, nil
	return err
}

func (l *lazy) KPICounts(ctx context.Context) (model.KPICounts, error) {
	s, err := l.get(ctx)
	if err != nil {
		return model.KPICounts{}, err
	}
	return s.KPICounts(ctx)
}

func (l *lazy) ThreeWay(ctx context.Context, limit int) ([]model.ThreeWayRow, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.ThreeWay(ctx, limit)
}

func (l *lazy) ThreeWayTotals(ctx context.Context) (model.ThreeWayTotals, error) {
	s, err := l.get(ctx)
	if err != nil {
		return model.ThreeWayTotals{}, err
	}
	return s.ThreeWayTotals(ctx)
}

func (l *lazy) Heatmap(ctx context.Context, limit int) ([]model.HeatmapCell, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.Heatmap(ctx, limit)
}

func (l *lazy) CaseFlow(ctx context.Context, sku string, limit int) ([]model.FlowEvent, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.CaseFlow(ctx, sku, limit)
}

func (l *lazy) Exceptions(ctx context.Context, limit int) ([]model.ExceptionRow, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.Exceptions(ctx, limit)
}

func (l *lazy) Capabilities(ctx context.Context) (model.Capabilities, error) {
	s, err := l.get(ctx)
	if err != nil {
		return model.Capabilities{}, err
	}
	return s.Capabilities(ctx)
}

// Open builds the backend selected by cfg.Mode. Nothing is opened yet.
func Open(cfg *config.AppConfig, log *zap.Logger) (Backend, error) {
	switch cfg.Mode {
	case config.ModeServer:
		return NewServer(cfg.Database, log)
	case config.ModeEmbedded:
		return NewEmbedded(cfg.Snapshots, cfg.MinIO, log)
	}
	return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
}
