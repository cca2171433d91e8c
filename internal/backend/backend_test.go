package backend

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	_ "modernc.org/sqlite"

	"recondash/internal/config"
	"recondash/internal/model"
	"recondash/internal/repository/sqlstore"
	"recondash/internal/snapshot"
)

func TestLazy_RetriesUntilOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	calls := 0
	open := func(context.Context) (*sql.DB, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("disk not mounted")
		}
		return db, nil
	}
	core, logs := observer.New(zap.InfoLevel)
	l := newLazy("test", open, sqlstore.SQLite, zap.New(core))
	ctx := context.Background()

	_, err = l.get(ctx)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "disk not mounted")

	first, err := l.get(ctx)
	require.NoError(t, err)
	second, err := l.get(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, logs.FilterMessage("backend open failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("backend opened").Len())

	require.NoError(t, l.Close())
	assert.NoError(t, l.Close(), "closing twice is a no-op")
}

func TestLazy_PingDuringClose(t *testing.T) {
	open := func(context.Context) (*sql.DB, error) {
		db, mock, err := sqlmock.New()
		if err == nil {
			mock.ExpectClose()
		}
		return db, err
	}
	l := newLazy("test", open, sqlstore.SQLite, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			// A closed handle may report an error but must not panic.
			_ = l.Ping(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = l.Close()
		}()
	}
	wg.Wait()

	assert.NoError(t, l.Ping(ctx))
	assert.NoError(t, l.Close())
}

func TestLazy_QueryErrorsWhenUnavailable(t *testing.T) {
	l := newLazy("test", func(context.Context) (*sql.DB, error) {
		return nil, errors.New("boom")
	}, sqlstore.SQLite, nil)
	ctx := context.Background()

	_, err := l.KPICounts(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = l.ThreeWay(ctx, 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = l.Heatmap(ctx, 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = l.CaseFlow(ctx, "", 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = l.Exceptions(ctx, 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, l.Ping(ctx), ErrUnavailable)
}

func TestOpen_SelectsAdapter(t *testing.T) {
	b, err := Open(&config.AppConfig{Mode: config.ModeServer, Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: "x.db"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.ModeServer, b.Mode())
	assert.IsType(t, &Server{}, b)

	b, err = Open(&config.AppConfig{Mode: config.ModeEmbedded}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.ModeEmbedded, b.Mode())

	_, err = Open(&config.AppConfig{Mode: "neither"}, nil)
	assert.ErrorContains(t, err, `unknown mode "neither"`)

	_, err = Open(&config.AppConfig{Mode: config.ModeServer, Database: config.DatabaseConfig{Driver: "oracle"}}, nil)
	assert.Error(t, err)
}

func TestNewEmbedded_RequiresEndpointForStorage(t *testing.T) {
	_, err := NewEmbedded(config.SnapshotConfig{}, config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "only-one"}, nil)
	assert.ErrorContains(t, err, "init object storage")
}

func memOpen() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func TestEmbedded_LoadsSnapshotsOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	sku := filepath.Join(dir, "sku.csv")
	require.NoError(t, os.WriteFile(sku, []byte("SKU,inv_match_status,stock_qty,Final_Location,first_seen,last_seen\n"+
		"A,PASS,5,DSV Indoor,2024-01-02,2024-03-01\n"+
		"B,FAIL,,MOSB,2024-02-10,\n"), 0o600))

	opened := 0
	openDB := func() (*sql.DB, error) {
		opened++
		return memOpen()
	}
	e := newEmbedded(config.SnapshotConfig{SKU: sku}, snapshot.NewFetcher(nil), openDB, nil)
	t.Cleanup(func() { e.Close() })
	ctx := context.Background()

	counts, err := e.KPICounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 1, counts.Mismatched)
	assert.Equal(t, 1, counts.WithStock)

	caps, err := e.Capabilities(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Capabilities{}, caps)

	flow, err := e.CaseFlow(ctx, "A", 100)
	require.NoError(t, err)
	require.Len(t, flow, 2)
	assert.Equal(t, model.SourceSimulated, flow[0].SourceType)

	require.NoError(t, e.Ping(ctx))
	assert.Equal(t, 1, opened)
}

func TestEmbedded_LoadFailureClosesAndRetries(t *testing.T) {
	dir := t.TempDir()
	sku := filepath.Join(dir, "sku.csv")

	opened := 0
	openDB := func() (*sql.DB, error) {
		opened++
		return memOpen()
	}
	e := newEmbedded(config.SnapshotConfig{SKU: sku}, snapshot.NewFetcher(nil), openDB, nil)
	t.Cleanup(func() { e.Close() })
	ctx := context.Background()

	_, err := e.KPICounts(ctx)
	require.ErrorIs(t, err, ErrUnavailable)

	require.NoError(t, os.WriteFile(sku, []byte("SKU,inv_match_status\nA,PASS\n"), 0o600))
	counts, err := e.KPICounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, 2, opened)
}

func TestEmbedded_InfiniteCellsLoadAsMissing(t *testing.T) {
	dir := t.TempDir()
	sku := filepath.Join(dir, "sku.csv")
	require.NoError(t, os.WriteFile(sku, []byte("SKU,inv_match_status,stock_qty,err_gw,err_cbm,first_seen\n"+
		"A,FAIL,5,inf,inf,2024-01-05\n"), 0o600))

	e := newEmbedded(config.SnapshotConfig{SKU: sku}, snapshot.NewFetcher(nil), memOpen, nil)
	t.Cleanup(func() { e.Close() })
	ctx := context.Background()

	rows, err := e.ThreeWay(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].ErrGW)
	assert.Equal(t, 0.0, rows[0].ErrCBM)

	cells, err := e.Heatmap(ctx, 10)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, 5.0, cells[0].Stock)
	assert.Equal(t, "2024-01-01", cells[0].Month)
}
