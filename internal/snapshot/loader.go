package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recondash/internal/config"
	"recondash/internal/database/migration"
	"recondash/internal/model"
)

// timeLayout matches the TEXT timestamp layout of the embedded schema.
const timeLayout = "2006-01-02 15:04:05"

// Summary counts the rows loaded per dataset.
type Summary struct {
	SKUs       int
	Events     int
	Exceptions int
}

// Loader fills the embedded engine from snapshot files.
type Loader struct {
	fetcher *Fetcher
	log     *zap.Logger
}

func NewLoader(f *Fetcher, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{fetcher: f, log: log}
}

// Load fetches every configured snapshot concurrently, creates the tables and
// inserts all rows in one transaction. A missing SKU source leaves sku_master empty.
// The optional tables exist only when their source is configured.
func (l *Loader) Load(ctx context.Context, db *sql.DB, src config.SnapshotConfig) (Summary, error) {
	start := time.Now()

	var (
		skus       []model.SKU
		events     []model.Event
		exceptions []model.Exception
	)

	g, gctx := errgroup.WithContext(ctx)
	if src.SKU != "" {
		g.Go(func() error {
			data, format, err := l.fetch(gctx, src.SKU)
			if err != nil {
				return err
			}
			skus, err = DecodeSKUs(data, format)
			return err
		})
	}
	if src.Events != "" {
		g.Go(func() error {
			data, format, err := l.fetch(gctx, src.Events)
			if err != nil {
				return err
			}
			events, err = DecodeEvents(data, format)
			return err
		})
	}
	if src.Exceptions != "" {
		g.Go(func() error {
			data, format, err := l.fetch(gctx, src.Exceptions)
			if err != nil {
				return err
			}
			exceptions, err = DecodeExceptions(data, format)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	opts := migration.Options{Events: src.Events != "", Exceptions: src.Exceptions != ""}
	if err := migration.EnsureSchema(ctx, db, opts, l.log); err != nil {
		return Summary{}, err
	}

	if err := l.insert(ctx, db, skus, events, exceptions); err != nil {
		return Summary{}, err
	}

	sum := Summary{SKUs: len(skus), Events: len(events), Exceptions: len(exceptions)}
	l.log.Info("snapshots loaded",
		zap.Int("skus", sum.SKUs),
		zap.Int("events", sum.Events),
		zap.Int("exceptions", sum.Exceptions),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return sum, nil
}

func (l *Loader) fetch(ctx context.Context, raw string) ([]byte, string, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, "", err
	}
	start := time.Now()
	data, err := l.fetcher.Fetch(ctx, loc)
	if err != nil {
		l.log.Error("snapshot fetch failed", zap.String("source", loc.Raw), zap.Error(err))
		return nil, "", err
	}
	l.log.Info("snapshot fetched",
		zap.String("source", loc.Raw),
		zap.String("kind", string(loc.Kind)),
		zap.Int("bytes", len(data)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return data, loc.Format, nil
}

func (l *Loader) insert(ctx context.Context, db *sql.DB, skus []model.SKU, events []model.Event, exceptions []model.Exception) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if len(skus) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO sku_master
			(sku, inv_match_status, stock_qty, err_gw, err_cbm, gw, cbm, final_location, flow_code, first_seen, last_seen, sku_sqm, hvdc_code_norm)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare sku insert: %w", err)
		}
		defer stmt.Close()
		for _, s := range skus {
			if _, err := stmt.ExecContext(ctx,
				s.SKU, nullString(s.MatchStatus), val(s.StockQty), val(s.ErrGW), val(s.ErrCBM), val(s.GW), val(s.CBM),
				val(s.FinalLocation), val(s.FlowCode), formatTime(s.FirstSeen), formatTime(s.LastSeen), val(s.SQM), val(s.HVDCCode),
			); err != nil {
				return fmt.Errorf("insert sku %s: %w", s.SKU, err)
			}
		}
	}

	if len(events) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO events (sku, status_location, flow_code, ts) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare event insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range events {
			if _, err := stmt.ExecContext(ctx, e.SKU, val(e.StatusLocation), val(e.FlowCode), e.TS.UTC().Format(timeLayout)); err != nil {
				return fmt.Errorf("insert event %s: %w", e.SKU, err)
			}
		}
	}

	if len(exceptions) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO exceptions
			(sku, hvdc_code_norm, invoice_raw_code, err_gw, err_cbm, match_status, gw_sumpicked, cbm_sumpicked)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare exception insert: %w", err)
		}
		defer stmt.Close()
		for _, x := range exceptions {
			if _, err := stmt.ExecContext(ctx,
				x.SKU, val(x.HVDCCode), val(x.InvoiceCode), val(x.ErrGW), val(x.ErrCBM),
				val(x.MatchStatus), val(x.GWSumPicked), val(x.CBMSumPicked),
			); err != nil {
				return fmt.Errorf("insert exception %s: %w", x.SKU, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// val turns a nil pointer into SQL NULL.
func val[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
