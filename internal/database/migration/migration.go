package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Timestamps are stored as TEXT in the "2006-01-02 15:04:05" layout so that
// strftime can bucket them.
var skuSteps = []migrationStep{
	{
		Name: "create_table_sku_master",
		SQL: `CREATE TABLE IF NOT EXISTS sku_master (
  sku              TEXT    PRIMARY KEY,
  inv_match_status TEXT,
  stock_qty        REAL,
  err_gw           REAL,
  err_cbm          REAL,
  gw               REAL,
  cbm              REAL,
  final_location   TEXT,
  flow_code        INTEGER,
  first_seen       TEXT,
  last_seen        TEXT,
  sku_sqm          REAL,
  hvdc_code_norm   TEXT
);`,
	},
	{
		Name: "create_index_sku_master_final_location",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_sku_master_final_location ON sku_master (final_location);`,
	},
}

var eventSteps = []migrationStep{
	{
		Name: "create_table_events",
		SQL: `CREATE TABLE IF NOT EXISTS events (
  sku             TEXT    NOT NULL,
  status_location TEXT,
  flow_code       INTEGER,
  ts              TEXT    NOT NULL
);`,
	},
	{
		Name: "create_index_events_sku_ts",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_events_sku_ts ON events (sku, ts);`,
	},
}

var exceptionSteps = []migrationStep{
	{
		Name: "create_table_exceptions",
		SQL: `CREATE TABLE IF NOT EXISTS exceptions (
  sku              TEXT PRIMARY KEY,
  hvdc_code_norm   TEXT,
  invoice_raw_code TEXT,
  err_gw           REAL,
  err_cbm          REAL,
  match_status     TEXT,
  gw_sumpicked     REAL,
  cbm_sumpicked    REAL
);`,
	},
}

// Options selects the optional tables to create.
type Options struct {
	Events     bool
	Exceptions bool
}

// EnsureSchema creates sku_master and, when requested, the optional tables in
// a SQLite database. Tables that already exist are skipped.
func EnsureSchema(ctx context.Context, db *sql.DB, opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	log = log.With(zap.String("component", "database"))
	log.Info("db_migration_check", zap.String("status", "starting"))

	groups := []struct {
		sentinel string
		enabled  bool
		steps    []migrationStep
	}{
		{"sku_master", true, skuSteps},
		{"events", opts.Events, eventSteps},
		{"exceptions", opts.Exceptions, exceptionSteps},
	}

	for _, g := range groups {
		if !g.enabled {
			continue
		}
		exists, err := tableExists(ctx, db, g.sentinel)
		if err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("table", g.sentinel),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("failed to check sentinel table %s: %w", g.sentinel, err)
		}
		if exists {
			log.Info("db_migration_skip",
				zap.String("status", "success"),
				zap.String("table", g.sentinel),
			)
			continue
		}
		if err := runSteps(ctx, db, g.steps, log); err != nil {
			return err
		}
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

func runSteps(ctx context.Context, db *sql.DB, steps []migrationStep, log *zap.Logger) error {
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`, name,
	).Scan(&exists)
	return exists, err
}
