// Package sqlstore implements repository.ReconRepository over database/sql
// for SQLite and PostgreSQL. It uses parameterized queries and contains no
// business logic.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"recondash/internal/model"
	"recondash/internal/pivot"
	"recondash/internal/repository"
)

// Table names.
const (
	TableSKU        = "sku_master"
	TableEvents     = "events"
	TableExceptions = "exceptions"
)

// Store is a database/sql implementation of repository.ReconRepository.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     *zap.Logger

	mu   sync.Mutex
	caps *model.Capabilities
}

// New creates a Store. A nil logger discards output.
func New(db *sql.DB, d Dialect, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, dialect: d, log: log}
}

var _ repository.ReconRepository = (*Store)(nil)

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Capabilities probes for the optional tables once. A failed probe is not cached.
func (s *Store) Capabilities(ctx context.Context) (model.Capabilities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caps != nil {
		return *s.caps, nil
	}

	var caps model.Capabilities
	var err error
	if caps.Events, err = s.tableExists(ctx, TableEvents); err != nil {
		return model.Capabilities{}, err
	}
	if caps.Exceptions, err = s.tableExists(ctx, TableExceptions); err != nil {
		return model.Capabilities{}, err
	}
	s.caps = &caps
	s.log.Info("capability probe",
		zap.String("dialect", s.dialect.Name),
		zap.Bool("events", caps.Events),
		zap.Bool("exceptions", caps.Exceptions),
	)
	return caps, nil
}

func (s *Store) tableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, s.dialect.Rebind(s.dialect.TableExists), name).Scan(&exists); err != nil {
		return false, fmt.Errorf("probe table %s: %w", name, err)
	}
	return exists, nil
}

// KPICounts returns the raw KPI counters in one pass over sku_master.
func (s *Store) KPICounts(ctx context.Context) (model.KPICounts, error) {
	const q = `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN inv_match_status IS NULL OR inv_match_status <> 'PASS' THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT flow_code),
			COUNT(stock_qty),
			COUNT(sku_sqm),
			COUNT(DISTINCT final_location)
		FROM sku_master
	`
	var c model.KPICounts
	if err := s.db.QueryRowContext(ctx, q).Scan(
		&c.Total,
		&c.Mismatched,
		&c.FlowStages,
		&c.WithStock,
		&c.WithSQM,
		&c.Locations,
	); err != nil {
		return model.KPICounts{}, fmt.Errorf("kpi query: %w", err)
	}
	return c, nil
}

// ThreeWay left-joins exceptions when present. A SKU with no exception row
// gets zero errors. Without the exceptions table the sku_master errors are used.
func (s *Store) ThreeWay(ctx context.Context, limit int) ([]model.ThreeWayRow, error) {
	caps, err := s.Capabilities(ctx)
	if err != nil {
		return nil, err
	}

	errGW, errCBM, join := "COALESCE(s.err_gw, 0)", "COALESCE(s.err_cbm, 0)", ""
	if caps.Exceptions {
		errGW, errCBM = "COALESCE(e.err_gw, 0)", "COALESCE(e.err_cbm, 0)"
		join = "LEFT JOIN exceptions e ON e.sku = s.sku"
	}
	q := fmt.Sprintf(`
		SELECT s.sku, COALESCE(s.inv_match_status, ''), s.stock_qty, %[1]s, %[2]s,
			s.gw, s.cbm, s.final_location, s.flow_code
		FROM sku_master s
		%[3]s
		ORDER BY ABS(%[1]s) DESC, ABS(%[2]s) DESC, s.sku
		LIMIT ?
	`, errGW, errCBM, join)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), limit)
	if err != nil {
		return nil, fmt.Errorf("3-way query: %w", err)
	}
	defer rows.Close()

	out := make([]model.ThreeWayRow, 0)
	for rows.Next() {
		var (
			r              model.ThreeWayRow
			stock, gw, cbm sql.NullFloat64
			loc            sql.NullString
			flow           sql.NullInt64
		)
		if err := rows.Scan(&r.SKU, &r.MatchStatus, &stock, &r.ErrGW, &r.ErrCBM, &gw, &cbm, &loc, &flow); err != nil {
			return nil, fmt.Errorf("3-way scan: %w", err)
		}
		if zeroNonFinite(&r.ErrGW, &r.ErrCBM) {
			s.warnNonFinite("3way", r.SKU)
		}
		r.StockQty, r.GW, r.CBM = floatPtr(stock), floatPtr(gw), floatPtr(cbm)
		r.FinalLocation, r.FlowCode = stringPtr(loc), intPtr(flow)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("3-way rows: %w", err)
	}
	return out, nil
}

// ThreeWayTotals counts every SKU and its verdict without a cap.
func (s *Store) ThreeWayTotals(ctx context.Context) (model.ThreeWayTotals, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN inv_match_status = 'PASS' THEN 1 ELSE 0 END), 0)
		FROM sku_master
	`
	var t model.ThreeWayTotals
	if err := s.db.QueryRowContext(ctx, q).Scan(&t.Total, &t.Pass); err != nil {
		return model.ThreeWayTotals{}, fmt.Errorf("3-way count: %w", err)
	}
	t.Fail = t.Total - t.Pass
	return t, nil
}

// Heatmap groups SKUs by location and by month of first appearance.
func (s *Store) Heatmap(ctx context.Context, limit int) ([]model.HeatmapCell, error) {
	q := fmt.Sprintf(`
		SELECT COALESCE(final_location, 'Unknown') AS loc,
			%s AS ym,
			SUM(COALESCE(stock_qty, 0)),
			SUM(COALESCE(sku_sqm, 0)),
			COUNT(*)
		FROM sku_master
		GROUP BY 1, 2
		ORDER BY 1, 2
		LIMIT ?
	`, s.dialect.Month())

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), limit)
	if err != nil {
		return nil, fmt.Errorf("heatmap query: %w", err)
	}
	defer rows.Close()

	out := make([]model.HeatmapCell, 0)
	for rows.Next() {
		var (
			c          model.HeatmapCell
			ym         sql.NullString
			stock, sqm sql.NullFloat64
		)
		if err := rows.Scan(&c.Location, &ym, &stock, &sqm, &c.SKUCount); err != nil {
			return nil, fmt.Errorf("heatmap scan: %w", err)
		}
		c.Month = DefaultMonth
		if ym.Valid {
			c.Month = ym.String
		}
		// SQLite turns a NaN sum into NULL.
		c.Stock, c.SQM = stock.Float64, sqm.Float64
		if zeroNonFinite(&c.Stock, &c.SQM) {
			s.warnNonFinite("heatmap", c.Location)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("heatmap rows: %w", err)
	}
	return out, nil
}

// CaseFlow reads the events table when present and reconstructs events otherwise.
func (s *Store) CaseFlow(ctx context.Context, sku string, limit int) ([]model.FlowEvent, error) {
	caps, err := s.Capabilities(ctx)
	if err != nil {
		return nil, err
	}
	if caps.Events {
		return s.recordedFlow(ctx, sku, limit)
	}
	return s.simulatedFlow(ctx, sku, limit)
}

func (s *Store) recordedFlow(ctx context.Context, sku string, limit int) ([]model.FlowEvent, error) {
	where, args := skuFilter(sku)
	q := `SELECT sku, status_location, flow_code, ts FROM events` + where + ` ORDER BY sku, ts LIMIT ?`

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("events query: %w", err)
	}
	defer rows.Close()

	out := make([]model.FlowEvent, 0)
	for rows.Next() {
		var (
			e    = model.FlowEvent{SourceType: model.SourceEvent}
			loc  sql.NullString
			flow sql.NullInt64
			ts   sql.NullString
		)
		if err := rows.Scan(&e.SKU, &loc, &flow, &ts); err != nil {
			return nil, fmt.Errorf("events scan: %w", err)
		}
		t, err := parseTime(ts)
		if err != nil {
			s.log.Warn("event skipped", zap.String("sku", e.SKU), zap.Error(err))
			continue
		}
		if t == nil {
			continue
		}
		e.TS, e.StatusLocation, e.FlowCode = *t, stringPtr(loc), intPtr(flow)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events rows: %w", err)
	}
	return out, nil
}

func (s *Store) simulatedFlow(ctx context.Context, sku string, limit int) ([]model.FlowEvent, error) {
	where, args := skuFilter(sku)
	q := `SELECT sku, final_location, flow_code, first_seen, last_seen FROM sku_master` + where + ` ORDER BY sku LIMIT ?`

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("flow synthesis query: %w", err)
	}
	defer rows.Close()

	out := make([]model.FlowEvent, 0)
	for rows.Next() {
		var (
			m           model.SKU
			loc         sql.NullString
			flow        sql.NullInt64
			first, last sql.NullString
		)
		if err := rows.Scan(&m.SKU, &loc, &flow, &first, &last); err != nil {
			return nil, fmt.Errorf("flow synthesis scan: %w", err)
		}
		m.FirstSeen = s.timeOrNil(m.SKU, "first_seen", first)
		m.LastSeen = s.timeOrNil(m.SKU, "last_seen", last)
		m.FinalLocation, m.FlowCode = stringPtr(loc), intPtr(flow)
		out = append(out, pivot.SynthesizeFlow(m)...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flow synthesis rows: %w", err)
	}

	slices.SortStableFunc(out, func(a, b model.FlowEvent) int {
		if c := strings.Compare(a.SKU, b.SKU); c != 0 {
			return c
		}
		return a.TS.Compare(b.TS)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Exceptions reads the exceptions table when present. Otherwise every
// sku_master row that is not PASS is a candidate.
func (s *Store) Exceptions(ctx context.Context, limit int) ([]model.ExceptionRow, error) {
	caps, err := s.Capabilities(ctx)
	if err != nil {
		return nil, err
	}

	q := `
		SELECT sku, hvdc_code_norm, invoice_raw_code, COALESCE(err_gw, 0), COALESCE(err_cbm, 0),
			COALESCE(match_status, ''), COALESCE(gw_sumpicked, 0), COALESCE(cbm_sumpicked, 0)
		FROM exceptions
		ORDER BY ABS(COALESCE(err_gw, 0)) DESC, ABS(COALESCE(err_cbm, 0)) DESC, sku
		LIMIT ?
	`
	if !caps.Exceptions {
		q = `
		SELECT sku, hvdc_code_norm, CAST(NULL AS TEXT), COALESCE(err_gw, 0), COALESCE(err_cbm, 0),
			COALESCE(inv_match_status, ''), COALESCE(gw, 0), COALESCE(cbm, 0)
		FROM sku_master
		WHERE inv_match_status IS NULL OR inv_match_status <> 'PASS'
		ORDER BY ABS(COALESCE(err_gw, 0)) DESC, ABS(COALESCE(err_cbm, 0)) DESC, sku
		LIMIT ?
	`
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), limit)
	if err != nil {
		return nil, fmt.Errorf("exceptions query: %w", err)
	}
	defer rows.Close()

	out := make([]model.ExceptionRow, 0)
	for rows.Next() {
		var (
			r         model.ExceptionRow
			hvdc, inv sql.NullString
		)
		if err := rows.Scan(&r.SKU, &hvdc, &inv, &r.ErrGW, &r.ErrCBM, &r.MatchStatus, &r.GWSumPicked, &r.CBMSumPicked); err != nil {
			return nil, fmt.Errorf("exceptions scan: %w", err)
		}
		if zeroNonFinite(&r.ErrGW, &r.ErrCBM, &r.GWSumPicked, &r.CBMSumPicked) {
			s.warnNonFinite("exceptions", r.SKU)
		}
		r.HVDCCode, r.InvoiceCode = stringPtr(hvdc), stringPtr(inv)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exceptions rows: %w", err)
	}
	return out, nil
}

// timeOrNil reads an unparseable timestamp as absent.
func (s *Store) timeOrNil(sku, col string, ns sql.NullString) *time.Time {
	t, err := parseTime(ns)
	if err != nil {
		s.log.Warn("timestamp ignored", zap.String("sku", sku), zap.String("column", col), zap.Error(err))
		return nil
	}
	return t
}

func (s *Store) warnNonFinite(view, key string) {
	s.log.Warn("non-finite value read as zero", zap.String("view", view), zap.String("key", key))
}

func skuFilter(sku string) (string, []any) {
	if sku == "" {
		return "", nil
	}
	return " WHERE sku = ?", []any{sku}
}
