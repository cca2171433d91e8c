package snapshot

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"

	"recondash/internal/model"
)

// Parquet layouts of the upstream pipeline output. Every column is nullable.
// Non-finite doubles are read as missing values.
// Integer codes are stored as doubles because pandas widens nullable ints.

type skuRecord struct {
	SKU            *string  `parquet:"name=SKU, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	InvMatchStatus *string  `parquet:"name=inv_match_status, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	StockQty       *float64 `parquet:"name=stock_qty, type=DOUBLE, repetitiontype=OPTIONAL"`
	ErrGW          *float64 `parquet:"name=err_gw, type=DOUBLE, repetitiontype=OPTIONAL"`
	ErrCBM         *float64 `parquet:"name=err_cbm, type=DOUBLE, repetitiontype=OPTIONAL"`
	GW             *float64 `parquet:"name=GW, type=DOUBLE, repetitiontype=OPTIONAL"`
	CBM            *float64 `parquet:"name=CBM, type=DOUBLE, repetitiontype=OPTIONAL"`
	FinalLocation  *string  `parquet:"name=Final_Location, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	FlowCode       *float64 `parquet:"name=flow_code, type=DOUBLE, repetitiontype=OPTIONAL"`
	FirstSeen      *string  `parquet:"name=first_seen, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	LastSeen       *string  `parquet:"name=last_seen, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	SkuSqm         *float64 `parquet:"name=sku_sqm, type=DOUBLE, repetitiontype=OPTIONAL"`
	HvdcCodeNorm   *string  `parquet:"name=hvdc_code_norm, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type eventRecord struct {
	SKU            *string  `parquet:"name=SKU, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	StatusLocation *string  `parquet:"name=Status_Location, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	FlowCode       *float64 `parquet:"name=Flow_Code, type=DOUBLE, repetitiontype=OPTIONAL"`
	TS             *string  `parquet:"name=ts, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type exceptionRecord struct {
	SKU            *string  `parquet:"name=SKU, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	HvdcCodeNorm   *string  `parquet:"name=hvdc_code_norm, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	InvoiceRawCode *string  `parquet:"name=Invoice_RAW_CODE, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ErrGW          *float64 `parquet:"name=Err_GW, type=DOUBLE, repetitiontype=OPTIONAL"`
	ErrCBM         *float64 `parquet:"name=Err_CBM, type=DOUBLE, repetitiontype=OPTIONAL"`
	MatchStatus    *string  `parquet:"name=Match_Status, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	GWSumPicked    *float64 `parquet:"name=GW_SumPicked, type=DOUBLE, repetitiontype=OPTIONAL"`
	CBMSumPicked   *float64 `parquet:"name=CBM_SumPicked, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// DecodeSKUs decodes a sku_master snapshot. Rows without a SKU are skipped.
func DecodeSKUs(data []byte, format string) ([]model.SKU, error) {
	recs, err := decode[skuRecord](data, format, skuFromCSV)
	if err != nil {
		return nil, fmt.Errorf("decode sku snapshot: %w", err)
	}
	out := make([]model.SKU, 0, len(recs))
	for _, r := range recs {
		if blank(r.SKU) {
			continue
		}
		first, err := parseTimePtr(r.FirstSeen)
		if err != nil {
			return nil, fmt.Errorf("decode sku snapshot: %s first_seen: %w", *r.SKU, err)
		}
		last, err := parseTimePtr(r.LastSeen)
		if err != nil {
			return nil, fmt.Errorf("decode sku snapshot: %s last_seen: %w", *r.SKU, err)
		}
		status := ""
		if r.InvMatchStatus != nil {
			status = *r.InvMatchStatus
		}
		out = append(out, model.SKU{
			SKU:           *r.SKU,
			MatchStatus:   status,
			StockQty:      finite(r.StockQty),
			ErrGW:         finite(r.ErrGW),
			ErrCBM:        finite(r.ErrCBM),
			GW:            finite(r.GW),
			CBM:           finite(r.CBM),
			FinalLocation: r.FinalLocation,
			FlowCode:      toInt(r.FlowCode),
			FirstSeen:     first,
			LastSeen:      last,
			SQM:           finite(r.SkuSqm),
			HVDCCode:      r.HvdcCodeNorm,
		})
	}
	return out, nil
}

// DecodeEvents decodes an events snapshot. Rows without a SKU or timestamp are skipped.
func DecodeEvents(data []byte, format string) ([]model.Event, error) {
	recs, err := decode[eventRecord](data, format, eventFromCSV)
	if err != nil {
		return nil, fmt.Errorf("decode events snapshot: %w", err)
	}
	out := make([]model.Event, 0, len(recs))
	for _, r := range recs {
		if blank(r.SKU) {
			continue
		}
		ts, err := parseTimePtr(r.TS)
		if err != nil {
			return nil, fmt.Errorf("decode events snapshot: %s ts: %w", *r.SKU, err)
		}
		if ts == nil {
			continue
		}
		out = append(out, model.Event{
			SKU:            *r.SKU,
			StatusLocation: r.StatusLocation,
			FlowCode:       toInt(r.FlowCode),
			TS:             *ts,
		})
	}
	return out, nil
}

// DecodeExceptions decodes an exceptions snapshot. Rows without a SKU are skipped.
func DecodeExceptions(data []byte, format string) ([]model.Exception, error) {
	recs, err := decode[exceptionRecord](data, format, exceptionFromCSV)
	if err != nil {
		return nil, fmt.Errorf("decode exceptions snapshot: %w", err)
	}
	out := make([]model.Exception, 0, len(recs))
	for _, r := range recs {
		if blank(r.SKU) {
			continue
		}
		out = append(out, model.Exception{
			SKU:          *r.SKU,
			HVDCCode:     r.HvdcCodeNorm,
			InvoiceCode:  r.InvoiceRawCode,
			ErrGW:        finite(r.ErrGW),
			ErrCBM:       finite(r.ErrCBM),
			MatchStatus:  r.MatchStatus,
			GWSumPicked:  finite(r.GWSumPicked),
			CBMSumPicked: finite(r.CBMSumPicked),
		})
	}
	return out, nil
}

func decode[T any](data []byte, format string, fromCSV func(csvRow) (T, error)) ([]T, error) {
	switch format {
	case FormatParquet:
		return readParquet[T](data)
	case FormatCSV:
		return readCSV(data, fromCSV)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func readParquet[T any](data []byte) ([]T, error) {
	pf := buffer.NewBufferFileFromBytesNoAlloc(data)
	pr, err := reader.NewParquetReader(pf, new(T), 4)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer pr.ReadStop()

	rows := make([]T, pr.GetNumRows())
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

// csvRow maps lower-cased header names to cell values of one record.
type csvRow map[string]string

func (r csvRow) str(col string) *string {
	v, ok := r[strings.ToLower(col)]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func (r csvRow) float(col string) (*float64, error) {
	s := r.str(col)
	if s == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col, err)
	}
	return &f, nil
}

func readCSV[T any](data []byte, fromCSV func(csvRow) (T, error)) ([]T, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var out []T
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make(csvRow, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		v, err := fromCSV(row)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func skuFromCSV(r csvRow) (skuRecord, error) {
	rec := skuRecord{
		SKU:            r.str("SKU"),
		InvMatchStatus: r.str("inv_match_status"),
		FinalLocation:  r.str("Final_Location"),
		FirstSeen:      r.str("first_seen"),
		LastSeen:       r.str("last_seen"),
		HvdcCodeNorm:   r.str("hvdc_code_norm"),
	}
	var err error
	for _, f := range []struct {
		col string
		dst **float64
	}{
		{"stock_qty", &rec.StockQty},
		{"err_gw", &rec.ErrGW},
		{"err_cbm", &rec.ErrCBM},
		{"GW", &rec.GW},
		{"CBM", &rec.CBM},
		{"flow_code", &rec.FlowCode},
		{"sku_sqm", &rec.SkuSqm},
	} {
		if *f.dst, err = r.float(f.col); err != nil {
			return skuRecord{}, err
		}
	}
	return rec, nil
}

func eventFromCSV(r csvRow) (eventRecord, error) {
	flow, err := r.float("Flow_Code")
	if err != nil {
		return eventRecord{}, err
	}
	return eventRecord{
		SKU:            r.str("SKU"),
		StatusLocation: r.str("Status_Location"),
		FlowCode:       flow,
		TS:             r.str("ts"),
	}, nil
}

func exceptionFromCSV(r csvRow) (exceptionRecord, error) {
	rec := exceptionRecord{
		SKU:            r.str("SKU"),
		HvdcCodeNorm:   r.str("hvdc_code_norm"),
		InvoiceRawCode: r.str("Invoice_RAW_CODE"),
		MatchStatus:    r.str("Match_Status"),
	}
	var err error
	for _, f := range []struct {
		col string
		dst **float64
	}{
		{"Err_GW", &rec.ErrGW},
		{"Err_CBM", &rec.ErrCBM},
		{"GW_SumPicked", &rec.GWSumPicked},
		{"CBM_SumPicked", &rec.CBMSumPicked},
	} {
		if *f.dst, err = r.float(f.col); err != nil {
			return exceptionRecord{}, err
		}
	}
	return rec, nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

func parseTimePtr(s *string) (*time.Time, error) {
	if blank(s) {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", v)
}

// finite drops inf and NaN, which strconv and pandas both produce.
func finite(f *float64) *float64 {
	if f == nil || math.IsInf(*f, 0) || math.IsNaN(*f) {
		return nil
	}
	return f
}

func toInt(f *float64) *int {
	if f = finite(f); f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
