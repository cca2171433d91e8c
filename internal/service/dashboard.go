package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recondash/internal/model"
	"recondash/internal/recon"
)

// Section holds either the data of one view or the reason it is missing.
type Section[T any] struct {
	Data  *T     `json:"data"`
	Error string `json:"error,omitempty"`
}

// Dashboard is every view at once.
type Dashboard struct {
	KPI        Section[model.KPI]        `json:"kpi"`
	ThreeWay   Section[ThreeWayResult]   `json:"three_way"`
	Heatmap    Section[HeatmapResult]    `json:"heatmap"`
	CaseFlow   Section[CaseFlowResult]   `json:"caseflow"`
	Exceptions Section[ExceptionsResult] `json:"exceptions"`
}

// fill never returns an error so that the group keeps the other views running.
// A panic in fn is reported as the section error.
func fill[T any](log *zap.Logger, view string, dst *Section[T], fn func() (*T, error)) func() error {
	return func() (ret error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("dashboard view panicked", zap.String("view", view), zap.Any("panic", r))
				dst.Data, dst.Error = nil, fmt.Sprintf("%s: internal error", view)
				ret = nil
			}
		}()
		data, err := fn()
		if err != nil {
			log.Warn("dashboard view failed", zap.String("view", view), zap.Error(err))
			dst.Error = err.Error()
			return nil
		}
		dst.Data = data
		return nil
	}
}

func (s *reconService) Dashboard(ctx context.Context, tolPct int) *Dashboard {
	d := &Dashboard{}
	var g errgroup.Group
	g.Go(fill(s.log, "kpi", &d.KPI, func() (*model.KPI, error) { return s.KPI(ctx) }))
	g.Go(fill(s.log, "3way", &d.ThreeWay, func() (*ThreeWayResult, error) { return s.ThreeWay(ctx, tolPct) }))
	g.Go(fill(s.log, "heatmap", &d.Heatmap, func() (*HeatmapResult, error) { return s.Heatmap(ctx) }))
	g.Go(fill(s.log, "caseflow", &d.CaseFlow, func() (*CaseFlowResult, error) { return s.CaseFlow(ctx, "") }))
	g.Go(fill(s.log, "exceptions", &d.Exceptions, func() (*ExceptionsResult, error) {
		return s.Exceptions(ctx, recon.FilterAll)
	}))
	_ = g.Wait()
	return d
}
