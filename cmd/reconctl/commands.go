package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recondash/internal/config"
	"recondash/internal/model"
	"recondash/internal/recon"
	"recondash/internal/table"
	"recondash/internal/view"
)

func (c *cli) kpiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kpi",
		Short: "Print the KPI summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.svc.KPI(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), res)
		},
	}
}

func (c *cli) threeWayCmd() *cobra.Command {
	var tol int
	cmd := &cobra.Command{
		Use:     "threeway",
		Aliases: []string{"3way"},
		Short:   "Print the 3-way reconciliation rows",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("tol") {
				tol = c.tol
			}
			if tol < 0 || tol > config.MaxTolerancePct {
				return fmt.Errorf("--tol must be between 0 and %d", config.MaxTolerancePct)
			}
			res, err := c.svc.ThreeWay(cmd.Context(), tol)
			if err != nil {
				return err
			}
			rows, err := listRows(c, cmd.OutOrStdout(), res.Rows, view.ThreeWayColumns)
			if err != nil || rows == nil {
				return err
			}
			res.Rows = rows
			return c.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&tol, "tol", recon.DefaultTolerancePct, "tolerance percentage (defaults to DEFAULT_TOLERANCE_PCT)")
	return cmd
}

func (c *cli) heatmapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Print location by month stock and area totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.svc.Heatmap(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := listRows(c, cmd.OutOrStdout(), res.Rows, view.HeatmapColumns)
			if err != nil || rows == nil {
				return err
			}
			res.Rows = rows
			return c.print(cmd.OutOrStdout(), res)
		},
	}
}

func (c *cli) caseFlowCmd() *cobra.Command {
	var sku string
	cmd := &cobra.Command{
		Use:   "caseflow",
		Short: "Print the case flow of one SKU or of every SKU",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.svc.CaseFlow(cmd.Context(), sku)
			if err != nil {
				return err
			}
			rows, err := listRows(c, cmd.OutOrStdout(), res.Rows, view.FlowColumns)
			if err != nil || rows == nil {
				return err
			}
			res.Rows = rows
			return c.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&sku, "sku", "", "SKU filter")
	return cmd
}

func (c *cli) exceptionsCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "exceptions",
		Short: "Print mismatch candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.svc.Exceptions(cmd.Context(), filter)
			if err != nil {
				return err
			}
			rows, err := listRows(c, cmd.OutOrStdout(), res.Rows, view.ExceptionColumns)
			if err != nil || rows == nil {
				return err
			}
			res.Rows = rows
			return c.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", recon.FilterAll, "all, fail or pass")
	return cmd
}

func (c *cli) stagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "Print the flow stage catalogue",
		Args:  cobra.NoArgs,
		// The catalogue is static; no backend is opened.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.format == view.FormatCSV {
				return table.WriteCSV(cmd.OutOrStdout(), model.FlowStages, stageColumns)
			}
			return c.print(cmd.OutOrStdout(), model.FlowStages)
		},
	}
}

var stageColumns = []table.Column[model.FlowStage]{
	{Key: "code", Value: func(s model.FlowStage) any { return s.Code }},
	{Key: "name", Value: func(s model.FlowStage) any { return s.Name }},
	{Key: "description", Value: func(s model.FlowStage) any { return s.Description }},
}

// listRows applies the table flags. In csv mode it writes the rows itself and
// returns nil rows; otherwise the caller prints the returned rows.
func listRows[T any](c *cli, w io.Writer, rows []T, cols []table.Column[T]) ([]T, error) {
	l, err := view.Apply(rows, cols, c.params())
	if err != nil {
		return nil, err
	}
	if c.format == view.FormatCSV {
		return nil, table.WriteCSV(w, l.Rows, cols)
	}
	if l.Rows == nil {
		l.Rows = []T{}
	}
	return l.Rows, nil
}

// print writes v as json or yaml. The yaml keys follow the json field names.
func (c *cli) print(w io.Writer, v any) error {
	switch c.format {
	case view.FormatCSV:
		return errCSVUnsupported
	case formatYAML:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
