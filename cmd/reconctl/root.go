package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recondash/internal/backend"
	"recondash/internal/config"
	"recondash/internal/logger"
	"recondash/internal/service"
	"recondash/internal/table"
	"recondash/internal/view"
)

// Output formats beyond json and csv.
const formatYAML = "yaml"

type openFunc func(cfg *config.AppConfig, log *zap.Logger) (service.ReconService, io.Closer, error)

func openService(cfg *config.AppConfig, log *zap.Logger) (service.ReconService, io.Closer, error) {
	be, err := backend.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return service.NewReconService(be, log), be, nil
}

// cli carries the flags and the service shared by every subcommand.
type cli struct {
	open openFunc

	mode     string
	logLevel string
	format   string
	query    string
	sortKey  string
	desc     bool
	page     int
	pageSize int
	tol      int

	svc    service.ReconService
	closer io.Closer
}

func newRootCmd(open openFunc) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "reconctl",
		Short:         "Query the reconciliation dashboard views",
		Long:          `Runs the KPI, 3-way, heatmap, case flow and exception views against the configured backend and prints them as json, yaml or csv.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.closer != nil {
				return c.closer.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.mode, "mode", "", "backend mode: server or embedded (defaults to RECON_MODE)")
	pf.StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")
	pf.StringVarP(&c.format, "format", "o", view.FormatJSON, "output format: json, yaml or csv")
	pf.StringVarP(&c.query, "q", "q", "", "case-insensitive search over every column")
	pf.StringVar(&c.sortKey, "sort", "", "sort column key")
	pf.BoolVar(&c.desc, "desc", false, "sort descending")
	pf.IntVar(&c.page, "page", 0, "1-based page (0 prints every row)")
	pf.IntVar(&c.pageSize, "page-size", 0, fmt.Sprintf("rows per page (default %d when paging)", table.DefaultPageSize))

	root.AddCommand(
		c.kpiCmd(),
		c.threeWayCmd(),
		c.heatmapCmd(),
		c.caseFlowCmd(),
		c.exceptionsCmd(),
		c.stagesCmd(),
	)
	return root
}

func (c *cli) setup() error {
	switch c.format {
	case view.FormatJSON, view.FormatCSV, formatYAML:
	default:
		return fmt.Errorf("unknown format %q", c.format)
	}

	cfg := config.Load()
	if c.mode != "" {
		cfg.Mode = config.ParseMode(c.mode)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.tol = cfg.DefaultTolerancePct

	log, err := logger.New(c.logLevel)
	if err != nil {
		return err
	}
	c.svc, c.closer, err = c.open(cfg, log)
	return err
}

func (c *cli) params() view.Params {
	p := view.Params{
		Query:    c.query,
		Sort:     c.sortKey,
		Dir:      table.Asc,
		Page:     c.page,
		PageSize: c.pageSize,
		Format:   c.format,
	}
	if c.desc {
		p.Dir = table.Desc
	}
	if p.Format == formatYAML {
		p.Format = view.FormatJSON
	}
	return p
}

var errCSVUnsupported = errors.New("csv output is only available for list views")
