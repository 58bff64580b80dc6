package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/metrics"
	"github.com/rustyeddy/hedger/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long: `Start the HTTP API. Analyses posted to /api/v1/analyses are journaled when a
journal is configured, and Prometheus metrics are exposed on /metrics.

Example:
  hedger serve --config hedger.yaml --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	timeout, err := cfg.Server.ParseShutdownTimeout()
	if err != nil {
		return fmt.Errorf("shutdown timeout: %w", err)
	}
	loc, err := locale.Parse(cfg.Locale)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	a, err := newAnalyzer(cfg, nil, logger, rec)
	if err != nil {
		return err
	}

	j, r, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: timeout,
		Dependencies: server.Dependencies{
			Analyzer: a,
			Journal:  j,
			Reader:   r,
			Locale:   loc,
			Metrics:  rec,
			Gatherer: reg,
		},
	})
	return api.Start(cmd.Context())
}
