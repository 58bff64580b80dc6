package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hedger",
	Short: "Exchange-rate outlook and hedging advisor for USD/KRW trades",
	Long: `Hedger estimates where the USD/KRW rate is likely to head before a pending
export or import trade completes, and recommends a hedging strategy.

It provides tools for:
  - Analyzing a single trade from the command line
  - Serving the analysis over an HTTP API with Prometheus metrics
  - Watching pending trades on a schedule and flagging strategy changes
  - Journaling analyses to SQLite or CSV and exporting them as Org-mode

The outlook is illustrative only. It is not a statistical forecast.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	logLevel string

	cfg       *config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer
)

// Execute adds all child commands to the root command and runs it with a
// context canceled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		c, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	logger = l
	logCloser = closer
	return nil
}
