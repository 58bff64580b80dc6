package cmd

import (
	"fmt"

	"github.com/rustyeddy/hedger/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-analyze the configured pending trades on a schedule",
	Long: `Re-analyze every trade listed under watch.trades on the watch.schedule cron
expression. Each run is journaled, and a change in the recommended strategy is
logged as a warning.

Examples:
  hedger watch --config hedger.yaml
  hedger watch --config hedger.yaml --once`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchOnce bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "run a single pass and exit")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(cfg.Watch.Trades) == 0 {
		return fmt.Errorf("no trades configured under watch.trades")
	}

	a, err := newAnalyzer(cfg, nil, logger, nil)
	if err != nil {
		return err
	}
	j, _, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	ctx := cmd.Context()
	w := watch.New(ctx, a, j, cfg.Watch.Trades, logger)

	if watchOnce {
		out := cmd.OutOrStdout()
		for _, r := range w.RunOnce(ctx) {
			if r.Err != nil {
				fmt.Fprintf(out, "#%d %s %s: error: %v\n", r.Index, r.Trade.Direction, r.Trade.CompletionDate, r.Err)
				continue
			}
			fmt.Fprintf(out, "#%d %s %s: %s -> %s\n", r.Index, r.Trade.Direction, r.Trade.CompletionDate,
				r.Report.Trend.Label, r.Report.Strategy)
		}
		return nil
	}

	if err := w.Register(cfg.Watch.Schedule); err != nil {
		return err
	}
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}
