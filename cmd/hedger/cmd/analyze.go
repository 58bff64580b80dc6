package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rustyeddy/hedger/analysis"
	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/market"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a pending export or import trade",
	Long: `Forecast the USD/KRW outlook up to the trade's completion date and print the
recommended hedging strategy with a scenario table.

Examples:
  hedger analyze --direction export --amount 100000 --completion 2027-01-14
  hedger analyze -d import -a 50000 --completion 2026-11-30 --rate 1380 --lang ko
  hedger analyze -d export -a 100000 --completion 2027-01-14 --json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	analyzeDirection  string
	analyzeAmount     float64
	analyzeStart      string
	analyzeCompletion string
	analyzeRate       float64
	analyzeLang       string
	analyzeJSON       bool
	analyzeSeed       int64
	analyzeNoJournal  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeDirection, "direction", "d", "export", "trade direction (export or import)")
	analyzeCmd.Flags().Float64VarP(&analyzeAmount, "amount", "a", 0, "trade amount in USD (required)")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "trade start date YYYY-MM-DD (optional)")
	analyzeCmd.Flags().StringVar(&analyzeCompletion, "completion", "", "trade completion date YYYY-MM-DD (required)")
	analyzeCmd.Flags().Float64Var(&analyzeRate, "rate", 0, "use this current rate instead of the configured source")
	analyzeCmd.Flags().StringVar(&analyzeLang, "lang", "", "report language (en or ko); defaults to config locale")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "seed the rate perturbation for reproducible output")
	analyzeCmd.Flags().BoolVar(&analyzeNoJournal, "no-journal", false, "do not record the analysis")
	_ = analyzeCmd.MarkFlagRequired("amount")
	_ = analyzeCmd.MarkFlagRequired("completion")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir, err := market.ParseDirection(analyzeDirection)
	if err != nil {
		return err
	}
	completion, err := analysis.ParseDate(analyzeCompletion)
	if err != nil {
		return fmt.Errorf("completion: %w", err)
	}
	var start analysis.Date
	if analyzeStart != "" {
		if start, err = analysis.ParseDate(analyzeStart); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}

	lang := cfg.Locale
	if analyzeLang != "" {
		lang = analyzeLang
	}
	loc, err := locale.Parse(lang)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("rate") {
		cfg.Rate.Source = "static"
		cfg.Rate.Static = analyzeRate
	}

	var rnd forecast.RandSource
	if analyzeSeed != 0 {
		rnd = forecast.NewSeededRand(analyzeSeed)
	}

	a, err := newAnalyzer(cfg, rnd, logger, nil)
	if err != nil {
		return err
	}

	report, err := a.Analyze(cmd.Context(), analysis.Trade{
		Direction:      dir,
		Amount:         analyzeAmount,
		StartDate:      start,
		CompletionDate: completion,
	})
	if err != nil {
		return err
	}

	if !analyzeNoJournal {
		j, _, err := openJournal(cfg)
		if err != nil {
			return err
		}
		if j != nil {
			defer j.Close()
			if err := j.RecordAnalysis(cmd.Context(), journal.FromReport(report)); err != nil {
				return fmt.Errorf("journal: %w", err)
			}
			logger.Debug().Str("id", report.ID).Str("journal", cfg.Journal.Type).Msg("analysis recorded")
		}
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return analysis.Render(out, report, loc)
}
