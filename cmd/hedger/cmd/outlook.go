package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/pricing"
	"github.com/spf13/cobra"
)

var outlookCmd = &cobra.Command{
	Use:   "outlook [days...]",
	Short: "Show the rate outlook for one or more horizons",
	Long: `Print the scenario probabilities and predicted rates for each horizon,
without a trade. With no arguments one horizon per bucket is shown.

Examples:
  hedger outlook
  hedger outlook 7 45 120 --rate 1360`,
	RunE: runOutlook,
}

var (
	outlookRate float64
	outlookSeed int64
	outlookLang string
)

func init() {
	rootCmd.AddCommand(outlookCmd)

	outlookCmd.Flags().Float64Var(&outlookRate, "rate", 0, "use this current rate instead of the configured source")
	outlookCmd.Flags().Int64Var(&outlookSeed, "seed", 0, "seed the rate perturbation for reproducible output")
	outlookCmd.Flags().StringVar(&outlookLang, "lang", "", "label language (en or ko)")
}

func runOutlook(cmd *cobra.Command, args []string) error {
	days := []int{0, 30, 90, 180}
	if len(args) > 0 {
		days = days[:0]
		for _, a := range args {
			d, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("days %q: %w", a, err)
			}
			days = append(days, d)
		}
	}

	lang := cfg.Locale
	if outlookLang != "" {
		lang = outlookLang
	}
	loc, err := locale.Parse(lang)
	if err != nil {
		return err
	}

	rate := outlookRate
	if !cmd.Flags().Changed("rate") {
		src, err := newRateSource(cfg)
		if err != nil {
			return err
		}
		if _, rate, err = pricing.CurrentRate(cmd.Context(), src, cfg.Rate.Instrument); err != nil {
			return err
		}
	}

	var rnd forecast.RandSource
	if outlookSeed != 0 {
		rnd = forecast.NewSeededRand(outlookSeed)
	}
	engine := forecast.NewEngine(cfg.Forecast, rnd)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s: %.2f\n\n", cfg.Rate.Instrument, loc.Headings().CurrentRate, rate)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "days\tbucket")
	for _, o := range market.Outcomes {
		fmt.Fprintf(tw, "\t%s", loc.Outcome(o))
	}
	fmt.Fprint(tw, "\ttrend\n")

	for _, d := range days {
		res := engine.ForecastDays(d, rate)
		trend := forecast.SelectDominant(res)
		fmt.Fprintf(tw, "%d\t%s", d, res.Bucket)
		for _, o := range market.Outcomes {
			fmt.Fprintf(tw, "\t%.0f%% @ %.2f", res.Probabilities.Of(o)*100, res.Rates.Of(o))
		}
		fmt.Fprintf(tw, "\t%s\n", loc.Trend(trend.Outcome, trend.Probability))
	}
	return tw.Flush()
}
