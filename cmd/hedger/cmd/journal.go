package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/hedger/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the analysis journal",
	Long: `Query and display analyses recorded in the SQLite journal as Org-mode blocks.

Subcommands:
  show   - Show a single analysis by ID
  today  - List analyses made today
  day    - List analyses made on a specific day

Examples:
  hedger journal show 01JABCDEFGHJKMNPQRSTVWXYZ0
  hedger journal today
  hedger journal day 2026-10-16`,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show a single analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List analyses made today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List analyses made on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (defaults to journal.db_path)")
}

func openReader() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openReader()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetAnalysis(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get analysis: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatAnalysisOrg(rec))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Now().In(time.Local).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	j, err := openReader()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListAnalysesBetween(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("query analyses: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no analyses on %s\n", day)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatAnalysesOrg(recs))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
