package commands

import (
	"fmt"

	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/spf13/cobra"
)

var (
	sessionsSort   string
	sessionsAsc    bool
	sessionsFormat string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show the stored history and completed charge sessions",
	Long: `Prints an overview of the stored history followed by the completed charge
sessions, newest first unless another order is requested.

Examples:
  go-battery-monitor sessions
  go-battery-monitor sessions --sort energy
  go-battery-monitor sessions --sort duration --asc
  go-battery-monitor sessions --format json`,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().StringVar(&sessionsSort, "sort", "time",
		"Sort by field (time, duration, energy, gain)")
	sessionsCmd.Flags().BoolVar(&sessionsAsc, "asc", false,
		"Sort ascending instead of descending")
	sessionsCmd.Flags().StringVarP(&sessionsFormat, "format", "f", formatter.FormatTable,
		"Output format (table, json, csv)")
}

func runSessions(cmd *cobra.Command, args []string) error {
	field, err := interaction.ParseSortField(sessionsSort)
	if err != nil {
		return err
	}
	out, err := formatter.NewFormatter(sessionsFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := history.NewStore(cfg.DataDir)
	h := store.Load()

	sorter := interaction.NewSessionSorter()
	sorter.SetField(field)
	if sessionsAsc {
		sorter.SetOrder(interaction.SortAscending)
	}
	entries := interaction.Entries(h.CompletedSessions())
	sorter.Sort(entries)

	// Machine readable formats carry only the sessions
	if sessionsFormat != formatter.FormatTable && sessionsFormat != "" {
		return out.FormatSessions(entries)
	}

	summary := formatter.Summary{
		Path:        store.Path(),
		SampleCount: h.Len(),
		Sessions:    h.CompletedSessions(),
		Active:      h.ActiveSession(),
	}
	if first, last, ok := h.Span(); ok {
		summary.First, summary.Last = first, last
	}
	if err := formatter.NewSummaryFormatter(cmd.OutOrStdout()).Format(summary); err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No completed charge sessions yet")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return out.FormatSessions(entries)
}
