package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/spf13/cobra"
)

// What the export command can write
const (
	exportSamples  = "samples"
	exportSessions = "sessions"
)

var (
	exportWhat   string
	exportFormat string
	exportLast   int
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored samples or charge sessions",
	Long: `Writes the retained samples or the completed charge sessions from the
history file as a table, JSON or CSV.

Examples:
  go-battery-monitor export                                  # All samples as a table
  go-battery-monitor export --format csv --output battery.csv
  go-battery-monitor export --last 120 --format json          # Last 120 samples
  go-battery-monitor export --what sessions --format json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportWhat, "what", exportSamples,
		"Data to export (samples, sessions)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatter.FormatTable,
		"Output format (table, json, csv)")
	exportCmd.Flags().IntVar(&exportLast, "last", 0,
		"Only the last N samples or sessions (0 = all)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"Write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportWhat != exportSamples && exportWhat != exportSessions {
		return fmt.Errorf("unknown export target %q (samples, sessions)", exportWhat)
	}
	if exportLast < 0 {
		return fmt.Errorf("--last must not be negative")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		file, err := os.Create(expandPath(exportOutput))
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	out, err := formatter.NewFormatter(exportFormat, w)
	if err != nil {
		return err
	}

	h := history.NewStore(cfg.DataDir).Load()

	if exportWhat == exportSessions {
		entries := interaction.Entries(h.CompletedSessions())
		entries = lastN(entries, exportLast)
		util.LogDebugf("Exporting %d charge sessions as %s", len(entries), exportFormat)
		return out.FormatSessions(entries)
	}

	samples := lastN(h.Samples(), exportLast)
	util.LogDebugf("Exporting %d samples as %s", len(samples), exportFormat)
	return out.FormatSamples(samples)
}

// lastN keeps the trailing n items; n <= 0 keeps everything
func lastN[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[len(items)-n:]
}
