package commands

import (
	"fmt"

	"github.com/penwyp/go-battery-monitor/internal/application/monitor"
	"github.com/penwyp/go-battery-monitor/internal/core/battery"
	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record battery samples without the interactive view",
	Long: `Samples the battery every interval and saves the history file every
--autosave-every samples and once more on exit. Run it from a service manager
and watch it with the view command.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reader, err := battery.Discover(cfg.PowerSupplyRoot)
	if err != nil {
		return err
	}

	store := history.NewStore(cfg.DataDir)
	h := store.Load()
	fmt.Fprintf(cmd.OutOrStdout(), "Recording %s every %s to %s (Ctrl+C to stop)\n",
		reader.Name(), cfg.SampleInterval, store.Path())

	recorder := monitor.NewRecorder(reader, h, store, cfg.SampleInterval, cfg.AutosaveEvery)

	ctx, cancel := signalContext()
	defer cancel()

	if err := recorder.Run(ctx); err != nil {
		return err
	}
	util.LogInfof("Recorded %d samples", recorder.Samples())
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d samples\n", recorder.Samples())
	return nil
}
