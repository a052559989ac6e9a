package commands

import (
	"fmt"
	"os"

	"github.com/penwyp/go-battery-monitor/internal/application/monitor"
	"github.com/penwyp/go-battery-monitor/internal/core/battery"
	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// fallbackBatteryName labels the view when no battery is visible locally
const fallbackBatteryName = "Battery"

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Follow the history written by a running recorder",
	Long: `Opens the interactive view on the stored history without sampling the
battery. The view reloads whenever the recorder saves the history file.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("view needs a terminal; use 'sessions' or 'export' for plain output")
	}

	if err := ensureDir(cfg.DataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	name := fallbackBatteryName
	if reader, err := battery.Discover(cfg.PowerSupplyRoot); err == nil {
		name = reader.Name()
	} else {
		util.LogDebugf("No local battery for the view title: %v", err)
	}

	follower := monitor.NewFollower(cfg, history.NewStore(cfg.DataDir), name)

	ctx, cancel := signalContext()
	defer cancel()

	return follower.Run(ctx)
}
