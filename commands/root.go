package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/application/monitor"
	"github.com/penwyp/go-battery-monitor/internal/config"
	"github.com/penwyp/go-battery-monitor/internal/core/battery"
	"github.com/penwyp/go-battery-monitor/internal/core/constants"
	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Storage and sampling
	dataDir         string
	powerSupplyRoot string
	interval        time.Duration
	autosaveEvery   int

	// Display related
	timezone         string
	timeFormat       string
	refreshPerSecond float64

	// Mode
	recordMode bool

	rootCmd = &cobra.Command{
		Use:   "go-battery-monitor [flags]",
		Short: "Battery charge history monitor",
		Long: `go-battery-monitor samples the laptop battery, keeps a rolling history of
charge level and power flow, and tracks charge sessions that reach 90%.

The interactive view has a dashboard, a zoomable history chart and a detail
view for each of the last two completed charge sessions.

Examples:
  go-battery-monitor                              # Interactive monitor
  go-battery-monitor --interval 10s               # Sample every 10 seconds
  go-battery-monitor --record                     # Record without a terminal
  go-battery-monitor view                         # Watch the history a recorder writes
  go-battery-monitor sessions --sort energy       # List completed charge sessions
  go-battery-monitor export --format csv --last 100`,
		RunE: runMonitor,
	}
)

const defaultLogFile = "~/.go-battery-monitor/logs/app.log"

func init() {
	// Storage and sampling
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"History directory (default $XDG_DATA_HOME/bathis)")
	rootCmd.PersistentFlags().StringVar(&powerSupplyRoot, "power-supply", battery.DefaultPowerSupplyRoot,
		"sysfs power supply directory to search for a battery")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", constants.DefaultSampleInterval,
		"Battery sample interval")
	rootCmd.PersistentFlags().IntVar(&autosaveEvery, "autosave-every", constants.DefaultAutosaveEvery,
		"Save history every N samples")

	// Display
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().StringVar(&timeFormat, "time-format", "24h",
		"Time format (12h or 24h)")
	rootCmd.PersistentFlags().Float64Var(&refreshPerSecond, "refresh-per-second", constants.DefaultUIRefreshRate,
		"Display refresh rate (0.1-20 Hz)")

	// Mode
	rootCmd.Flags().BoolVar(&recordMode, "record", false,
		"Record samples without the interactive view (same as the record command)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if recordMode {
		return runRecord(cmd, args)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; use 'record' to sample headlessly")
	}

	reader, err := battery.Discover(cfg.PowerSupplyRoot)
	if err != nil {
		return err
	}

	store := history.NewStore(cfg.DataDir)
	app := monitor.NewApp(store.Load(), store, reader.Name(), cfg.AutosaveEvery)
	manager := monitor.NewManager(cfg, reader, app)

	ctx, cancel := signalContext()
	defer cancel()

	return manager.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig layers explicitly set flags over the environment config, then
// initialises logging and the time provider from the result
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("power-supply") {
		cfg.PowerSupplyRoot = powerSupplyRoot
	}
	if flags.Changed("interval") {
		cfg.SampleInterval = interval
	}
	if flags.Changed("autosave-every") {
		cfg.AutosaveEvery = autosaveEvery
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("time-format") {
		cfg.TimeFormat = timeFormat
	}
	if flags.Changed("refresh-per-second") {
		cfg.UIRefreshRate = refreshPerSecond
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	// Initialize logging
	path := expandPath(logFile)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(cfg.LogLevel, path, cfg.Debug); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}
	util.GetTimeProvider().SetTimeFormat(cfg.TimeFormat)

	util.LogDebug("Configuration loaded",
		util.F("data_dir", cfg.DataDir),
		util.F("interval", cfg.SampleInterval.String()),
		util.F("timezone", cfg.Timezone))
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
