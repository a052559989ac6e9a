package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func sampleAt(offset time.Duration, capacity float64, status model.Status) model.Sample {
	power := -8.5
	if status == model.StatusCharging {
		power = 25
	}
	return model.Sample{
		Timestamp:    t0.Add(offset),
		Capacity:     capacity,
		PowerWatts:   power,
		Status:       status,
		EnergyNowWh:  capacity / 2,
		EnergyFullWh: 50,
		VoltageNowV:  12,
	}
}

// writeHistory stores one completed charge session 10% -> 95% between
// discharging samples and returns the data directory
func writeHistory(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	h := history.New()
	h.AddSample(sampleAt(0, 40, model.StatusDischarging))
	h.AddSample(sampleAt(5*time.Minute, 10, model.StatusCharging))
	h.AddSample(sampleAt(10*time.Minute, 50, model.StatusCharging))
	h.AddSample(sampleAt(15*time.Minute, 95, model.StatusCharging))
	h.AddSample(sampleAt(20*time.Minute, 94, model.StatusDischarging))
	require.NoError(t, history.NewStore(dir).Save(h))

	return dir
}

// resetFlags restores every flag in the command tree to its default so
// package level flag variables do not leak between executions
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	args = append(args, "--log-file", filepath.Join(t.TempDir(), "app.log"))
	if !hasFlag(args, "--timezone") {
		args = append(args, "--timezone", "UTC")
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	util.CloseLogger()
	return buf.String(), err
}

func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name || strings.HasPrefix(arg, name+"=") {
			return true
		}
	}
	return false
}
