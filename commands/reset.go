package commands

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored battery history",
	Long: `Removes the history file, discarding all samples and charge sessions.
A running recorder writes a new file on its next save.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false,
		"Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := history.NewStore(cfg.DataDir)
	out := cmd.OutOrStdout()

	if !store.Exists() {
		fmt.Fprintln(out, "No battery history found. Nothing to reset.")
		return nil
	}

	if !resetYes {
		// Prompt for confirmation
		fmt.Fprintf(out, "Delete battery history at %s? All samples and charge sessions will be lost. (y/N): ", store.Path())
		var response string
		fmt.Fscanln(cmd.InOrStdin(), &response)

		if !strings.EqualFold(response, "y") {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := store.Reset(); err != nil {
		return err
	}

	util.LogInfof("Battery history removed: %s", store.Path())
	fmt.Fprintln(out, "Battery history reset successfully.")
	return nil
}
