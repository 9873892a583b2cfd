package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Warm the cache regions",
	Long: `Populate the list cache regions and the comment pools of their most
recent items, so interactive reads hit the cache. Regions warmed recently
or already being warmed are skipped.`,
	RunE: runWarm,
}

var warmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-region warming state",
	RunE:  runWarmStatus,
}

func init() {
	warmCmd.AddCommand(warmStatusCmd)
	rootCmd.AddCommand(warmCmd)
}

func runWarm(cmd *cobra.Command, _ []string) error {
	if warmerService == nil {
		return errors.New("warmer not configured")
	}

	outcomes := warmerService.WarmAll(cmd.Context())

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			cmd.Printf("  %-14s skipped (%s)\n", o.Region, o.Reason)
		case o.Err != "":
			failed++
			cmd.Printf("  %-14s failed: %s\n", o.Region, o.Err)
		default:
			cmd.Printf("  %-14s warmed %d entries\n", o.Region, o.Warmed)
		}
	}

	if failed == len(outcomes) && failed > 0 {
		return fmt.Errorf("every region failed to warm")
	}
	return nil
}

func runWarmStatus(cmd *cobra.Command, _ []string) error {
	if warmerService == nil {
		return errors.New("warmer not configured")
	}

	statuses := warmerService.Status()
	if len(statuses) == 0 {
		cmd.Println("No regions have been warmed yet.")
		return nil
	}

	for _, st := range statuses {
		cmd.Printf("  %s\n", st.Region)
		if st.InProgress {
			cmd.Println("    State:       warming")
		} else {
			cmd.Println("    State:       idle")
		}
		if st.LastWarmedAt.IsZero() {
			cmd.Println("    Last warmed: never")
		} else {
			cmd.Printf("    Last warmed: %s\n", st.LastWarmedAt.Format("2006-01-02 15:04:05"))
		}
		if st.LastError != "" {
			cmd.Printf("    Last error:  %s\n", st.LastError)
		}
	}
	return nil
}
