package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the in-memory cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-region cache statistics",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty every cache region",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if cacheAdmin == nil {
		return errors.New("cache admin not configured")
	}

	stats := cacheAdmin.Stats()
	if len(stats) == 0 {
		cmd.Println("No cache regions registered.")
		return nil
	}

	totalEntries, totalBytes := 0, 0
	for _, s := range stats {
		cmd.Printf("  %-12s %5d entries  ~%d bytes\n", s.Region, s.Entries, s.Bytes)
		totalEntries += s.Entries
		totalBytes += s.Bytes
	}
	cmd.Printf("\nTotal: %d entries, ~%d bytes\n", totalEntries, totalBytes)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if cacheAdmin == nil {
		return errors.New("cache admin not configured")
	}

	cacheAdmin.ClearAll()
	cmd.Println("All cache regions cleared.")
	return nil
}
