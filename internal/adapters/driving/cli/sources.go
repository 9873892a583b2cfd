package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the configured sources",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured source addresses",
	RunE:  runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add [address]",
	Short: "Add a source address to the configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesAdd,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove [address]",
	Short: "Remove a source address from the configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Sources) == 0 {
		cmd.Println("No sources configured.")
		cmd.Printf("Add one with: folio sources add <address>\n")
		return nil
	}

	for _, addr := range cfg.Sources {
		cmd.Printf("  %s\n", addr)
	}
	cmd.Printf("\nTotal: %d sources\n", len(cfg.Sources))
	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	address := args[0]
	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	for _, existing := range cfg.Sources {
		if existing == address {
			cmd.Printf("Source %s is already configured.\n", address)
			return nil
		}
	}

	cfg.Sources = append(cfg.Sources, address)
	if err := configStore.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Added source %s.\n", address)
	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	address := args[0]
	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	kept := cfg.Sources[:0]
	for _, existing := range cfg.Sources {
		if existing != address {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(cfg.Sources) {
		return fmt.Errorf("source %s is not configured", address)
	}

	cfg.Sources = kept
	if err := configStore.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Removed source %s.\n", address)
	return nil
}
