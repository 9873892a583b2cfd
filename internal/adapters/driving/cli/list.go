package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent content across sources",
}

var listArticlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List recent long-form articles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, func(ctx context.Context, opts driving.QueryOptions) ([]domain.Record, error) {
			return contentService.ListArticles(ctx, opts)
		})
	},
}

var listPublicationsCmd = &cobra.Command{
	Use:   "publications",
	Short: "List recent publications",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, func(ctx context.Context, opts driving.QueryOptions) ([]domain.Record, error) {
			return contentService.ListPublications(ctx, opts)
		})
	},
}

var listHighlightsCmd = &cobra.Command{
	Use:   "highlights",
	Short: "List recent highlights",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd, func(ctx context.Context, opts driving.QueryOptions) ([]domain.Record, error) {
			return contentService.ListHighlights(ctx, opts)
		})
	},
}

// Flags for the list commands.
var (
	listLimit int
	listJSON  bool
)

func init() {
	listCmd.PersistentFlags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of results")
	listCmd.PersistentFlags().BoolVar(&listJSON, "json", false, "Print the results as JSON")

	listCmd.AddCommand(listArticlesCmd)
	listCmd.AddCommand(listPublicationsCmd)
	listCmd.AddCommand(listHighlightsCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(
	cmd *cobra.Command,
	list func(context.Context, driving.QueryOptions) ([]domain.Record, error),
) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	records, err := list(cmd.Context(), queryOptions(listLimit))
	if err != nil {
		return fmt.Errorf("failed to list: %w", err)
	}

	if listJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No records found.")
		return nil
	}

	for i := range records {
		rec := &records[i]
		cmd.Printf("  %s\n", rec.Title())
		cmd.Printf("    Author:  %s\n", shortID(rec.Author))
		cmd.Printf("    Created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
		if rec.IsReplaceable() {
			cmd.Printf("    Address: %s\n", rec.Coordinate())
		} else {
			cmd.Printf("    ID:      %s\n", rec.ID)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d records\n", len(records))
	return nil
}
