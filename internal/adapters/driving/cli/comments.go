package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var commentsCmd = &cobra.Command{
	Use:   "comments [coordinate]",
	Short: "Show the comment threads for a document",
	Long: `Fetch the comment pool for a document coordinate
("kind:author:identifier") and print it as nested threads, oldest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runComments,
}

// commentsJSON is a flag for the comments command.
var commentsJSON bool

func init() {
	commentsCmd.Flags().BoolVar(&commentsJSON, "json", false, "Print the threads as JSON")
	rootCmd.AddCommand(commentsCmd)
}

func runComments(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	coord, err := domain.ParseCoordinate(args[0])
	if err != nil {
		return err
	}

	threads, err := contentService.GetComments(cmd.Context(), coord, queryOptions(0))
	if err != nil {
		return fmt.Errorf("failed to get comments: %w", err)
	}

	if commentsJSON {
		return printJSON(cmd, threads)
	}

	if len(threads) == 0 {
		cmd.Printf("No comments for %s\n", coord)
		return nil
	}

	printThreads(cmd, threads, 0)
	cmd.Printf("\nTotal: %d top-level threads\n", len(threads))
	return nil
}

// printThreads renders the comment forest with two-space nesting.
func printThreads(cmd *cobra.Command, threads []*domain.ThreadNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, thread := range threads {
		cmd.Printf("%s%s (%s):\n", indent, shortID(thread.Record.Author),
			thread.Record.CreatedAt.Format("2006-01-02 15:04"))
		for _, line := range strings.Split(thread.Record.Content, "\n") {
			cmd.Printf("%s  %s\n", indent, line)
		}
		printThreads(cmd, thread.Replies, depth+1)
	}
}

// shortID abbreviates a hex identifier for display.
func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12] + "…"
}
