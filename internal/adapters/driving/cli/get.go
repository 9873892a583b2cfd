package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var getCmd = &cobra.Command{
	Use:   "get [reference]",
	Short: "Fetch and assemble a document",
	Long: `Fetch a document by record ID or by "kind:author:identifier"
coordinate, assemble its parts across the configured sources, and print
the flattened content. Index records are resolved recursively; missing
parts are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// Flags for the get command.
var (
	getJSON    bool
	getOutline bool
)

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Print the result as JSON")
	getCmd.Flags().BoolVar(&getOutline, "outline", false, "Print the document structure instead of content")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	ref, err := parseReference(args[0])
	if err != nil {
		return err
	}

	result, err := contentService.GetDocument(cmd.Context(), ref, queryOptions(0))
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if getJSON {
		return printJSON(cmd, result)
	}

	cmd.Printf("%s\n", result.Root.Title())
	cmd.Printf("  Author:  %s\n", result.Root.Author)
	cmd.Printf("  Kind:    %d\n", result.Root.Kind)
	cmd.Printf("  Created: %s\n", result.Root.CreatedAt.Format("2006-01-02 15:04:05"))
	if result.Stale {
		cmd.Println("  (served from stale cache: no source reachable)")
	}
	cmd.Println()

	if getOutline {
		printOutline(cmd, result.Tree, 1)
		return nil
	}

	for i := range result.Content {
		if i > 0 {
			cmd.Println()
		}
		cmd.Println(result.Content[i].Content)
	}
	return nil
}

// printOutline renders the assembled tree, one indented line per node.
func printOutline(cmd *cobra.Command, nodes []*domain.DocumentNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, node := range nodes {
		marker := ""
		if node.Linked {
			marker = " (already included)"
		}
		cmd.Printf("%s- %s [%s]%s\n", indent, node.Record.Title(), node.Record.ID, marker)
		printOutline(cmd, node.Children, depth+1)
	}
}

// printJSON writes v to the command output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
