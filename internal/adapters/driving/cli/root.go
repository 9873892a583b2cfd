// Package cli is the command-line driving adapter. Commands talk to the
// core exclusively through the driving ports; wiring happens in the
// composition root via SetServices.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// version is the CLI version, overridable at build time with -ldflags.
var version = "0.1.0"

// Injected driving ports. Nil until SetServices runs.
var (
	contentService driving.ContentService
	warmerService  driving.Warmer
	cacheAdmin     driving.CacheAdmin
	configStore    driven.ConfigStore
)

// Command-level flags shared across subcommands.
var (
	verbose     bool
	sourcesFlag []string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Aggregate and read content from unreliable event stores",
	Long: `Folio fetches articles, publications, highlights and comment threads
from a set of independent sources, merges the results, and serves them
from a local cache so reads stay fast even when sources misbehave.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringSliceVar(&sourcesFlag, "source", nil,
		"Source address to query (repeatable, overrides configured sources)")
}

// Services bundles the driving ports the CLI depends on.
type Services struct {
	Content driving.ContentService
	Warmer  driving.Warmer
	Cache   driving.CacheAdmin
	Config  driven.ConfigStore
}

// SetServices injects the driving ports. Called once from the
// composition root before Execute.
func SetServices(s Services) {
	contentService = s.Content
	warmerService = s.Warmer
	cacheAdmin = s.Cache
	configStore = s.Config
}

// Execute runs the root command. ctx is cancelled on shutdown signals
// so long-running commands can stop cleanly.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// queryOptions builds the per-call options from shared flags.
func queryOptions(limit int) driving.QueryOptions {
	return driving.QueryOptions{
		Sources: domain.SourcesFromAddresses(sourcesFlag),
		Limit:   limit,
	}
}

// parseReference interprets a CLI argument as a record reference: a
// "kind:author:identifier" coordinate when it parses as one, a record
// ID otherwise.
func parseReference(arg string) (domain.Reference, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("%w: empty reference", domain.ErrInvalidReference)
	}
	if strings.Contains(arg, ":") {
		coord, err := domain.ParseCoordinate(arg)
		if err != nil {
			return nil, err
		}
		return domain.CoordinateReference{Coordinate: coord}, nil
	}
	return domain.IDReference{ID: arg}, nil
}
