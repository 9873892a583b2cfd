package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/archive/sqlite"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/source"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio-cli/internal/cache"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/services"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var archive driven.RecordArchive
	if cfg.ArchivePath != "" {
		a, err := sqlite.NewArchive(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer a.Close()
		archive = a
	}

	engine := services.NewFanOutEngine(source.NewRoutingFactory(archive), cfg.QueryTimeout)
	defer engine.Close()

	caches := cache.NewManager()
	contentService := services.NewContentService(
		engine,
		services.NewAssembler(engine),
		archive,
		defaultSources(cfg, archive),
		cfg.Cache,
		caches,
	)
	warmer := services.NewWarmer(contentService, services.NewWarmerState(), cfg.Warm)

	watchConfig(ctx, configStore, contentService, archive)

	cli.SetServices(cli.Services{
		Content: contentService,
		Warmer:  warmer,
		Cache:   services.NewCacheAdminService(caches),
		Config:  configStore,
	})

	return cli.Execute(ctx)
}

// defaultSources builds the default source set: the configured remote
// addresses plus the local archive when one is open.
func defaultSources(cfg domain.Config, archive driven.RecordArchive) []domain.Source {
	sources := domain.SourcesFromAddresses(cfg.Sources)
	if archive != nil {
		sources = append(sources, domain.Source{Address: archive.Address(), Name: "local archive"})
	}
	return sources
}

// watchConfig reloads the source set when the config file changes, so
// long-running commands pick up edits without a restart.
func watchConfig(
	ctx context.Context,
	store driven.ConfigStore,
	content *services.ContentService,
	archive driven.RecordArchive,
) {
	changes, err := store.Watch(ctx)
	if err != nil {
		logger.Warn("config watch unavailable: %v", err)
		return
	}

	go func() {
		for range changes {
			cfg, err := store.Load()
			if err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			content.SetSources(defaultSources(cfg, archive))
			logger.Info("config reloaded: %d sources", len(cfg.Sources))
		}
	}()
}
