package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files).
type ConfigStore interface {
	// Load reads the configuration from storage. A missing file yields
	// the defaults, not an error.
	Load() (domain.Config, error)

	// Save persists the configuration to storage.
	Save(cfg domain.Config) error

	// Watch reports configuration file changes until ctx is cancelled.
	// Each receive means the file changed since the last Load.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Path returns the configuration file path.
	Path() string
}
