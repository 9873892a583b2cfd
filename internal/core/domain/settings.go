package domain

import "time"

// Config holds the application configuration loaded from the config store.
type Config struct {
	// Sources are the default source addresses queried when a call
	// carries no override.
	Sources []string `toml:"sources"`

	// QueryTimeout bounds each individual source call.
	QueryTimeout time.Duration `toml:"query_timeout"`

	// ArchivePath is the SQLite archive location. Empty disables the
	// local archive source.
	ArchivePath string `toml:"archive_path"`

	// Cache configures the in-memory cache regions.
	Cache CacheConfig `toml:"cache"`

	// Warm configures the background warmer.
	Warm WarmConfig `toml:"warm"`
}

// CacheConfig holds per-region TTLs and size caps. TTLs differ by content
// volatility: list views go stale quickly, resolved document trees last
// longer, comment pools are the shortest lived.
type CacheConfig struct {
	// ListTTL bounds the age of cached list views.
	ListTTL time.Duration `toml:"list_ttl"`

	// DocumentTTL bounds the age of cached assembled documents.
	DocumentTTL time.Duration `toml:"document_ttl"`

	// CommentTTL bounds the age of cached comment threads.
	CommentTTL time.Duration `toml:"comment_ttl"`

	// ListCap bounds the entry count of the list region.
	ListCap int `toml:"list_cap"`

	// DocumentCap bounds the entry count of the document region.
	DocumentCap int `toml:"document_cap"`

	// CommentCap bounds the entry count of the comment region.
	CommentCap int `toml:"comment_cap"`
}

// WarmConfig holds background warmer configuration.
type WarmConfig struct {
	// Enabled is the master switch for the warmer.
	Enabled bool `toml:"enabled"`

	// Interval is how often the background loop attempts a warm pass.
	// Per-region cooldowns still apply within each pass.
	Interval time.Duration `toml:"interval"`

	// Cooldown is the minimum interval between warm passes per region.
	Cooldown time.Duration `toml:"cooldown"`

	// TopN is how many of the most recent list items get their comment
	// pools warmed in the dependent pass.
	TopN int `toml:"top_n"`

	// StaleTimeout is how long an in-progress flag is trusted before a
	// new pass may reclaim the region. Guards against a crash that
	// skipped the cleanup of a previous pass.
	StaleTimeout time.Duration `toml:"stale_timeout"`
}

// DefaultConfig returns sensible defaults for a fresh installation.
func DefaultConfig() Config {
	return Config{
		QueryTimeout: 8 * time.Second,
		Cache: CacheConfig{
			ListTTL:     5 * time.Minute,
			DocumentTTL: 30 * time.Minute,
			CommentTTL:  2 * time.Minute,
			ListCap:     64,
			DocumentCap: 256,
			CommentCap:  512,
		},
		Warm: WarmConfig{
			Enabled:      true,
			Interval:     15 * time.Minute,
			Cooldown:     30 * time.Minute,
			TopN:         10,
			StaleTimeout: 2 * time.Hour,
		},
	}
}

// Normalise fills zero values with defaults so a sparse config file
// still yields a usable configuration.
func (c *Config) Normalise() {
	def := DefaultConfig()
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = def.QueryTimeout
	}
	if c.Cache.ListTTL <= 0 {
		c.Cache.ListTTL = def.Cache.ListTTL
	}
	if c.Cache.DocumentTTL <= 0 {
		c.Cache.DocumentTTL = def.Cache.DocumentTTL
	}
	if c.Cache.CommentTTL <= 0 {
		c.Cache.CommentTTL = def.Cache.CommentTTL
	}
	if c.Cache.ListCap <= 0 {
		c.Cache.ListCap = def.Cache.ListCap
	}
	if c.Cache.DocumentCap <= 0 {
		c.Cache.DocumentCap = def.Cache.DocumentCap
	}
	if c.Cache.CommentCap <= 0 {
		c.Cache.CommentCap = def.Cache.CommentCap
	}
	if c.Warm.Interval <= 0 {
		c.Warm.Interval = def.Warm.Interval
	}
	if c.Warm.Cooldown <= 0 {
		c.Warm.Cooldown = def.Warm.Cooldown
	}
	if c.Warm.TopN <= 0 {
		c.Warm.TopN = def.Warm.TopN
	}
	if c.Warm.StaleTimeout <= 0 {
		c.Warm.StaleTimeout = def.Warm.StaleTimeout
	}
}
