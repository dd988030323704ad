package cleanblog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// SiteConfig holds all configuration for a cleanblog site.
type SiteConfig struct {
	Name        string `toml:"name"`        // Site name (default "Clean Blog")
	URL         string `toml:"url"`         // Canonical URL (default "http://localhost:5000")
	Description string `toml:"description"` // Site description for RSS and meta tags
	Author      string `toml:"author"`

	Addr         string `toml:"addr"`          // Listen address (default ":5000")
	DatabasePath string `toml:"database_path"` // SQLite path (default "data/posts.db")

	SessionSecret string `toml:"session_secret"` // Required: signs session and CSRF cookies
	CookieSecure  bool   `toml:"cookie_secure"`  // Set true for HTTPS

	LogLevel   string `toml:"log_level"`   // debug, info, warn or error (default "info")
	WriteLimit int    `toml:"write_limit"` // Writes per client IP per minute (default 30, negative disables)
}

// SetDefaults fills every unset field with its default.
func (c *SiteConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "Clean Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:5000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/posts.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.WriteLimit == 0 {
		c.WriteLimit = 30
	}
}

// LoadConfigFile decodes the TOML file at path over cfg. Keys absent from
// the file keep their current values.
func LoadConfigFile(path string, cfg *SiteConfig) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// ApplyEnv overrides cfg with any of the SITE_*, DATABASE_PATH, ADDR,
// SESSION_SECRET, COOKIE_SECURE, LOG_LEVEL and WRITE_LIMIT variables that are set.
func ApplyEnv(cfg *SiteConfig) error {
	strs := map[string]*string{
		"SITE_NAME":        &cfg.Name,
		"SITE_URL":         &cfg.URL,
		"SITE_DESCRIPTION": &cfg.Description,
		"SITE_AUTHOR":      &cfg.Author,
		"ADDR":             &cfg.Addr,
		"DATABASE_PATH":    &cfg.DatabasePath,
		"SESSION_SECRET":   &cfg.SessionSecret,
		"LOG_LEVEL":        &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v := os.Getenv("WRITE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WRITE_LIMIT: %w", err)
		}
		cfg.WriteLimit = n
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithStaticDir sets the directory served under /public (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock replaces the clock used to stamp new posts.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
