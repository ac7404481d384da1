// Package config loads the defaults of the offset-model commands.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/rs/zerolog/log"
)

// DefaultPath is where the shipped config lives, relative to the repo root.
const DefaultPath = "infra/config/offset-model.json"

const (
	FileBackend   = "file"
	SqliteBackend = "sqlite"
	VoidBackend   = "void"
)

// Store configures the model store.
type Store struct {
	Backend string `json:"backend"`
	Dir     string `json:"dir"`
	// Path is the database file of the sqlite backend, relative to Dir when not absolute.
	Path string `json:"path"`
}

// Plot configures the diagnostic plots.
type Plot struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

// Config holds the tunables of a fit run.
type Config struct {
	Degree     int     `json:"degree"`
	ZThreshold float64 `json:"z_threshold"`
	Output     string  `json:"output"`
	Delimiter  string  `json:"delimiter"`
	Comment    string  `json:"comment"`
	Store      Store   `json:"store"`
	Plot       Plot    `json:"plot"`
	Metrics    string  `json:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Degree:     2,
		ZThreshold: 3.0,
		Output:     "fit_results.txt",
		Delimiter:  "\t",
		Comment:    "#",
		Store: Store{
			Backend: FileBackend,
			Dir:     ".",
			Path:    "models.db",
		},
		Plot: Plot{
			Dir: ".",
		},
	}
}

// Validate checks the values are usable.
func (c Config) Validate() error {
	if c.Degree < 0 {
		return fmt.Errorf("degree must not be negative: %d", c.Degree)
	}
	if math.IsNaN(c.ZThreshold) || c.ZThreshold <= 0 {
		return fmt.Errorf("z threshold must be positive: %v", c.ZThreshold)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character: '%s'", c.Delimiter)
	}
	if len([]rune(c.Comment)) > 1 {
		return fmt.Errorf("comment must be at most one character: '%s'", c.Comment)
	}
	switch c.Store.Backend {
	case FileBackend, SqliteBackend, VoidBackend:
	default:
		return fmt.Errorf("unknown store backend '%s'", c.Store.Backend)
	}
	if c.Store.Backend == SqliteBackend && c.Store.Path == "" {
		return fmt.Errorf("sqlite backend needs a database path")
	}
	return nil
}

// DelimiterRune returns the table delimiter.
func (c Config) DelimiterRune() rune {
	return []rune(c.Delimiter)[0]
}

// CommentRune returns the comment marker, zero when comments are disabled.
func (c Config) CommentRune() rune {
	if c.Comment == "" {
		return 0
	}
	return []rune(c.Comment)[0]
}

// Load reads the config at path on top of the defaults.
// An empty path, or a missing file at DefaultPath, yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
		log.Debug().Str("path", path).Msg("no config file, using defaults")
		return c, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not load config '%s': %w", path, err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config '%s': %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	log.Info().Str("path", path).Msg("loaded config")
	return c, nil
}
