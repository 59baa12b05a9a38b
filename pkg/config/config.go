// Package config loads user settings for the holepunch CLI and server.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/holepunch/config.toml (or ~/.config/holepunch/config.toml).
// The HOLEPUNCH_CONFIG environment variable points at another file. A missing
// default file is not an error; every field has a default. Command-line flags
// override file values.
//
//	catalog = "~/folds.toml"
//
//	[render]
//	cell_size = 48
//	hide_punches = false
//
//	[cache]
//	ttl = "720h"
//	redis_url = "redis://localhost:6379/0"
//
//	[quiz]
//	min_folds = 2
//	max_folds = 4
//
//	[server]
//	addr = ":8080"
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/holepunch/pkg/cache"
	"github.com/matzehuels/holepunch/pkg/catalog"
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/quiz"
	"github.com/matzehuels/holepunch/pkg/render"
)

const (
	// AppName names the config and cache directories.
	AppName = "holepunch"

	// EnvPath overrides the config file location.
	EnvPath = "HOLEPUNCH_CONFIG"

	maxFileSize = 1 << 20
)

// Config is the full settings file.
type Config struct {
	// Catalog is a TOML fold catalogue; empty uses the built-in 32 folds.
	Catalog string       `toml:"catalog"`
	Render  RenderConfig `toml:"render"`
	Cache   CacheConfig  `toml:"cache"`
	Quiz    QuizConfig   `toml:"quiz"`
	Server  ServerConfig `toml:"server"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	CellSize    float64  `toml:"cell_size"`
	Scale       float64  `toml:"scale"`
	HidePunches bool     `toml:"hide_punches"`
	Formats     []string `toml:"formats"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Disabled bool          `toml:"disabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"`
	// Redis is used by the server when set. URL wins over Addr.
	RedisAddr string `toml:"redis_addr"`
	RedisURL  string `toml:"redis_url"`
}

// QuizConfig bounds generated questions.
type QuizConfig struct {
	MinFolds int `toml:"min_folds"`
	MaxFolds int `toml:"max_folds"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	// KeyPrefix namespaces cache keys in a shared Redis.
	KeyPrefix string `toml:"key_prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Render: RenderConfig{
			CellSize: render.DefaultCellSize,
			Scale:    2,
			Formats:  []string{"svg"},
		},
		Cache: CacheConfig{TTL: cache.ArtifactTTL},
		Quiz: QuizConfig{
			MinFolds: quiz.DefaultMinFolds,
			MaxFolds: quiz.DefaultMaxFolds,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
			KeyPrefix:      AppName + ":",
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory: the configured one, else
// $XDG_CACHE_HOME/holepunch, else ~/.cache/holepunch.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return expandHome(c.Cache.Dir)
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the file at path over the defaults. An empty path means [Path];
// in that case a missing file yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != "" || os.Getenv(EnvPath) != ""
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config")
	}
	defer f.Close()
	return Decode(io.LimitReader(f, maxFileSize+1), path)
}

// Decode parses TOML settings over the defaults and validates them. name is
// used in error messages.
func Decode(r io.Reader, name string) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
	}
	if len(data) > maxFileSize {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", name, maxFileSize)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "%s", name)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateCellSize(c.Render.CellSize); err != nil {
		return err
	}
	if c.Render.Scale <= 0 || c.Render.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "render.scale must be in (0, 8], got %g", c.Render.Scale)
	}
	if err := errors.ValidateRange("quiz.min_folds", c.Quiz.MinFolds, 1, quiz.MaxFolds); err != nil {
		return err
	}
	if err := errors.ValidateRange("quiz.max_folds", c.Quiz.MaxFolds, c.Quiz.MinFolds, quiz.MaxFolds); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.request_timeout must not be negative")
	}
	return nil
}

// LoadCatalog returns the configured fold catalogue, or the built-in one.
func (c Config) LoadCatalog() (catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	path, err := expandHome(c.Catalog)
	if err != nil {
		return nil, err
	}
	return catalog.Load(path)
}

// QuizOptions returns generation options bounded by the quiz settings.
func (c Config) QuizOptions(menu catalog.Catalog) quiz.Options {
	return quiz.Options{MinFolds: c.Quiz.MinFolds, MaxFolds: c.Quiz.MaxFolds, Catalog: menu}
}

// RedisConfig returns the Redis settings and whether Redis is configured.
func (c Config) RedisConfig() (cache.RedisConfig, bool) {
	rc := cache.RedisConfig{Addr: c.Cache.RedisAddr, URL: c.Cache.RedisURL}
	return rc, rc.Addr != "" || rc.URL != ""
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
