package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/holepunch/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Render.CellSize != 64 || cfg.Quiz.MinFolds != 2 || cfg.Quiz.MaxFolds != 3 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if _, ok := cfg.RedisConfig(); ok {
		t.Error("redis should be off by default")
	}
}

func TestDecode(t *testing.T) {
	src := `
catalog = "folds.toml"

[render]
cell_size = 32
hide_punches = true

[cache]
ttl = "24h"
redis_url = "redis://localhost:6379/1"

[quiz]
min_folds = 3
max_folds = 4

[server]
addr = "127.0.0.1:9000"
`
	cfg, err := Decode(strings.NewReader(src), "test.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog != "folds.toml" || cfg.Render.CellSize != 32 || !cfg.Render.HidePunches {
		t.Errorf("render/catalog = %+v", cfg)
	}
	if cfg.Render.Scale != 2 {
		t.Errorf("unset keys should keep defaults, scale = %v", cfg.Render.Scale)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if rc, ok := cfg.RedisConfig(); !ok || rc.URL != "redis://localhost:6379/1" {
		t.Errorf("redis = %+v, %v", rc, ok)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	q := cfg.QuizOptions(nil)
	if q.MinFolds != 3 || q.MaxFolds != 4 {
		t.Errorf("quiz options = %+v", q)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
		msg  string
	}{
		{"syntax", "[render", errors.ErrCodeInvalidFormat, "parse"},
		{"unknown key", "[render]\ncolour = \"red\"", errors.ErrCodeInvalidInput, "render.colour"},
		{"unknown section", "[colours]\na = 1", errors.ErrCodeInvalidInput, "colours"},
		{"cell size", "[render]\ncell_size = 2", errors.ErrCodeInvalidInput, "cell size"},
		{"scale", "[render]\nscale = 20", errors.ErrCodeInvalidInput, "scale"},
		{"min folds", "[quiz]\nmin_folds = 0", errors.ErrCodeInvalidInput, "quiz.min_folds"},
		{"max below min", "[quiz]\nmin_folds = 3\nmax_folds = 2", errors.ErrCodeInvalidInput, "quiz.max_folds"},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidInput, "ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), "test.toml")
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %v, want mention of %q", err, tt.msg)
			}
		})
	}
}

func TestDecodeTooLarge(t *testing.T) {
	big := strings.Repeat("#", maxFileSize+1)
	if _, err := Decode(strings.NewReader(big), "big.toml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Missing default file yields defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.CellSize != 64 {
		t.Errorf("cell size = %v", cfg.Render.CellSize)
	}

	path := filepath.Join(dir, AppName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[render]\ncell_size = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.CellSize != 40 {
		t.Errorf("cell size = %v, want 40", cfg.Render.CellSize)
	}

	// An explicit path must exist.
	if _, err := Load(filepath.Join(dir, "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing explicit file: %v", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/holepunch.toml")
	if p, _ := Path(); p != "/etc/holepunch.toml" {
		t.Errorf("Path() = %s", p)
	}

	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if p, _ := Path(); p != filepath.Join("/tmp/xdg", AppName, "config.toml") {
		t.Errorf("Path() = %s", p)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := Default().CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", AppName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, _ = Default().CacheDir()
	if want := filepath.Join("/tmp/custom-cache", AppName); dir != want {
		t.Errorf("CacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}

	cfg := Default()
	cfg.Cache.Dir = "~/hp-cache"
	dir, _ = cfg.CacheDir()
	if want := filepath.Join(home, "hp-cache"); dir != want {
		t.Errorf("CacheDir() with dir = %q, want %q", dir, want)
	}
}

func TestLoadCatalog(t *testing.T) {
	cfg := Default()
	menu, err := cfg.LoadCatalog()
	if err != nil || len(menu) != 32 {
		t.Fatalf("default catalog: %d entries, %v", len(menu), err)
	}

	path := filepath.Join(t.TempDir(), "folds.toml")
	src := "[[fold]]\nnotation = \"v:left:1.5\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Catalog = path
	menu, err = cfg.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(menu) != 1 || menu[0].Fold.String() != "v:left:1.5" {
		t.Errorf("catalog = %v", menu)
	}
}

func TestLoadExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.CellSize != 48 || len(cfg.Render.Formats) != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Cache.TTL != 168*time.Hour || cfg.Server.RequestTimeout != 15*time.Second {
		t.Errorf("durations = %v, %v", cfg.Cache.TTL, cfg.Server.RequestTimeout)
	}
	if _, ok := cfg.RedisConfig(); ok {
		t.Error("redis should be off in the example")
	}
}
