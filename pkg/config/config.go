// Package config loads anchorlayout settings from a TOML file.
//
// Settings are grouped by concern:
//
//	[canvas]
//	width = 1920
//	height = 1080
//
//	[layout]
//	policy = "clamp"
//	max_depth = 20
//	stack_kinds = ["Tree", "List"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "anchorlayout"
//
// Missing keys keep the values of Default. Command-line flags override the
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/anchorlayout/pkg/geom"
	"github.com/matzehuels/anchorlayout/pkg/layout"
)

// AppName names the config, cache and data directories.
const AppName = "anchorlayout"

// Config is the full configuration.
type Config struct {
	Canvas geom.Size    `toml:"canvas"`
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig mirrors layout.Options.
type LayoutConfig struct {
	Policy     string   `toml:"policy" validate:"oneof=none reject clamp"`
	MaxDepth   int      `toml:"max_depth" validate:"gte=1"`
	MaxPasses  int      `toml:"max_passes" validate:"gte=1"`
	Padding    float64  `toml:"padding" validate:"gte=0"`
	Spacing    float64  `toml:"spacing" validate:"gte=0"`
	RowHeight  float64  `toml:"row_height" validate:"gte=0"`
	Indent     float64  `toml:"indent" validate:"gte=0"`
	StackKinds []string `toml:"stack_kinds"`
}

// CacheConfig selects the resolution cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend" validate:"oneof=file redis none"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr" validate:"required_if=Backend redis"`
	Password  string   `toml:"redis_password"`
	RedisDB   int      `toml:"redis_db" validate:"gte=0"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

// StoreConfig selects the snapshot store backend.
type StoreConfig struct {
	Backend       string `toml:"backend" validate:"oneof=file mongo memory"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase string `toml:"mongo_database" validate:"required_if=Backend mongo"`
}

// ServerConfig configures `anchorlayout serve`.
type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Policy:     layout.PolicyNone.String(),
			MaxDepth:   layout.DefaultMaxDepth,
			MaxPasses:  layout.DefaultMaxPasses,
			Padding:    layout.DefaultPadding,
			Spacing:    layout.DefaultSpacing,
			RowHeight:  layout.DefaultRowHeight,
			Indent:     layout.DefaultIndent,
			StackKinds: layout.DefaultStackKinds,
		},
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Path returns $XDG_CONFIG_HOME/anchorlayout/config.toml, falling back to
// ~/.config.
func Path() (string, error) {
	dir, err := userDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/anchorlayout).
func CacheDir() (string, error) {
	return userDir("XDG_CACHE_HOME", ".cache")
}

func userDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// Load reads path on top of Default. An empty path loads the default
// location, and a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg and validates the result. Keys not present in
// data leave cfg unchanged.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LayoutOptions converts the layout and canvas sections.
func (c Config) LayoutOptions() (layout.Options, error) {
	policy, err := layout.ParsePolicy(c.Layout.Policy)
	if err != nil {
		return layout.Options{}, err
	}
	return layout.Options{
		Policy:     policy,
		Canvas:     c.Canvas,
		MaxDepth:   c.Layout.MaxDepth,
		MaxPasses:  c.Layout.MaxPasses,
		Padding:    c.Layout.Padding,
		Spacing:    c.Layout.Spacing,
		RowHeight:  c.Layout.RowHeight,
		Indent:     c.Layout.Indent,
		StackKinds: c.Layout.StackKinds,
	}, nil
}
