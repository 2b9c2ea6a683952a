package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/anchorlayout/pkg/geom"
	"github.com/matzehuels/anchorlayout/pkg/layout"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.LayoutOptions()
	require.NoError(t, err)
	assert.Equal(t, layout.PolicyNone, opts.Policy)
	assert.Equal(t, layout.DefaultMaxDepth, opts.MaxDepth)
	assert.NoError(t, opts.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
[canvas]
width = 1920
height = 1080

[layout]
policy = "clamp"
stack_kinds = ["Menu"]

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "2h"
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, geom.Size{Width: 1920, Height: 1080}, cfg.Canvas)
	assert.Equal(t, []string{"Menu"}, cfg.Layout.StackKinds)
	assert.Equal(t, layout.DefaultPadding, cfg.Layout.Padding, "unset keys keep defaults")
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, "file", cfg.Store.Backend)

	opts, err := cfg.LayoutOptions()
	require.NoError(t, err)
	assert.Equal(t, layout.ClampIntoBounds, opts.Policy)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "[layout\n"},
		{"unknown key", "[layout]\nzoom = 2\n"},
		{"bad policy", "[layout]\npolicy = \"stretch\"\n"},
		{"negative padding", "[layout]\npadding = -1\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\nmongo_database = \"x\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative canvas", "[canvas]\nwidth = -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Parse([]byte(tt.data), &cfg))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err, "missing default file is not an error")
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err, "missing explicit file is an error")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":9090\"\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/cfg", AppName, "config.toml"), p)

	d, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/cache", AppName), d)
}
