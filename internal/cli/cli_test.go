package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/anchorlayout/pkg/snapshot"
	"github.com/matzehuels/anchorlayout/pkg/store"
)

const hudYAML = `canvas:
  width: 250
  height: 250
frames:
  - name: Panel
    type: Frame
    x: 100
    y: 50
    w: 200
    h: 100
    childSpec: Label
  - name: Label
    w: 40
    h: 10
    anchorSpec: TOPLEFT,Panel,TOPLEFT,8,6
`

// testEnv is a CLI with its config, cache and store under a temp dir.
type testEnv struct {
	dir    string
	config string
	decl   string
	out    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.toml"),
		decl:   filepath.Join(dir, "hud.yaml"),
		out:    &bytes.Buffer{},
	}
	cfg := "[cache]\ndir = " + quote(filepath.Join(dir, "cache")) +
		"\n\n[store]\ndir = " + quote(filepath.Join(dir, "snapshots")) + "\n"
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(env.decl, []byte(hudYAML), 0o644))
	return env
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Out = e.out
	root := c.RootCommand()
	root.SetOut(e.out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", e.config}, args...))
	return root.ExecuteContext(context.Background())
}

func TestResolveJSON(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(t, "resolve", env.decl, "--format", "json", "--policy", "reject"))

	snap, err := snapshot.Unmarshal(env.out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "reject", snap.Policy)
	assert.Equal(t, []string{"Panel"}, snap.Rejected)
	label, ok := snap.Frame("Label")
	require.True(t, ok)
	assert.Equal(t, 108.0, label.X)
	assert.Equal(t, 56.0, label.Y)
}

func TestResolveYAML(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(t, "resolve", env.decl, "--format", "yaml"))

	var out struct {
		Policy string `yaml:"policy"`
		Frames []struct {
			Name string  `yaml:"name"`
			X    float64 `yaml:"x"`
		} `yaml:"frames"`
	}
	require.NoError(t, yaml.Unmarshal(env.out.Bytes(), &out))
	assert.Equal(t, "none", out.Policy)
	assert.Len(t, out.Frames, 2)
}

func TestResolveTable(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(t, "resolve", env.decl))
	out := env.out.String()
	assert.Contains(t, out, "Panel")
	assert.Contains(t, out, "108")
	assert.Contains(t, out, "2 frames")
	assert.Contains(t, out, iconFresh)

	require.NoError(t, env.run(t, "resolve", env.decl))
	assert.Contains(t, env.out.String(), iconCached)

	require.NoError(t, env.run(t, "--no-cache", "resolve", env.decl))
	assert.Contains(t, env.out.String(), iconFresh)
}

func TestResolveWriteAndSave(t *testing.T) {
	env := newTestEnv(t)
	outPath := filepath.Join(env.dir, "snap.json")
	require.NoError(t, env.run(t, "resolve", env.decl, "-f", "json", "-o", outPath, "--save"))

	snap, err := snapshot.ReadFile(outPath)
	require.NoError(t, err)

	st, err := store.NewFileStore(filepath.Join(env.dir, "snapshots"))
	require.NoError(t, err)
	stored, err := st.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Frames, stored.Frames)

	require.NoError(t, env.run(t, "snapshot", "list"))
	assert.Contains(t, env.out.String(), snap.ID)

	require.NoError(t, env.run(t, "snapshot", "show", snap.ID, "-f", "json"))
	shown, err := snapshot.Unmarshal(env.out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, snap.ID, shown.ID)

	require.NoError(t, env.run(t, "snapshot", "delete", snap.ID))
	_, err = st.Get(context.Background(), snap.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, env.run(t, "snapshot", "show", snap.ID))
}

func TestResolveErrors(t *testing.T) {
	env := newTestEnv(t)
	assert.Error(t, env.run(t, "resolve", filepath.Join(env.dir, "missing.yaml")))
	assert.Error(t, env.run(t, "resolve", env.decl, "--format", "xml"))
	assert.Error(t, env.run(t, "resolve", env.decl, "--policy", "stretch"))
	assert.Error(t, env.run(t, "resolve", env.decl, "--max-depth", "-1"))
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("[layout]\npolicy = \"stretch\"\n"), 0o644))
	assert.Error(t, env.run(t, "resolve", env.decl))
}

func TestGraphCommand(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(t, "graph", env.decl, "--format", "mermaid"))
	assert.True(t, strings.HasPrefix(env.out.String(), "flowchart TD"), env.out.String())
	assert.Contains(t, env.out.String(), "Label")

	require.NoError(t, env.run(t, "graph", env.decl))
	assert.Contains(t, env.out.String(), "digraph")
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(t, "cache", "path"))
	assert.Equal(t, filepath.Join(env.dir, "cache"), strings.TrimSpace(env.out.String()))

	require.NoError(t, env.run(t, "resolve", env.decl))
	entries, err := os.ReadDir(filepath.Join(env.dir, "cache"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	require.NoError(t, env.run(t, "cache", "clear"))
	require.NoError(t, env.run(t, "resolve", env.decl))
	assert.Contains(t, env.out.String(), iconFresh)
}

func TestResolveEmptyStackKinds(t *testing.T) {
	env := newTestEnv(t)
	list := filepath.Join(env.dir, "list.json")
	require.NoError(t, os.WriteFile(list, []byte(`[
  {"name": "MyList", "childSpec": "A~B"},
  {"name": "A", "w": 40, "h": 20},
  {"name": "B", "w": 40, "h": 20}
]`), 0o644))

	width := func(args ...string) float64 {
		t.Helper()
		require.NoError(t, env.run(t, append([]string{"resolve", list, "-f", "json"}, args...)...))
		snap, err := snapshot.Unmarshal(env.out.Bytes())
		require.NoError(t, err)
		g, ok := snap.Frame("MyList")
		require.True(t, ok)
		return g.Width
	}

	stacked := width()
	flat := width("--stack-kinds", "")
	assert.Greater(t, stacked, flat)
	assert.Equal(t, flat, width("--stack-kinds", "Tree"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Tree", "List"}, splitList(" Tree, ,List,"))
	assert.Nil(t, splitList(""))
}
