package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

func snap(id string, created time.Time, frames ...string) *snapshot.Snapshot {
	s := &snapshot.Snapshot{ID: id, CreatedAt: created, Policy: "clamp"}
	for _, f := range frames {
		s.Frames = append(s.Frames, snapshot.FrameGeometry{Name: f, Width: 10, Height: 10})
	}
	return s
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"file":   fs,
		"memory": NewMemoryStore(),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer st.Close()

			_, err := st.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, st.Delete(ctx, "missing"), ErrNotFound)

			require.NoError(t, st.Put(ctx, snap("a", base, "Panel")))
			require.NoError(t, st.Put(ctx, snap("b", base.Add(time.Hour), "Panel", "Label")))

			got, err := st.Get(ctx, "b")
			require.NoError(t, err)
			assert.Len(t, got.Frames, 2)

			list, err := st.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "b", list[0].ID, "newest first")
			assert.Equal(t, 2, list[0].Frames)
			assert.Equal(t, "clamp", list[1].Policy)

			require.NoError(t, st.Put(ctx, snap("a", base, "Panel", "Label", "Button")))
			got, _ = st.Get(ctx, "a")
			assert.Len(t, got.Frames, 3, "put replaces")

			require.NoError(t, st.Delete(ctx, "a"))
			_, err = st.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, st.Put(context.Background(), snap("a", time.Now())))

	list, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, dir, st.Dir())
}

func TestFileStorePathTraversal(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd.json"), st.path("../../etc/passwd"))
}
