package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/anchorlayout/pkg/cache"
	"github.com/matzehuels/anchorlayout/pkg/geom"
	"github.com/matzehuels/anchorlayout/pkg/layout"
	"github.com/matzehuels/anchorlayout/pkg/observability"
	"github.com/matzehuels/anchorlayout/pkg/pipeline"
	"github.com/matzehuels/anchorlayout/pkg/snapshot"
	"github.com/matzehuels/anchorlayout/pkg/store"
)

const declarations = `{
  "canvas": {"width": 250, "height": 250},
  "policy": "reject",
  "frames": [
    {"name": "Panel", "x": 100, "y": 50, "w": 200, "h": 100},
    {"name": "Label", "w": 40, "h": 10, "anchorSpec": "TOPLEFT,Panel,TOPLEFT,8,6"}
  ]
}`

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	st := store.NewMemoryStore()
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, logger), st, logger))
	t.Cleanup(srv.Close)
	return srv, st
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResolve(t *testing.T) {
	srv, st := newTestServer(t)

	resp := post(t, srv.URL+"/v1/resolve", declarations)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	snap := decodeBody[snapshot.Snapshot](t, resp)

	_, err := uuid.Parse(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "reject", snap.Policy)
	assert.Equal(t, []string{"Panel"}, snap.Rejected)
	label, ok := snap.Frame("Label")
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 108, Y: 56, Width: 40, Height: 10}, label.Rect())
	assert.Equal(t, "/v1/snapshots/"+snap.ID, resp.Header.Get("Location"))

	stored, err := st.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Frames, stored.Frames)

	again := post(t, srv.URL+"/v1/resolve", declarations)
	assert.Equal(t, "HIT", again.Header.Get("X-Cache"))
}

func TestResolveBareArray(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := post(t, srv.URL+"/v1/resolve", `[{"name": "A", "w": 10, "h": 10}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeBody[snapshot.Snapshot](t, resp)
	assert.Equal(t, "none", snap.Policy)
	assert.Len(t, snap.Frames, 1)
}

func TestResolveServerDefaults(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	s := New(pipeline.NewRunner(nil, nil, logger), nil, logger)
	defaults := layout.DefaultOptions()
	defaults.Policy = layout.ClampIntoBounds
	defaults.Canvas = geom.Size{Width: 300, Height: 300}
	s.SetDefaults(defaults)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	resp := post(t, srv.URL+"/v1/resolve", `[{"name": "Wide", "x": 280, "y": -20, "w": 50, "h": 20}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeBody[snapshot.Snapshot](t, resp)
	assert.Equal(t, "clamp", snap.Policy)
	wide, ok := snap.Frame("Wide")
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 250, Y: 0, Width: 50, Height: 20}, wide.Rect())

	resp = post(t, srv.URL+"/v1/resolve", `{"policy": "none", "frames": [{"name": "Wide", "x": 280, "y": -20, "w": 50, "h": 20}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[snapshot.Snapshot](t, resp)
	wide, _ = snap.Frame("Wide")
	assert.Equal(t, 280.0, wide.X, "request policy overrides the server default")
}

func TestResolveErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"duplicate frames", `[{"name":"A"},{"name":"A"}]`, http.StatusUnprocessableEntity, "DUPLICATE_FRAME"},
		{"bad json", `{"frames": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown policy", `{"policy": "stretch", "frames": []}`, http.StatusBadRequest, "INVALID_POLICY"},
		{"policy without canvas", `{"policy": "clamp", "frames": []}`, http.StatusBadRequest, "INVALID_POLICY"},
		{"separator in name", `[{"name":"a~b"}]`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/resolve", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeBody[errorResponse](t, resp)
			assert.Equal(t, tt.code, string(body.Error.Code))
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestGraph(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/v1/graph?format=mermaid", declarations)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.True(t, strings.HasPrefix(buf.String(), "flowchart TD"))

	resp = post(t, srv.URL+"/v1/graph?format=gif", declarations)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClamp(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/v1/clamp", `{"rect": {"x": 280, "y": -20, "width": 50, "height": 50}, "canvas": {"width": 300, "height": 300}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[clampResponse](t, resp)
	assert.Equal(t, geom.Rect{X: 250, Y: 0, Width: 50, Height: 50}, out.Rect)
	assert.True(t, out.Moved)

	resp = post(t, srv.URL+"/v1/clamp", `{"rect": {"x": 1, "y": 1, "width": 5, "height": 5}, "canvas": {"width": 0, "height": 0}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSnapshots(t *testing.T) {
	srv, _ := newTestServer(t)
	snap := decodeBody[snapshot.Snapshot](t, post(t, srv.URL+"/v1/resolve", declarations))

	resp, err := http.Get(srv.URL + "/v1/snapshots/" + snap.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[snapshot.Snapshot](t, resp)
	assert.Equal(t, snap.ID, got.ID)

	list, err := http.Get(srv.URL + "/v1/snapshots")
	require.NoError(t, err)
	defer list.Body.Close()
	listed := decodeBody[struct {
		Snapshots []store.Summary `json:"snapshots"`
	}](t, list)
	require.Len(t, listed.Snapshots, 1)
	assert.Equal(t, 1, listed.Snapshots[0].Frames)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/snapshots/"+snap.ID, nil)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	missing, err := http.Get(srv.URL + "/v1/snapshots/" + snap.ID)
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, "SNAPSHOT_NOT_FOUND", string(decodeBody[errorResponse](t, missing).Error.Code))

	invalid, err := http.Get(srv.URL + "/v1/snapshots/not-a-uuid")
	require.NoError(t, err)
	defer invalid.Body.Close()
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu    sync.Mutex
	paths []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, method+" "+path)
}

func TestHTTPHooksUseRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv, _ := newTestServer(t)
	id := uuid.NewString()
	resp, err := http.Get(srv.URL + "/v1/snapshots/" + id)
	require.NoError(t, err)
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"GET /v1/snapshots/{id}"}, hooks.paths)
}
