package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/anchorlayout/pkg/errors"
	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
	"github.com/matzehuels/anchorlayout/pkg/layout"
	"github.com/matzehuels/anchorlayout/pkg/pipeline"
	"github.com/matzehuels/anchorlayout/pkg/store"
)

// resolveOptions are the request fields next to the declaration document.
// The document's canvas is shared with the policy.
type resolveOptions struct {
	Policy     string   `json:"policy"`
	MaxDepth   int      `json:"max_depth"`
	MaxPasses  int      `json:"max_passes"`
	Padding    *float64 `json:"padding"`
	Spacing    *float64 `json:"spacing"`
	RowHeight  *float64 `json:"row_height"`
	Indent     *float64 `json:"indent"`
	StackKinds []string `json:"stack_kinds"`
	Refresh    bool     `json:"refresh"`
}

// layoutOptions applies the request fields over defaults.
func (o resolveOptions) layoutOptions(defaults layout.Options, canvas *geom.Size) (layout.Options, error) {
	opts := defaults
	if o.Policy != "" {
		policy, err := layout.ParsePolicy(o.Policy)
		if err != nil {
			return layout.Options{}, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "invalid policy")
		}
		opts.Policy = policy
	}
	if canvas != nil {
		opts.Canvas = *canvas
	}
	if o.MaxDepth > 0 {
		opts.MaxDepth = o.MaxDepth
	}
	if o.MaxPasses > 0 {
		opts.MaxPasses = o.MaxPasses
	}
	override(&opts.Padding, o.Padding)
	override(&opts.Spacing, o.Spacing)
	override(&opts.RowHeight, o.RowHeight)
	override(&opts.Indent, o.Indent)
	if o.StackKinds != nil {
		opts.StackKinds = o.StackKinds
	}
	return opts, nil
}

func override(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readDeclarations decodes the request body as a JSON declaration document
// and checks frame names against the API limits.
func (s *Server) readDeclarations(r *http.Request) ([]byte, *frame.Set, *frame.Document, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	set, doc, err := s.runner.Decode(r.Context(), "request", bytes.NewReader(body), frame.FormatJSON)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, name := range set.Names() {
		if err := errors.ValidateFrameName(name); err != nil {
			return nil, nil, nil, err
		}
	}
	return body, set, doc, nil
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	body, set, doc, err := s.readDeclarations(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var ro resolveOptions
	if len(body) > 0 && body[0] == '{' {
		if err := json.Unmarshal(body, &ro); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options"))
			return
		}
	}
	lopts, err := ro.layoutOptions(s.defaults, doc.Canvas)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, hit, err := s.runner.Resolve(r.Context(), set, pipeline.Options{Layout: lopts, Refresh: ro.Refresh})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store snapshot"))
		return
	}

	w.Header().Set("X-Cache", cacheHeader(hit))
	w.Header().Set("Location", "/v1/snapshots/"+snap.ID)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	_, set, _, err := s.readDeclarations(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.GraphOptions{
		Format:   r.URL.Query().Get("format"),
		Detailed: r.URL.Query().Get("detailed") == "true",
	}
	if r.URL.Query().Get("cycles") == "true" {
		opts.Highlight = pipeline.Cycles(set)
	}
	data, hit, err := s.runner.Graph(r.Context(), set, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch opts.Format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type clampRequest struct {
	Rect   geom.Rect `json:"rect"`
	Canvas geom.Size `json:"canvas"`
}

type clampResponse struct {
	Rect  geom.Rect `json:"rect"`
	Moved bool      `json:"moved"`
}

// handleClamp repositions a single rectangle without a resolution pass.
// Interactive hosts call it while a frame is being dragged.
func (s *Server) handleClamp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var req clampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode clamp request"))
		return
	}
	if req.Canvas.Width <= 0 || req.Canvas.Height <= 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "canvas width and height must be positive"))
		return
	}
	if req.Rect.Width < 0 || req.Rect.Height < 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "rect size must not be negative"))
		return
	}
	out := layout.ClampFrame(req.Rect, req.Canvas)
	writeJSON(w, http.StatusOK, clampResponse{Rect: out, Moved: out != req.Rect})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list snapshots"))
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": list})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSnapshotID(id); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, storeError(err, id))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSnapshotID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, storeError(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func storeError(err error, id string) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeSnapshotNotFound, err, "snapshot %s", id)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "snapshot %s", id)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
