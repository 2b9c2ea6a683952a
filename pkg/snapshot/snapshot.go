// Package snapshot serializes resolution results.
//
// A Snapshot records everything a consumer needs to render or inspect a
// resolved frame set without re-running the resolver: absolute and
// parent-local geometry per frame, the policy and canvas that produced it,
// and the diagnostics of the run. Snapshots carry bson tags so the Mongo
// store can persist them unchanged.
//
//	res := layout.ResolveAll(set, opts)
//	snap := snapshot.FromResult(set, res, declHash)
//	data, _ := snapshot.Marshal(snap)
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
	"github.com/matzehuels/anchorlayout/pkg/layout"
)

// FrameGeometry is the resolved placement of one kept frame.
type FrameGeometry struct {
	Name   string  `json:"name" bson:"name"`
	Parent string  `json:"parent,omitempty" bson:"parent,omitempty"`
	Kind   string  `json:"kind,omitempty" bson:"kind,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	LocalX float64 `json:"local_x" bson:"local_x"` // Relative to Parent, or equal to X for roots
	LocalY float64 `json:"local_y" bson:"local_y"`
	Hidden bool    `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

// Rect returns the absolute rectangle.
func (g FrameGeometry) Rect() geom.Rect {
	return geom.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

// Snapshot is a persisted resolution result.
type Snapshot struct {
	ID              string              `json:"id" bson:"_id"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	DeclarationHash string              `json:"declaration_hash,omitempty" bson:"declaration_hash,omitempty"`
	Policy          string              `json:"policy" bson:"policy"`
	Canvas          geom.Size           `json:"canvas" bson:"canvas"`
	Frames          []FrameGeometry     `json:"frames" bson:"frames"`
	Rejected        []string            `json:"rejected,omitempty" bson:"rejected,omitempty"`
	Diagnostics     []layout.Diagnostic `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
	Passes          int                 `json:"passes" bson:"passes"`
	Cyclic          bool                `json:"cyclic,omitempty" bson:"cyclic,omitempty"`
}

// FromResult captures res with a fresh ID. Frames appear in resolution
// order; parent-local positions come from layout.Reparent.
func FromResult(set *frame.Set, res *layout.Result, declHash string) *Snapshot {
	tree := layout.Reparent(set, res)
	s := &Snapshot{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		DeclarationHash: declHash,
		Policy:          res.Policy.String(),
		Canvas:          res.Canvas,
		Rejected:        res.Rejected,
		Diagnostics:     res.Diagnostics,
		Passes:          res.Passes,
		Cyclic:          res.Cyclic,
	}
	s.Frames = geometry(set, tree, func(name string) geom.Rect { return res.Frames[name] })
	return s
}

// FromTree lists the current geometry of tree, for callers that edit a
// tree after resolution.
func FromTree(set *frame.Set, tree *layout.Tree) []FrameGeometry {
	return geometry(set, tree, func(name string) geom.Rect {
		r, _ := tree.Rect(name)
		return r
	})
}

func geometry(set *frame.Set, tree *layout.Tree, rect func(string) geom.Rect) []FrameGeometry {
	names := tree.Names()
	out := make([]FrameGeometry, 0, len(names))
	for _, name := range names {
		r := rect(name)
		local, _ := tree.Local(name)
		g := FrameGeometry{
			Name:   name,
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
			LocalX: local.X,
			LocalY: local.Y,
		}
		g.Parent, _ = tree.Parent(name)
		if f, ok := set.Frame(name); ok {
			g.Kind = f.Kind
			g.Hidden = f.Hidden
		}
		out = append(out, g)
	}
	return out
}

// Frame returns the geometry recorded for name.
func (s *Snapshot) Frame(name string) (FrameGeometry, bool) {
	for _, g := range s.Frames {
		if g.Name == name {
			return g, true
		}
	}
	return FrameGeometry{}, false
}

// Rects returns the absolute rectangle of every frame keyed by name.
func (s *Snapshot) Rects() map[string]geom.Rect {
	out := make(map[string]geom.Rect, len(s.Frames))
	for _, g := range s.Frames {
		out[g.Name] = g.Rect()
	}
	return out
}

// Marshal serializes a snapshot to pretty-printed JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON into a snapshot. The ID is required.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("snapshot must have an id")
	}
	return &s, nil
}

// WriteFile writes a snapshot to a JSON file.
func WriteFile(s *Snapshot, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a snapshot from a JSON file.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
