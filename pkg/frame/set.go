package frame

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFrameName is returned by [Set.Add] when the frame name is
	// empty or only whitespace.
	ErrInvalidFrameName = errors.New("frame name must not be empty")

	// ErrDuplicateFrame is returned by [Set.Add] when a frame with the same
	// name already exists. The decoders reject the whole batch on duplicates.
	ErrDuplicateFrame = errors.New("duplicate frame name")
)

// ParentConflict records a child claimed by more than one frame. Winner is
// the parent kept (the last declaration), Previous the one it replaced.
type ParentConflict struct {
	Child    string
	Previous string
	Winner   string
}

func (c ParentConflict) String() string {
	return fmt.Sprintf("%s claimed by %s and %s; %s wins", c.Child, c.Previous, c.Winner, c.Winner)
}

// Set is an ordered collection of uniquely named frames.
//
// Set is not safe for concurrent mutation. Concurrent readers are fine once
// the set is fully built and [Set.Parent] has been called once.
type Set struct {
	frames []*Frame
	index  map[string]int

	dirty     bool
	parents   map[string]string
	conflicts []ParentConflict
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// FromFrames builds a set from frames in order, failing on the first invalid
// or duplicate name.
func FromFrames(frames ...Frame) (*Set, error) {
	s := NewSet()
	for _, f := range frames {
		if err := s.Add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustFromFrames is like [FromFrames] but panics on error. Intended for tests
// and examples.
func MustFromFrames(frames ...Frame) *Set {
	s, err := FromFrames(frames...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a copy of f.
func (s *Set) Add(f Frame) error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ErrInvalidFrameName
	}
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFrame, name)
	}
	c := f.clone()
	c.Name = name
	s.index[name] = len(s.frames)
	s.frames = append(s.frames, &c)
	s.dirty = true
	return nil
}

// Frame returns the frame with the given name. The returned pointer aliases
// the set; callers may update geometry in place.
func (s *Set) Frame(name string) (*Frame, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.frames[i], true
}

// Has reports whether a frame with the given name exists.
func (s *Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Frames returns all frames in declaration order.
func (s *Set) Frames() []*Frame {
	return append([]*Frame(nil), s.frames...)
}

// Names returns all frame names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.frames))
	for i, f := range s.frames {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of frames.
func (s *Set) Len() int { return len(s.frames) }

// Index returns the declaration position of name, or -1.
func (s *Set) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Parent returns the name of the frame that declares name as a child.
func (s *Set) Parent(name string) (string, bool) {
	s.derive()
	p, ok := s.parents[name]
	return p, ok
}

// ChildrenOf returns the children whose derived parent is name, in the order
// name declares them. Children won by a later claimer are omitted.
func (s *Set) ChildrenOf(name string) []string {
	s.derive()
	f, ok := s.Frame(name)
	if !ok {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, c := range f.Children {
		if seen[c] || s.parents[c] != name {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Roots returns frames without a parent, in declaration order.
func (s *Set) Roots() []string {
	s.derive()
	var out []string
	for _, f := range s.frames {
		if _, ok := s.parents[f.Name]; !ok {
			out = append(out, f.Name)
		}
	}
	return out
}

// ParentConflicts returns children claimed by more than one frame.
func (s *Set) ParentConflicts() []ParentConflict {
	s.derive()
	return append([]ParentConflict(nil), s.conflicts...)
}

// Invalidate forces parent links to be recomputed after frames were edited
// through pointers returned by [Set.Frame].
func (s *Set) Invalidate() { s.dirty = true }

func (s *Set) derive() {
	if !s.dirty && s.parents != nil {
		return
	}
	s.parents = make(map[string]string)
	s.conflicts = nil
	for _, f := range s.frames {
		for _, c := range f.Children {
			if c == f.Name || !s.Has(c) {
				continue
			}
			if prev, ok := s.parents[c]; ok && prev != f.Name {
				s.conflicts = append(s.conflicts, ParentConflict{Child: c, Previous: prev, Winner: f.Name})
			}
			s.parents[c] = f.Name
		}
	}
	s.dirty = false
}
