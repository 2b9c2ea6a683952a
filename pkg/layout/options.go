package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorlayout/pkg/geom"
)

// Policy selects how resolved frames are constrained to the canvas.
type Policy int

const (
	// PolicyNone leaves resolved geometry untouched.
	PolicyNone Policy = iota
	// RejectOutside drops frames whose rectangle is not fully inside the
	// canvas. Used by read-only visualization.
	RejectOutside
	// ClampIntoBounds translates frames (never resizes them) so they fit the
	// canvas. Used by interactive hosts.
	ClampIntoBounds
)

var policyNames = map[Policy]string{
	PolicyNone:      "none",
	RejectOutside:   "reject",
	ClampIntoBounds: "clamp",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts "none", "reject", "reject-outside", "clamp" and
// "clamp-into-bounds", ignoring case.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PolicyNone, nil
	case "reject", "reject-outside", "rejectoutside":
		return RejectOutside, nil
	case "clamp", "clamp-into-bounds", "clampintobounds":
		return ClampIntoBounds, nil
	}
	return PolicyNone, fmt.Errorf("unknown policy %q (want none, reject or clamp)", s)
}

func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

const (
	DefaultMaxDepth  = 20
	DefaultMaxPasses = 4
	DefaultPadding   = 8
	DefaultSpacing   = 4
	DefaultRowHeight = 20
	DefaultIndent    = 10
)

// DefaultStackKinds selects stack layout for tree- and list-like containers.
var DefaultStackKinds = []string{"Tree", "List"}

// Options configures a resolution run.
type Options struct {
	Policy Policy
	// Canvas bounds the policy. A zero canvas disables the policy.
	Canvas geom.Size

	// MaxDepth bounds recursive anchor resolution. Zero means DefaultMaxDepth.
	MaxDepth int
	// MaxPasses caps size inference passes. Zero means DefaultMaxPasses.
	MaxPasses int

	// Padding is the total padding added to each inferred dimension.
	Padding float64
	// Spacing separates consecutive children of an inferred container.
	Spacing float64
	// RowHeight is the fixed row height of stack layout. Zero uses each
	// child's own height.
	RowHeight float64
	// Indent is the left indent of stack layout rows.
	Indent float64
	// StackKinds are matched case-insensitively against type tags and names.
	// Nil means DefaultStackKinds.
	StackKinds []string

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultOptions returns options with the default paddings and limits.
func DefaultOptions() Options {
	return Options{
		MaxDepth:   DefaultMaxDepth,
		MaxPasses:  DefaultMaxPasses,
		Padding:    DefaultPadding,
		Spacing:    DefaultSpacing,
		RowHeight:  DefaultRowHeight,
		Indent:     DefaultIndent,
		StackKinds: DefaultStackKinds,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Policy < PolicyNone || o.Policy > ClampIntoBounds {
		return fmt.Errorf("invalid policy %d", o.Policy)
	}
	if o.Policy != PolicyNone && o.Canvas.IsZero() {
		return fmt.Errorf("policy %s requires a canvas size", o.Policy)
	}
	if o.Canvas.Width < 0 || o.Canvas.Height < 0 {
		return fmt.Errorf("canvas size must not be negative")
	}
	if o.MaxDepth < 0 || o.MaxPasses < 0 {
		return fmt.Errorf("max depth and max passes must not be negative")
	}
	if o.Padding < 0 || o.Spacing < 0 || o.RowHeight < 0 || o.Indent < 0 {
		return fmt.Errorf("padding, spacing, row height and indent must not be negative")
	}
	return nil
}

// Normalized returns o with zero limits and nil stack kinds replaced by
// their defaults. Options that normalize equally resolve equally.
func (o Options) Normalized() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxPasses <= 0 {
		o.MaxPasses = DefaultMaxPasses
	}
	if o.StackKinds == nil {
		o.StackKinds = DefaultStackKinds
	}
	return o
}

func (o Options) withDefaults() Options {
	o = o.Normalized()
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}
