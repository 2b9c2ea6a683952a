package frame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/anchorlayout/pkg/geom"
)

var (
	// ErrUnknownFormat is returned when a declaration file extension or
	// format name is not one of json, yaml, yml or toml.
	ErrUnknownFormat = errors.New("unknown declaration format")

	// ErrInvalidDeclaration is returned when a declaration document fails to
	// decode or validate.
	ErrInvalidDeclaration = errors.New("invalid frame declaration")
)

var validate = validator.New()

// Format identifies a declaration encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat normalizes a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ref is a loosely typed anchor reference. Producers emit either a frame
// name or a number (the absolute-offset shorthand); both decode to text.
type Ref string

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("anchor reference must be a string or number: %s", data)
	}
	*r = Ref(n.String())
	return nil
}

func (r *Ref) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	return r.set(v)
}

func (r *Ref) UnmarshalTOML(v any) error { return r.set(v) }

func (r *Ref) set(v any) error {
	switch v := v.(type) {
	case nil:
		*r = ""
	case string:
		*r = Ref(v)
	case float64:
		*r = Ref(strconv.FormatFloat(v, 'f', -1, 64))
	case int, int64, uint64:
		*r = Ref(fmt.Sprint(v))
	default:
		return fmt.Errorf("anchor reference must be a string or number, got %T", v)
	}
	return nil
}

// AnchorDecl is the object form of an anchor.
type AnchorDecl struct {
	Point         string  `json:"point,omitempty" yaml:"point,omitempty" toml:"point,omitempty"`
	RelativeTo    Ref     `json:"relativeTo,omitempty" yaml:"relativeTo,omitempty" toml:"relativeTo,omitempty"`
	RelativePoint Ref     `json:"relativePoint,omitempty" yaml:"relativePoint,omitempty" toml:"relativePoint,omitempty"`
	X             float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y             float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
}

// Anchor converts the declaration into a typed anchor.
func (d AnchorDecl) Anchor() Anchor {
	return NewAnchor(d.Point, string(d.RelativeTo), string(d.RelativePoint), d.X, d.Y)
}

func declOf(a Anchor) AnchorDecl {
	d := AnchorDecl{Point: a.Point.String(), X: a.OffsetX, Y: a.OffsetY}
	switch a.Target {
	case TargetOffset:
		d.RelativeTo = Ref(strconv.FormatFloat(a.AbsX, 'f', -1, 64))
		d.RelativePoint = Ref(strconv.FormatFloat(a.AbsY, 'f', -1, 64))
	case TargetFrame:
		d.RelativeTo = Ref(a.RelativeTo)
		d.RelativePoint = Ref(a.RelativePoint.String())
	default:
		d.RelativeTo = RootName
		d.RelativePoint = Ref(a.RelativePoint.String())
	}
	return d
}

// Declaration is one frame record as emitted by a producer.
type Declaration struct {
	Name       string       `json:"name" yaml:"name" toml:"name" validate:"required"`
	Type       string       `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Shown      *bool        `json:"shown,omitempty" yaml:"shown,omitempty" toml:"shown,omitempty"`
	X          *float64     `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y          *float64     `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	W          *float64     `json:"w,omitempty" yaml:"w,omitempty" toml:"w,omitempty"`
	H          *float64     `json:"h,omitempty" yaml:"h,omitempty" toml:"h,omitempty"`
	Scale      float64      `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty" validate:"gte=0"`
	AnchorSpec string       `json:"anchorSpec,omitempty" yaml:"anchorSpec,omitempty" toml:"anchorSpec,omitempty"`
	Anchors    []AnchorDecl `json:"anchors,omitempty" yaml:"anchors,omitempty" toml:"anchors,omitempty"`
	ChildSpec  string       `json:"childSpec,omitempty" yaml:"childSpec,omitempty" toml:"childSpec,omitempty"`
	Children   []string     `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Frame converts the declaration into a frame. Shorthand anchors come before
// object anchors; shorthand children after listed ones.
func (d Declaration) Frame() (Frame, error) {
	f := Frame{
		Name:     strings.TrimSpace(d.Name),
		Kind:     d.Type,
		Hidden:   d.Shown != nil && !*d.Shown,
		X:        clonePtr(d.X),
		Y:        clonePtr(d.Y),
		Width:    clonePtr(d.W),
		Height:   clonePtr(d.H),
		Scale:    d.Scale,
		Children: append(append([]string(nil), d.Children...), ParseChildren(d.ChildSpec)...),
	}
	if d.AnchorSpec != "" {
		anchors, err := ParseAnchors(d.AnchorSpec)
		if err != nil {
			return Frame{}, fmt.Errorf("frame %s: %w", f.Name, err)
		}
		f.Anchors = anchors
	}
	for _, a := range d.Anchors {
		f.Anchors = append(f.Anchors, a.Anchor())
	}
	return f, nil
}

// DeclarationOf converts a frame back into its declaration form. Anchors are
// always emitted as objects.
func DeclarationOf(f *Frame) Declaration {
	d := Declaration{
		Name:     f.Name,
		Type:     f.Kind,
		X:        clonePtr(f.X),
		Y:        clonePtr(f.Y),
		W:        clonePtr(f.Width),
		H:        clonePtr(f.Height),
		Scale:    f.Scale,
		Children: append([]string(nil), f.Children...),
	}
	if f.Hidden {
		shown := false
		d.Shown = &shown
	}
	for _, a := range f.Anchors {
		d.Anchors = append(d.Anchors, declOf(a))
	}
	return d
}

// Document is a declaration batch with an optional canvas size.
type Document struct {
	Canvas *geom.Size    `json:"canvas,omitempty" yaml:"canvas,omitempty" toml:"canvas,omitempty"`
	Frames []Declaration `json:"frames" yaml:"frames" toml:"frames" validate:"dive"`
}

// NewDocument captures the frames of s in declaration order.
func NewDocument(s *Set) *Document {
	doc := &Document{Frames: make([]Declaration, 0, s.Len())}
	for _, f := range s.Frames() {
		doc.Frames = append(doc.Frames, DeclarationOf(f))
	}
	return doc
}

// Set builds a frame set. Any invalid or duplicate name rejects the batch.
func (d *Document) Set() (*Set, error) {
	s := NewSet()
	for i, decl := range d.Frames {
		f, err := decl.Frame()
		if err != nil {
			return nil, fmt.Errorf("frames[%d]: %w", i, err)
		}
		if err := s.Add(f); err != nil {
			return nil, fmt.Errorf("frames[%d]: %w", i, err)
		}
	}
	return s, nil
}

func (d *Document) validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
	}
	return nil
}

// DecodeJSON reads a document. A bare top-level array is accepted as the
// frame list.
func DecodeJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	doc := &Document{}
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &doc.Frames)
	} else {
		err = json.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
	}
	return doc, doc.validate()
}

// DecodeYAML reads a YAML document.
func DecodeYAML(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(r, yaml.Validator(validate))
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
	}
	return doc, doc.validate()
}

// DecodeTOML reads a TOML document with [[frames]] tables.
func DecodeTOML(r io.Reader) (*Document, error) {
	doc := &Document{}
	if _, err := toml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
	}
	return doc, doc.validate()
}

// Decode reads a document in the given format.
func Decode(r io.Reader, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatTOML:
		return DecodeTOML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ReadFile decodes a declaration file, choosing the format by extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// Load reads a declaration file and builds its frame set.
func Load(path string) (*Set, *Document, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := doc.Set()
	if err != nil {
		return nil, nil, err
	}
	return s, doc, nil
}

// EncodeJSON writes doc as indented JSON. The encoding is deterministic for
// a given document and is used for content hashing.
func EncodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// EncodeYAML writes doc as YAML.
func EncodeYAML(w io.Writer, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
