package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalidShorthand is returned when an anchor shorthand cannot be parsed.
var ErrInvalidShorthand = errors.New("invalid anchor shorthand")

// Separator splits records in anchor and children shorthand.
const Separator = "~"

var (
	shorthandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Value", Pattern: `[^\s,~][^,~]*`},
	})

	anchorParser = participle.MustBuild[anchorSpec](
		participle.Lexer(shorthandLexer),
		participle.Elide("Whitespace"),
	)
)

// anchorSpec is one "point,relativeTo,relativePoint,x,y" record.
type anchorSpec struct {
	Point  string       `parser:"@Value?"`
	Fields []*specField `parser:"@@*"`
}

type specField struct {
	Value string `parser:"',' @Value?"`
}

// field returns the trimmed i-th field after the point.
func (s *anchorSpec) field(i int) string {
	if i < len(s.Fields) {
		return strings.TrimSpace(s.Fields[i].Value)
	}
	return ""
}

// offset parses a numeric field leniently: junk reads as zero.
func (s *anchorSpec) offset(i int) float64 {
	v, err := strconv.ParseFloat(s.field(i), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseAnchor parses a single shorthand record. Values may contain inner
// spaces; fields beyond the fifth are ignored.
func ParseAnchor(record string) (Anchor, error) {
	spec, err := anchorParser.ParseString("", record)
	if err != nil {
		return Anchor{}, fmt.Errorf("%w: %q: %v", ErrInvalidShorthand, record, err)
	}
	return NewAnchor(strings.TrimSpace(spec.Point), spec.field(0), spec.field(1), spec.offset(2), spec.offset(3)), nil
}

// ParseAnchors parses a "~"-separated list of shorthand records. Empty
// records are skipped.
func ParseAnchors(shorthand string) ([]Anchor, error) {
	var out []Anchor
	for _, rec := range strings.Split(shorthand, Separator) {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		a, err := ParseAnchor(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// FormatAnchor renders a as a shorthand record accepted by [ParseAnchor].
func FormatAnchor(a Anchor) string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	switch a.Target {
	case TargetOffset:
		rec := fmt.Sprintf("%s,%s,%s", a.Point, num(a.AbsX), num(a.AbsY))
		if a.OffsetX != 0 || a.OffsetY != 0 {
			rec += "," + num(a.OffsetX) + "," + num(a.OffsetY)
		}
		return rec
	case TargetFrame:
		return fmt.Sprintf("%s,%s,%s,%s,%s", a.Point, a.RelativeTo, a.RelativePoint, num(a.OffsetX), num(a.OffsetY))
	default:
		return fmt.Sprintf("%s,%s,%s,%s,%s", a.Point, RootName, a.RelativePoint, num(a.OffsetX), num(a.OffsetY))
	}
}

// FormatAnchors joins anchors with [Separator].
func FormatAnchors(anchors []Anchor) string {
	recs := make([]string, len(anchors))
	for i, a := range anchors {
		recs[i] = FormatAnchor(a)
	}
	return strings.Join(recs, Separator)
}

// ParseChildren splits a "~"-separated list of child names.
func ParseChildren(shorthand string) []string {
	var out []string
	for _, name := range strings.Split(shorthand, Separator) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
