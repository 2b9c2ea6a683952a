package frame

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/anchorlayout/pkg/geom"
)

const jsonFeed = `[
  {"name": "Panel", "type": "Frame", "x": 10, "y": 10, "w": 200, "h": 100, "childSpec": "Title~Body"},
  {"name": "Title", "anchorSpec": "TOP,Panel,TOP,0,-4", "w": 80, "h": 20},
  {"name": "Body", "shown": false, "anchors": [{"point": "TOPLEFT", "relativeTo": "Title", "relativePoint": "BOTTOMLEFT", "y": -2}]},
  {"name": "Pinned", "anchors": [{"point": "TOPLEFT", "relativeTo": 40, "relativePoint": 50}]}
]`

func TestDecodeJSONArray(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(jsonFeed))
	require.NoError(t, err)
	require.Len(t, doc.Frames, 4)

	s, err := doc.Set()
	require.NoError(t, err)

	panel, _ := s.Frame("Panel")
	assert.Equal(t, "Frame", panel.Kind)
	assert.Equal(t, []string{"Title", "Body"}, panel.Children)
	assert.Equal(t, geom.Size{Width: 200, Height: 100}, panel.DeclaredSize())

	title, _ := s.Frame("Title")
	require.Len(t, title.Anchors, 1)
	assert.Equal(t, geom.Top, title.Anchors[0].Point)
	assert.Equal(t, -4.0, title.Anchors[0].OffsetY)

	body, _ := s.Frame("Body")
	assert.True(t, body.Hidden)
	assert.Equal(t, "Title", body.Anchors[0].RelativeTo)

	pinned, _ := s.Frame("Pinned")
	assert.Equal(t, TargetOffset, pinned.Anchors[0].Target)
	assert.Equal(t, 40.0, pinned.Anchors[0].AbsX)
	assert.Equal(t, 50.0, pinned.Anchors[0].AbsY)

	p, _ := s.Parent("Body")
	assert.Equal(t, "Panel", p)
}

func TestDecodeJSONObject(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(`{"canvas": {"width": 800, "height": 600}, "frames": [{"name": "A"}]}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Canvas)
	assert.Equal(t, 800.0, doc.Canvas.Width)
	assert.Len(t, doc.Frames, 1)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing name", `[{"type": "Frame"}]`, ErrInvalidDeclaration},
		{"negative scale", `[{"name": "A", "scale": -1}]`, ErrInvalidDeclaration},
		{"bad json", `[{"name": `, ErrInvalidDeclaration},
		{"bad reference", `[{"name": "A", "anchors": [{"relativeTo": true}]}]`, ErrInvalidDeclaration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDocumentSetRejectsDuplicateBatch(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(`[{"name": "A"}, {"name": "B"}, {"name": "A"}]`))
	require.NoError(t, err)
	_, err = doc.Set()
	assert.ErrorIs(t, err, ErrDuplicateFrame)
}

func TestDecodeYAML(t *testing.T) {
	in := `
canvas:
  width: 300
  height: 300
frames:
  - name: A
    x: 100
    y: 100
    w: 50
    h: 50
  - name: B
    anchors:
      - point: TOPLEFT
        relativeTo: A
        relativePoint: BOTTOMRIGHT
        x: 5
        y: 5
  - name: C
    anchors:
      - relativeTo: 12
        relativePoint: 34
`
	doc, err := DecodeYAML(strings.NewReader(in))
	require.NoError(t, err)
	s, err := doc.Set()
	require.NoError(t, err)

	b, _ := s.Frame("B")
	assert.Equal(t, Anchor{Point: geom.TopLeft, Target: TargetFrame, RelativeTo: "A", RelativePoint: geom.BottomRight, OffsetX: 5, OffsetY: 5}, b.Anchors[0])

	c, _ := s.Frame("C")
	assert.Equal(t, TargetOffset, c.Anchors[0].Target)
	assert.Equal(t, 34.0, c.Anchors[0].AbsY)
}

func TestDecodeYAMLValidates(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("frames:\n  - type: Frame\n"))
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
}

func TestDecodeTOML(t *testing.T) {
	in := `
[canvas]
width = 300.0
height = 300.0

[[frames]]
name = "A"
x = 100.0
y = 100.0
w = 50.0
h = 50.0

[[frames]]
name = "B"
anchorSpec = "TOPLEFT,A,BOTTOMRIGHT,5,5"

[[frames]]
name = "C"
children = ["B"]

  [[frames.anchors]]
  point = "CENTER"
  relativeTo = 7
  relativePoint = "8"
`
	doc, err := DecodeTOML(strings.NewReader(in))
	require.NoError(t, err)
	s, err := doc.Set()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, s.Names())

	c, _ := s.Frame("C")
	assert.Equal(t, TargetOffset, c.Anchors[0].Target)
	assert.Equal(t, 7.0, c.Anchors[0].AbsX)
	assert.Equal(t, 8.0, c.Anchors[0].AbsY)

	p, _ := s.Parent("B")
	assert.Equal(t, "C", p)
}

func TestReadFileAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonFeed), 0o644))

	s, _, err := Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, NewDocument(s)))
	doc, err := DecodeJSON(&buf)
	require.NoError(t, err)
	again, err := doc.Set()
	require.NoError(t, err)

	for _, name := range s.Names() {
		want, _ := s.Frame(name)
		got, ok := again.Frame(name)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, err = ReadFile(filepath.Join(dir, "frames.xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, ".YML": FormatYAML, "yaml": FormatYAML, "toml": FormatTOML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.*"))
	require.NoError(t, err)
	loaded := 0
	for _, path := range paths {
		if _, err := FormatFromPath(path); err != nil || filepath.Base(path) == "config.toml" {
			continue
		}
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, doc, err := Load(path)
			require.NoError(t, err)
			require.NotNil(t, doc.Canvas)
			assert.Positive(t, s.Len())
		})
		loaded++
	}
	assert.GreaterOrEqual(t, loaded, 2)
}
