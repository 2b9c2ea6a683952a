package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
	"github.com/matzehuels/anchorlayout/pkg/layout"
	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// defaultInspectCanvas is used when neither flags, config nor the document
// name a canvas. Dragging needs bounds to clamp against.
var defaultInspectCanvas = geom.Size{Width: 1920, Height: 1080}

// inspectCommand creates the inspect command, an interactive view of a
// resolved layout where frames can be nudged and resized.
func (c *CLI) inspectCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse and nudge resolved frames interactively",
		Long: `Inspect resolves a declaration file with the clamp policy and shows the
frames in a table. Moving a frame moves its children with it; frames never
leave the canvas.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeclaration,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			load := func() (inspectSession, error) {
				return c.loadInspectSession(ctx, cmd, path, &lf)
			}
			sess, err := load()
			if err != nil {
				return err
			}

			m := newInspectModel(path, sess, load)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			if fm, ok := final.(inspectModel); ok && fm.dirty {
				fmt.Fprintln(c.Out, frameTable(&snapshot.Snapshot{Frames: fm.frames()}, -1))
			}
			return nil
		},
	}
	lf.register(cmd)
	return cmd
}

// inspectSession is one resolution of the inspected file.
type inspectSession struct {
	set    *frame.Set
	tree   *layout.Tree
	canvas geom.Size
	diags  []layout.Diagnostic
}

func (c *CLI) loadInspectSession(ctx context.Context, cmd *cobra.Command, path string, lf *layoutFlags) (inspectSession, error) {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return inspectSession{}, err
	}
	defer runner.Close()

	set, doc, err := runner.Load(ctx, path)
	if err != nil {
		return inspectSession{}, err
	}
	opts, err := lf.options(c, cmd, doc)
	if err != nil {
		return inspectSession{}, err
	}
	opts.Policy = layout.ClampIntoBounds
	if opts.Canvas.IsZero() {
		opts.Canvas = defaultInspectCanvas
	}
	opts.Logger = runner.Logger
	res := layout.ResolveAll(set, opts)
	return inspectSession{
		set:    set,
		tree:   layout.Reparent(set, res),
		canvas: opts.Canvas,
		diags:  res.Diagnostics,
	}, nil
}

// =============================================================================
// inspectModel
// =============================================================================

// inspectModel is the bubbletea model of the inspect command.
type inspectModel struct {
	path   string
	sess   inspectSession
	names  []string
	reload func() (inspectSession, error)

	cursor int
	offset int
	height int
	step   float64
	status string
	dirty  bool
}

func newInspectModel(path string, sess inspectSession, reload func() (inspectSession, error)) inspectModel {
	return inspectModel{
		path:   path,
		sess:   sess,
		names:  sess.tree.Names(),
		reload: reload,
		height: 15,
		step:   1,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "w":
			m.move(0, -m.step)
		case "a":
			m.move(-m.step, 0)
		case "s":
			m.move(0, m.step)
		case "d":
			m.move(m.step, 0)
		case "+", "=":
			m.resize(m.step)
		case "-":
			m.resize(-m.step)
		case "tab":
			if m.step == 1 {
				m.step = 10
			} else {
				m.step = 1
			}
			m.status = fmt.Sprintf("step %s", formatNumber(m.step))
		case "r":
			sess, err := m.reload()
			if err != nil {
				m.status = StyleWarning.Render(err.Error())
				break
			}
			m.sess, m.names, m.dirty = sess, sess.tree.Names(), false
			m.cursor = min(m.cursor, max(len(m.names)-1, 0))
			m.offset = min(m.offset, m.cursor)
			m.status = "reloaded"
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m *inspectModel) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return "", false
	}
	return m.names[m.cursor], true
}

func (m *inspectModel) move(dx, dy float64) {
	name, ok := m.selected()
	if !ok {
		return
	}
	r, _ := m.sess.tree.MoveBy(name, dx, dy, m.sess.canvas)
	m.dirty = true
	m.status = fmt.Sprintf("%s %s %s,%s", name, iconArrow, formatNumber(r.X), formatNumber(r.Y))
}

func (m *inspectModel) resize(d float64) {
	name, ok := m.selected()
	if !ok {
		return
	}
	r, _ := m.sess.tree.Rect(name)
	m.sess.tree.Resize(name, r.Width+d, r.Height+d)
	r, _ = m.sess.tree.Rect(name)
	m.dirty = true
	m.status = fmt.Sprintf("%s %s %sx%s", name, iconArrow, formatNumber(r.Width), formatNumber(r.Height))
}

// frames returns the current geometry in resolution order.
func (m inspectModel) frames() []snapshot.FrameGeometry {
	return snapshot.FromTree(m.sess.set, m.sess.tree)
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  wasd move  +/- resize  tab step  r reload  q quit"))
	b.WriteString("\n\n")

	frames := m.frames()
	end := min(m.offset+m.height, len(frames))
	window := &snapshot.Snapshot{Frames: frames[min(m.offset, end):end]}
	b.WriteString(frameTable(window, m.cursor-m.offset))
	b.WriteString("\n")

	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  canvas %sx%s  step %s",
		min(m.cursor+1, len(frames)), len(frames),
		formatNumber(m.sess.canvas.Width), formatNumber(m.sess.canvas.Height),
		formatNumber(m.step))))
	if n := len(m.sess.diags); n > 0 {
		b.WriteString("  " + StyleWarning.Render(fmt.Sprintf("%d diagnostics", n)))
	}
	if m.status != "" {
		b.WriteString("\n  " + m.status)
	}
	b.WriteString("\n")
	return b.String()
}
