package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/anchorlayout/pkg/layout"
	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleHidden   = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine summarizes a snapshot on a single line.
func statsLine(snap *snapshot.Snapshot, cached bool) string {
	parts := []string{fmt.Sprintf("%d frames", len(snap.Frames))}
	if n := len(snap.Rejected); n > 0 {
		parts = append(parts, fmt.Sprintf("%d rejected", n))
	}
	if snap.Passes > 0 {
		parts = append(parts, fmt.Sprintf("%d size passes", snap.Passes))
	}
	if n := len(snap.Diagnostics); n > 0 {
		parts = append(parts, fmt.Sprintf("%d diagnostics", n))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

// printDiagnostics prints one warning line per diagnostic.
func printDiagnostics(ds []layout.Diagnostic) {
	for _, d := range ds {
		printWarning("%s", d)
	}
}

// =============================================================================
// Frame Table
// =============================================================================

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// frameTable renders the geometry of snap. selected highlights one row;
// pass -1 for none.
func frameTable(snap *snapshot.Snapshot, selected int) string {
	rows := make([][]string, 0, len(snap.Frames))
	for _, g := range snap.Frames {
		parent := g.Parent
		if parent == "" {
			parent = "—"
		}
		rows = append(rows, []string{
			g.Name,
			parent,
			formatNumber(g.X),
			formatNumber(g.Y),
			formatNumber(g.Width),
			formatNumber(g.Height),
			formatNumber(g.LocalX) + "," + formatNumber(g.LocalY),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Frame", "Parent", "X", "Y", "W", "H", "Local").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == selected:
				return styleSelected
			case row >= 0 && row < len(snap.Frames) && snap.Frames[row].Hidden:
				return styleHidden
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// writeSummary prints the frame table, rejected frames and diagnostics.
func writeSummary(w io.Writer, snap *snapshot.Snapshot, cached bool) {
	fmt.Fprintln(w, frameTable(snap, -1))
	fmt.Fprintln(w, statsLine(snap, cached))
	if len(snap.Rejected) > 0 {
		fmt.Fprintln(w, "  "+StyleWarning.Render("outside canvas: "+strings.Join(snap.Rejected, ", ")))
	}
}
