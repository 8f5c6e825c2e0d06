package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/panelpop/panelpop/internal/core"
)

// colorStyles indexes lipgloss styles by core.Color. The color space is a
// small dense enum, so a slice lookup beats a map on the render hot path.
var colorStyles = func() []lipgloss.Style {
	ansi := map[core.Color]string{
		core.ColorRed:           "1",
		core.ColorGreen:         "2",
		core.ColorYellow:        "3",
		core.ColorBlue:          "4",
		core.ColorMagenta:       "5",
		core.ColorCyan:          "6",
		core.ColorWhite:         "7",
		core.ColorBrightRed:     "9",
		core.ColorBrightGreen:   "10",
		core.ColorBrightYellow:  "11",
		core.ColorBrightBlue:    "12",
		core.ColorBrightMagenta: "13",
		core.ColorBrightCyan:    "14",
		core.ColorBrightWhite:   "15",
		core.ColorOrange:        "208",
		core.ColorGray:          "245",
	}
	styles := make([]lipgloss.Style, core.ColorGray+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range ansi {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style := colorStyles[core.ColorDefault]
			if int(startColor) < len(colorStyles) {
				style = colorStyles[startColor]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
