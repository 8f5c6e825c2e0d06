package panelpop

import (
	"fmt"

	"github.com/panelpop/panelpop/internal/core"
	"github.com/panelpop/panelpop/internal/grid"
)

const (
	hudHeight    = 2  // Top HUD lines
	sidebarWidth = 22 // Score/combo panel to the right of the board(s)
)

// tileGlyphs and tileColors index by TileType. Six entries covers the
// maximum tile variety the config allows.
var tileGlyphs = []rune{'●', '◆', '▲', '■', '♥', '♠'}

var tileColors = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorCyan,
	core.ColorMagenta,
	core.ColorBlue,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	boardW := g.cfg.Grid.Width*2 + 3

	if g.mode == ModeVersus {
		g.renderBoard(dst, g.match.Player(), 1, hudHeight, "YOU")
		g.renderBoard(dst, g.match.Opponent(), 1+boardW+2, hudHeight, "CPU")
		g.renderSidebar(dst, g.match.Player(), 1+boardW*2+4, hudHeight)
	} else {
		g.renderBoard(dst, g.session, 1, hudHeight, "")
		g.renderSidebar(dst, g.session, 1+boardW+2, hudHeight)
	}

	switch {
	case g.mode == ModeVersus && g.match.Done():
		g.renderOverlay(dst, resultLine(g.match.Result()), "Press R to rematch")
	case g.mode == ModeSolo && g.session.GameOver():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d — Press R to restart", g.session.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " " + g.Title()
	if g.mode == ModeVersus {
		hud += " — " + g.difficultyName()
	} else if s := g.Session(); s != nil {
		hud += fmt.Sprintf(" — Score: %d", s.Score())
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws one session's board in a bordered panel at (ox, oy).
// Cells are two screen columns wide so the board reads roughly square.
func (g *Game) renderBoard(dst *core.Screen, s *grid.Session, ox, oy int, label string) {
	board := s.Board()
	w := board.Width()
	h := board.Height()
	danger := s.Danger()

	dst.DrawBox(ox, oy, w*2+3, h+2)
	if label != "" {
		dst.DrawText(ox+2, oy, label)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := ox + 2 + x*2
			sy := oy + 1 + y
			cell := board.At(x, y)

			switch {
			case s.Processor().IsProcessing(x, y):
				// Matched tiles blink before they pop.
				dst.SetCell(sx, sy, '✶', core.ColorBrightWhite)
			case cell.Kind == grid.KindGarbage:
				dst.SetCell(sx, sy, '▒', core.ColorGray)
			case cell.Kind == grid.KindTile:
				dst.SetCell(sx, sy, glyphFor(cell.Type), colorFor(cell.Type, danger, x))
			}
		}
	}

	// Next incoming row, dimmed below the bottom border.
	next := board.PreloadRow(0)
	for x := 0; x < w && x < len(next); x++ {
		if next[x] != grid.TileNone {
			dst.SetCell(ox+2+x*2, oy+h+2, glyphFor(next[x]), core.ColorGray)
		}
	}

	g.renderCursor(dst, s, ox, oy)
}

// renderCursor brackets the two cells under the swap cursor.
func (g *Game) renderCursor(dst *core.Screen, s *grid.Session, ox, oy int) {
	c := s.Cursor()
	sy := oy + 1 + c.Y
	dst.SetCell(ox+1+c.X*2, sy, '[', core.ColorBrightWhite)
	dst.SetCell(ox+3+(c.X+1)*2, sy, ']', core.ColorBrightWhite)
}

// renderSidebar draws score, combo, rise state and danger next to the board.
func (g *Game) renderSidebar(dst *core.Screen, s *grid.Session, ox, oy int) {
	dst.DrawText(ox, oy+1, fmt.Sprintf("Score  %d", s.Score()))
	if combo := s.Combo(); combo > 1 {
		dst.DrawTextColored(ox, oy+2, fmt.Sprintf("Combo  x%d", combo), core.ColorBrightYellow)
	}

	riser := s.Riser()
	switch riser.Phase() {
	case grid.RisePhaseBreathing:
		dst.DrawText(ox, oy+4, fmt.Sprintf("Breather  %.1fs", riser.Breathing()))
	case grid.RisePhaseGrace:
		dst.DrawTextColored(ox, oy+4, fmt.Sprintf("TOP OUT IN %.1f", riser.GraceRemaining()), core.ColorBrightRed)
	}

	switch s.Danger().Level {
	case grid.DangerWarning:
		dst.DrawTextColored(ox, oy+6, "! stack high", core.ColorBrightYellow)
	case grid.DangerCritical:
		dst.DrawTextColored(ox, oy+6, "!! DANGER !!", core.ColorBrightRed)
	}

	if g.mode == ModeVersus {
		dst.DrawText(ox, oy+8, fmt.Sprintf("CPU score  %d", g.match.Opponent().Score()))
		if g.match.Opponent().Garbage().PendingCount() > 0 {
			dst.DrawTextColored(ox, oy+9, "attack sent!", core.ColorOrange)
		}
	}
}

// glyphFor returns the screen rune for a tile type.
func glyphFor(t grid.TileType) rune {
	if t < 0 || int(t) >= len(tileGlyphs) {
		return '?'
	}
	return tileGlyphs[t]
}

// colorFor brightens tiles in columns that have climbed into the danger
// zone, matching the flashing warning of the original arcade games.
func colorFor(t grid.TileType, danger grid.DangerState, x int) core.Color {
	if t < 0 || int(t) >= len(tileColors) {
		return core.ColorDefault
	}
	c := tileColors[t]
	if x < len(danger.Columns) && danger.Columns[x] {
		// Bright variants sit 7 slots after the base colors.
		if c >= core.ColorRed && c <= core.ColorWhite {
			c += 7
		}
	}
	return c
}

// renderOverlay draws a centered overlay message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Blank the interior so the board doesn't show through
	for y := boxY + 1; y < boxY+boxH-1 && y < h; y++ {
		for x := boxX + 1; x < boxX+boxW-1 && x < w; x++ {
			if x >= 0 && y >= 0 {
				dst.Set(x, y, ' ')
			}
		}
	}
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
