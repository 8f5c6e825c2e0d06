// Package panelpop adapts the board simulation to the platform's Game
// interface: input mapping, fixed-timestep updates, rendering and the two
// playable modes (solo endless and versus the CPU).
package panelpop

import (
	"fmt"

	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
	"github.com/panelpop/panelpop/internal/grid"
	"github.com/panelpop/panelpop/internal/registry"
	"github.com/panelpop/panelpop/internal/versus"
)

// Mode represents the game mode.
type Mode string

const (
	ModeSolo   Mode = "solo"
	ModeVersus Mode = "versus"
)

// Game implements solo and versus panelpop on top of the grid simulation.
type Game struct {
	mode Mode
	cfg  config.GameConfig
	dt   float64
	tick uint64
	seed int64

	// Solo state
	session *grid.Session

	// Versus state
	match       *versus.Match
	resultSaved bool

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// Package-level variables for config/difficulty, set by the command layer
// before the game is created.
var (
	configPath       string
	difficultyPreset string
	resultSaver      versus.ResultSaver
)

// SetConfigPath sets a custom YAML config file path. Empty means the
// embedded defaults (plus the user config file, if present).
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the AI difficulty section of the config.
// Empty leaves the config's own AI settings in place.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetResultSaver wires storage for versus results. Nil disables persistence.
func SetResultSaver(s versus.ResultSaver) {
	resultSaver = s
}

// New creates a new solo game.
func New() *Game {
	return &Game{mode: ModeSolo}
}

// NewVersus creates a new versus-the-CPU game.
func NewVersus() *Game {
	return &Game{mode: ModeVersus}
}

func init() {
	registry.Register("solo", func() registry.Game {
		return New()
	})
	registry.Register("versus", func() registry.Game {
		return NewVersus()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeVersus {
		return "Panel Pop (Versus)"
	}
	return "Panel Pop"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.Load(configPath)
	if err != nil {
		gameCfg = config.DefaultGameConfig()
	}
	config.ApplyPreset(&gameCfg, config.DifficultyPreset(difficultyPreset))

	g.cfg = gameCfg
	g.dt = cfg.DeltaTime()
	g.seed = cfg.Seed
	g.tick = 0
	g.paused = false
	g.resultSaved = false
	g.session = nil
	g.match = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	// Each board panel is two screen cells per column plus borders.
	boardW := gameCfg.Grid.Width*2 + 3
	requiredW := boardW + sidebarWidth
	if g.mode == ModeVersus {
		requiredW = boardW*2 + sidebarWidth
	}
	requiredH := gameCfg.Grid.Height + hudHeight + 3
	if cfg.ScreenW < requiredW || cfg.ScreenH < requiredH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	if g.mode == ModeVersus {
		g.match = versus.NewMatch(&gameCfg, gameCfg.AI, g.difficultyName(), cfg.Seed)
	} else {
		g.session = grid.NewSession(&gameCfg, cfg.Seed)
	}
}

func (g *Game) difficultyName() string {
	if difficultyPreset != "" {
		return difficultyPreset
	}
	return string(config.DifficultyNormal)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.finished() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.seed + int64(g.tick),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(1.0/g.dt + 0.5),
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.finished() {
		// A forfeit can end the match between steps; persist its result too.
		if g.mode == ModeVersus && g.match != nil {
			g.saveResultOnce()
		}
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	if g.mode == ModeVersus {
		g.match.Update(g.dt)
		g.saveResultOnce()
	} else {
		g.session.Update(g.dt)
	}

	return core.StepResult{State: g.State()}
}

// processInput forwards triggered actions to the player's board.
func (g *Game) processInput(input core.InputFrame) {
	for _, a := range []core.Action{
		core.ActionUp,
		core.ActionDown,
		core.ActionLeft,
		core.ActionRight,
		core.ActionSwap,
		core.ActionRaise,
	} {
		if !input.Has(a) {
			continue
		}
		if g.mode == ModeVersus {
			g.match.HandleAction(a)
		} else {
			g.session.HandleAction(a)
		}
	}
}

// saveResultOnce persists the versus result the first tick after the match
// ends. Failures are swallowed; a lost history row never interrupts play.
func (g *Game) saveResultOnce() {
	if g.resultSaved || resultSaver == nil {
		return
	}
	res := g.match.Result()
	if res == nil {
		return
	}
	g.resultSaved = true
	_ = resultSaver.SaveVersusResult(*res)
}

// finished reports whether play has ended for the current mode.
func (g *Game) finished() bool {
	if g.tooSmall {
		return false
	}
	if g.mode == ModeVersus {
		return g.match == nil || g.match.Done()
	}
	return g.session == nil || g.session.GameOver()
}

// Forfeit concedes a versus match in progress. No-op in solo mode.
func (g *Game) Forfeit() {
	if g.mode == ModeVersus && g.match != nil && !g.match.Done() {
		g.match.Forfeit(versus.Player1)
	}
}

// Session returns the solo session, or the human side of a versus match.
func (g *Game) Session() *grid.Session {
	if g.mode == ModeVersus {
		if g.match == nil {
			return nil
		}
		return g.match.Player()
	}
	return g.session
}

// Match returns the versus match, nil in solo mode.
func (g *Game) Match() *versus.Match {
	return g.match
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.Session()
	if s == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    s.Score(),
		GameOver: g.finished(),
		Paused:   g.paused,
	}
}

// resultLine summarizes a finished versus match for the overlay.
func resultLine(res *versus.Result) string {
	if res == nil {
		return ""
	}
	switch res.Winner {
	case versus.Player1:
		return fmt.Sprintf("You win! %d : %d", res.Score1, res.Score2)
	case versus.Player2:
		return fmt.Sprintf("CPU wins. %d : %d", res.Score1, res.Score2)
	default:
		return fmt.Sprintf("Draw. %d : %d", res.Score1, res.Score2)
	}
}
