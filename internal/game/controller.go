// internal/game/controller.go
//
// Run/level controller for a single player.
// Responsibilities:
//   - Own the puzzle, found words, drag state, countdown and run clock.
//   - Apply input events as explicit phase transitions (see Phase).
//   - Detect completion, trigger celebrations and record leaderboard entries.
//
// Notes:
//   - A Controller is not safe for concurrent use; Loop serializes access.
//   - Completion is a phase transition, so it can only fire once per puzzle.
//   - epoch and celebrations let the Loop start and tear down the ticker and
//     celebration without the controller knowing about goroutines.

package game

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/selection"
)

// state is everything a Controller tracks between events.
type state struct {
	mode       Mode
	phase      Phase
	levelIndex int
	puzzle     puzzle.Puzzle
	found      map[string][]puzzle.Position
	drag       selection.Drag
	timeLeft   int       // seconds left in the current level
	levelStart time.Time // zero outside Level mode
	runStart   time.Time // zero outside Level mode
	player     string

	epoch        int // bumped whenever the puzzle or mode is replaced
	celebrations int // bumped on every completion transition
}

// Controller applies events to one player's game.
type Controller struct {
	opts Options
	st   state
}

// NewController starts in Normal mode with a fresh puzzle of the default size.
func NewController(opts Options) (*Controller, error) {
	if len(opts.Bank) == 0 {
		return nil, ErrNoWords
	}
	opts.withDefaults()
	c := &Controller{opts: opts}
	c.st.player = opts.Player
	c.st.timeLeft = opts.TimeLimit
	c.newNormalPuzzle(opts.NormalSize)
	return c, nil
}

// Apply runs one event through the state machine. Errors are only returned
// for malformed events; the state is unchanged in that case.
func (c *Controller) Apply(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case nil:
	case SetMode:
		c.setMode(e.Mode)
	case NewPuzzle:
		if c.st.mode != ModeNormal {
			return nil
		}
		size := e.Size
		if size == 0 {
			size = c.opts.NormalSize
		}
		if !slices.Contains(c.opts.NormalSizes, size) {
			return fmt.Errorf("%w: %d", ErrBadSize, size)
		}
		c.newNormalPuzzle(size)
	case RestartLevel:
		if c.st.mode == ModeLevel {
			c.resetLevel(c.st.levelIndex)
		}
	case RestartRun:
		if c.st.mode == ModeLevel {
			c.resetLevel(0)
		}
	case ResetHighlights:
		c.resetHighlights()
	case AdvanceLevel:
		c.advance()
	case PointerDown:
		if err := c.pointerDown(e.Pos); err != nil {
			return err
		}
	case PointerEnter:
		if err := c.pointerEnter(e.Pos); err != nil {
			return err
		}
	case PointerUp:
		c.pointerUp()
	case Tick:
		c.tick()
	case SetPlayer:
		c.st.player = e.Name
		if c.opts.OnPlayer != nil {
			c.opts.OnPlayer(e.Name)
		}
	default:
		return fmt.Errorf("game: unhandled event %T", ev)
	}
	c.settle(ctx)
	return nil
}

// Ticking reports whether the level countdown should be running.
func (c *Controller) Ticking() bool {
	return c.st.phase == PhaseLevelActive && !c.st.levelStart.IsZero()
}

func (c *Controller) setMode(m Mode) {
	c.st.mode = m
	if m == ModeLevel {
		c.resetLevel(0)
		return
	}
	c.st.levelIndex = 0
	c.st.levelStart = time.Time{}
	c.st.runStart = time.Time{}
	c.st.timeLeft = c.opts.TimeLimit
	c.newNormalPuzzle(c.opts.NormalSize)
}

func (c *Controller) newNormalPuzzle(size int) {
	c.replacePuzzle(size)
	c.st.phase = PhaseNormal
}

// resetLevel (re)starts level i; only level 0 restarts the run clock.
func (c *Controller) resetLevel(i int) {
	if i < 0 || i >= len(c.opts.LevelSizes) {
		i = 0
	}
	c.st.levelIndex = i
	c.replacePuzzle(c.opts.LevelSizes[i])

	now := c.opts.Clock.Now()
	c.st.timeLeft = c.opts.TimeLimit
	c.st.levelStart = now
	if i == 0 {
		c.st.runStart = now
	}
	c.st.phase = PhaseLevelActive
	log.Debug().Int("level", i+1).Int("size", c.st.puzzle.Size).Msg("level started")
}

func (c *Controller) replacePuzzle(size int) {
	c.st.puzzle = c.opts.Generator.Generate(size, c.opts.Bank)
	c.st.found = make(map[string][]puzzle.Position)
	c.st.drag.Reset()
	c.st.epoch++
}

func (c *Controller) resetHighlights() {
	switch c.st.phase {
	case PhaseLevelComplete, PhaseGameOver:
		return
	case PhaseNormalComplete:
		c.st.phase = PhaseNormal
	}
	c.st.found = make(map[string][]puzzle.Position)
	c.st.drag.Reset()
}

func (c *Controller) advance() {
	if c.st.phase != PhaseLevelComplete {
		return
	}
	if c.st.levelIndex >= len(c.opts.LevelSizes)-1 {
		c.st.phase = PhaseGameOver
		log.Info().Int("levels", c.st.levelIndex+1).Msg("run cleared")
		return
	}
	c.resetLevel(c.st.levelIndex + 1)
}

// blocked reports whether the grid ignores pointer input.
func (c *Controller) blocked() bool {
	return c.st.mode == ModeLevel &&
		(c.st.phase == PhaseLevelComplete || c.st.phase == PhaseGameOver)
}

func (c *Controller) pointerDown(pos puzzle.Position) error {
	if c.blocked() {
		return nil
	}
	if !c.st.puzzle.Contains(pos) {
		return fmt.Errorf("%w: (%d,%d)", ErrOffGrid, pos.Row, pos.Col)
	}
	c.st.drag.Down(pos)
	return nil
}

func (c *Controller) pointerEnter(pos puzzle.Position) error {
	if !c.st.drag.Active() || c.blocked() {
		return nil
	}
	if !c.st.puzzle.Contains(pos) {
		return fmt.Errorf("%w: (%d,%d)", ErrOffGrid, pos.Row, pos.Col)
	}
	c.st.drag.Enter(pos)
	return nil
}

func (c *Controller) pointerUp() {
	path := c.st.drag.Up()
	if path == nil || c.st.phase == PhaseGameOver {
		return
	}
	if word, ok := selection.Finalize(path, c.st.puzzle, c.st.found); ok {
		log.Debug().Str("word", word).Int("left", len(c.remaining())).Msg("word found")
	}
}

func (c *Controller) tick() {
	if !c.Ticking() {
		return
	}
	if c.st.timeLeft <= 1 {
		c.st.timeLeft = 0
		c.st.phase = PhaseGameOver
		c.st.drag.Reset()
		log.Info().Int("level", c.st.levelIndex+1).Msg("time ran out")
		return
	}
	c.st.timeLeft--
}

// settle performs the completion transitions once every word is found.
func (c *Controller) settle(ctx context.Context) {
	if len(c.remaining()) > 0 {
		return
	}
	switch c.st.phase {
	case PhaseNormal:
		c.st.phase = PhaseNormalComplete
		c.st.celebrations++
	case PhaseLevelActive:
		c.st.phase = PhaseLevelComplete
		c.st.celebrations++
		c.record(ctx)
	}
}

// record submits the finished level with the time elapsed since the run
// (not the level) started.
func (c *Controller) record(ctx context.Context) {
	if c.opts.Scoreboard == nil || c.st.runStart.IsZero() {
		return
	}
	level := c.st.levelIndex + 1
	elapsed := max(0, int(c.opts.Clock.Now().Sub(c.st.runStart)/time.Second))
	log.Info().Int("level", level).Int("elapsed", elapsed).Msg("level complete")

	if _, _, err := c.opts.Scoreboard.Record(ctx, c.st.player, level, elapsed); err != nil {
		log.Warn().Err(err).Int("level", level).Msg("record leaderboard entry")
	}
}

// remaining lists the words not yet found, in display order.
func (c *Controller) remaining() []string {
	out := make([]string, 0, len(c.st.puzzle.Words))
	for _, w := range c.st.puzzle.Words {
		if _, ok := c.st.found[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
