// internal/game/types.go
//
// Core type definitions for the game controller.
// Defines:
//   - Mode: Normal (untimed) or Level (timed run).
//   - Phase: the controller's explicit state.
//   - Options: sizes, limits and collaborators injected into a Controller.
//   - Scoreboard / Effects: the leaderboard and visual-effect collaborators.

package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// Mode selects the rules a puzzle is played under.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLevel
)

func (m Mode) String() string {
	if m == ModeLevel {
		return "level"
	}
	return "normal"
}

// ParseMode maps "normal" / "level" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal":
		return ModeNormal, nil
	case "level":
		return ModeLevel, nil
	}
	return ModeNormal, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Phase is the controller state.
//
//	Normal ──all found──▶ NormalComplete ──new puzzle / reset──▶ Normal
//	LevelActive ──all found──▶ LevelComplete ──advance──▶ LevelActive (next size)
//	LevelActive ──timer hits 0──▶ GameOver
//	LevelComplete ──advance on last level──▶ GameOver
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseNormalComplete
	PhaseLevelActive
	PhaseLevelComplete
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseNormal:         "normal",
	PhaseNormalComplete: "normal_complete",
	PhaseLevelActive:    "level_active",
	PhaseLevelComplete:  "level_complete",
	PhaseGameOver:       "game_over",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Defaults taken by NewController when Options leave them zero.
var (
	DefaultLevelSizes  = []int{3, 5, 7, 10, 12, 15, 20}
	DefaultNormalSizes = []int{10, 15, 20}
)

const (
	DefaultNormalSize = 20
	DefaultTimeLimit  = 5 * 60 // seconds per level
)

// Errors returned for malformed events. Valid-but-inapplicable events (e.g.
// advancing while a level is still running) are silent no-ops instead.
var (
	ErrUnknownMode = errors.New("game: unknown mode")
	ErrBadSize     = errors.New("game: unsupported puzzle size")
	ErrOffGrid     = errors.New("game: position outside grid")
	ErrNoWords     = errors.New("game: word bank is empty")
)

// Scoreboard records finished levels. *leaderboard.Board implements it.
type Scoreboard interface {
	Record(ctx context.Context, name string, level, seconds int) (leaderboard.Entry, bool, error)
	Entries() []leaderboard.Entry
}

// Burst is one emission of celebration particles.
type Burst struct {
	Particles int     `json:"particles"`
	Angle     float64 `json:"angle"`   // degrees, 90 = straight up
	Spread    float64 `json:"spread"`  // degrees
	OriginX   float64 `json:"originX"` // 0 = left edge, 1 = right edge
}

// Effects renders purely cosmetic feedback. Implementations must be safe to
// call from the celebration goroutine.
type Effects interface {
	Burst(b Burst)
}

// EffectsFunc adapts a function to Effects.
type EffectsFunc func(Burst)

func (f EffectsFunc) Burst(b Burst) { f(b) }

// Options configures a Controller.
type Options struct {
	Bank        []string          // word bank; required
	LevelSizes  []int             // level progression; DefaultLevelSizes when empty
	NormalSizes []int             // selectable Normal sizes; DefaultNormalSizes when empty
	NormalSize  int               // size for "new puzzle"; DefaultNormalSize when zero
	TimeLimit   int               // seconds per level; DefaultTimeLimit when zero
	Generator   *puzzle.Generator // random generator when nil
	Clock       Clock             // SystemClock when nil
	Scoreboard  Scoreboard        // optional
	Player      string            // initial player name

	// OnPlayer is called after the player name changes, e.g. to remember it.
	OnPlayer func(name string)
}

func (o *Options) withDefaults() {
	if len(o.LevelSizes) == 0 {
		o.LevelSizes = DefaultLevelSizes
	}
	if len(o.NormalSizes) == 0 {
		o.NormalSizes = DefaultNormalSizes
	}
	if o.NormalSize == 0 {
		o.NormalSize = DefaultNormalSize
	}
	if o.TimeLimit == 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if o.Generator == nil {
		o.Generator = puzzle.NewRandomGenerator()
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
