package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/kv"
	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/words"
)

var t0 = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ctrl  *Controller
	clock *ManualClock
	board *leaderboard.Board
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	bank, err := words.Load("")
	require.NoError(t, err)
	board, err := leaderboard.Open(context.Background(), kv.NewMemory())
	require.NoError(t, err)

	clock := NewManualClock(t0)
	opts := Options{
		Bank:       bank,
		Generator:  puzzle.NewSeededGenerator(11),
		Clock:      clock,
		Scoreboard: board,
		Player:     "ada",
	}
	if mutate != nil {
		mutate(&opts)
	}
	ctrl, err := NewController(opts)
	require.NoError(t, err)
	return &fixture{ctrl: ctrl, clock: clock, board: board}
}

func (f *fixture) apply(t *testing.T, ev Event) Snapshot {
	t.Helper()
	require.NoError(t, f.ctrl.Apply(context.Background(), ev))
	return f.ctrl.Snapshot()
}

// drag selects word by dragging from its first to its last cell.
func (f *fixture) drag(t *testing.T, word string) Snapshot {
	t.Helper()
	snap := f.ctrl.Snapshot()
	path, ok := puzzle.Locate(puzzle.FromRows(snap.Grid, snap.Words), word)
	require.Truef(t, ok, "%q not in grid", word)
	f.apply(t, PointerDown{Pos: path[0]})
	f.apply(t, PointerEnter{Pos: path[len(path)-1]})
	return f.apply(t, PointerUp{})
}

func (f *fixture) solveAll(t *testing.T) Snapshot {
	t.Helper()
	snap := f.ctrl.Snapshot()
	for _, w := range snap.Remaining {
		snap = f.drag(t, w)
	}
	return snap
}

func TestNewControllerRequiresWords(t *testing.T) {
	_, err := NewController(Options{})
	require.ErrorIs(t, err, ErrNoWords)
}

func TestStartsInNormalMode(t *testing.T) {
	f := newFixture(t, nil)
	snap := f.ctrl.Snapshot()

	assert.Equal(t, "normal", snap.Mode)
	assert.Equal(t, "normal", snap.Phase)
	assert.Equal(t, 20, snap.Size)
	assert.Len(t, snap.Words, 18)
	assert.Equal(t, snap.Words, snap.Remaining)
	assert.True(t, snap.Interactive)
	assert.Equal(t, "5:00", snap.Clock)
	assert.False(t, f.ctrl.Ticking())
}

func TestNewPuzzleSizes(t *testing.T) {
	f := newFixture(t, nil)

	snap := f.apply(t, NewPuzzle{Size: 10})
	assert.Equal(t, 10, snap.Size)
	assert.Len(t, snap.Words, 8)

	snap = f.apply(t, NewPuzzle{})
	assert.Equal(t, 20, snap.Size)

	err := f.ctrl.Apply(context.Background(), NewPuzzle{Size: 11})
	require.ErrorIs(t, err, ErrBadSize)
	assert.Equal(t, 20, f.ctrl.Snapshot().Size)

	// The size selector belongs to Normal mode only.
	f.apply(t, SetMode{Mode: ModeLevel})
	snap = f.apply(t, NewPuzzle{Size: 15})
	assert.Equal(t, 3, snap.Size)
}

func TestFoundWordIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	word := f.ctrl.Snapshot().Words[0]

	snap := f.drag(t, word)
	require.Contains(t, snap.Found, word)
	before := snap.Found[word]

	snap = f.drag(t, word)
	assert.Equal(t, before, snap.Found[word])
	assert.Len(t, snap.Found, 1)
	assert.NotContains(t, snap.Remaining, word)
}

func TestReversedDragMatches(t *testing.T) {
	f := newFixture(t, nil)
	snap := f.ctrl.Snapshot()
	word := snap.Words[0]
	path, ok := puzzle.Locate(puzzle.FromRows(snap.Grid, snap.Words), word)
	require.True(t, ok)

	f.apply(t, PointerDown{Pos: path[len(path)-1]})
	f.apply(t, PointerEnter{Pos: path[0]})
	snap = f.apply(t, PointerUp{})
	assert.Contains(t, snap.Found, word)
}

func TestActivePathFollowsDrag(t *testing.T) {
	f := newFixture(t, nil)

	snap := f.apply(t, PointerDown{Pos: puzzle.Position{Row: 0, Col: 0}})
	assert.Len(t, snap.Active, 1)

	snap = f.apply(t, PointerEnter{Pos: puzzle.Position{Row: 0, Col: 4}})
	assert.Len(t, snap.Active, 5)

	// Off-line hover keeps the previous path.
	snap = f.apply(t, PointerEnter{Pos: puzzle.Position{Row: 2, Col: 5}})
	assert.Len(t, snap.Active, 5)

	snap = f.apply(t, PointerUp{})
	assert.Empty(t, snap.Active)
}

func TestPointerOffGrid(t *testing.T) {
	f := newFixture(t, nil)
	err := f.ctrl.Apply(context.Background(), PointerDown{Pos: puzzle.Position{Row: 20, Col: 0}})
	require.ErrorIs(t, err, ErrOffGrid)

	// Entering without a drag is ignored even off grid.
	require.NoError(t, f.ctrl.Apply(context.Background(), PointerEnter{Pos: puzzle.Position{Row: -1}}))
}

func TestNormalCompletionFiresOnce(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.NormalSize = 10 })

	snap := f.solveAll(t)
	assert.Equal(t, "normal_complete", snap.Phase)
	assert.Empty(t, snap.Remaining)
	assert.Equal(t, 1, snap.Celebrations)
	assert.True(t, snap.Interactive)

	f.apply(t, PointerDown{Pos: puzzle.Position{}})
	snap = f.apply(t, PointerUp{})
	assert.Equal(t, 1, snap.Celebrations)

	snap = f.apply(t, ResetHighlights{})
	assert.Equal(t, "normal", snap.Phase)
	assert.Empty(t, snap.Found)

	snap = f.solveAll(t)
	assert.Equal(t, 2, snap.Celebrations)
	assert.Empty(t, f.board.Entries(), "normal mode never scores")
}

// Scenario A: a 5x5 first level with 4 words completes exactly once.
func TestScenarioLevelComplete(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.LevelSizes = []int{5, 7} })

	snap := f.apply(t, SetMode{Mode: ModeLevel})
	require.Equal(t, 5, snap.Size)
	require.Len(t, snap.Words, 4)
	assert.Equal(t, "level_active", snap.Phase)
	assert.True(t, f.ctrl.Ticking())

	snap = f.solveAll(t)
	assert.Empty(t, snap.Remaining)
	assert.Equal(t, "level_complete", snap.Phase)
	assert.Equal(t, 1, snap.Celebrations)
	assert.False(t, snap.Interactive)
	assert.False(t, f.ctrl.Ticking())

	// Further events do not re-fire completion or record twice.
	f.apply(t, Tick{})
	f.apply(t, ResetHighlights{})
	snap = f.apply(t, PointerUp{})
	assert.Equal(t, 1, snap.Celebrations)
	assert.Len(t, f.board.Entries(), 1)
	assert.Equal(t, 4, len(snap.Found))
}

// Scenario B: the countdown reaching zero ends the run.
func TestScenarioTimeout(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.TimeLimit = 3 })
	snap := f.apply(t, SetMode{Mode: ModeLevel})
	assert.Equal(t, 3, snap.TimeLeft)

	// A drag in flight when time runs out is discarded.
	word := snap.Words[0]
	path, ok := puzzle.Locate(puzzle.FromRows(snap.Grid, snap.Words), word)
	require.True(t, ok)
	f.apply(t, PointerDown{Pos: path[0]})
	f.apply(t, PointerEnter{Pos: path[len(path)-1]})

	snap = f.apply(t, Tick{})
	assert.Equal(t, 2, snap.TimeLeft)
	snap = f.apply(t, Tick{})
	assert.Equal(t, 1, snap.TimeLeft)
	snap = f.apply(t, Tick{})
	assert.Equal(t, 0, snap.TimeLeft)
	assert.Equal(t, "game_over", snap.Phase)
	assert.False(t, snap.Interactive)
	assert.False(t, snap.RunCleared)
	assert.False(t, f.ctrl.Ticking())

	snap = f.apply(t, PointerUp{})
	assert.Empty(t, snap.Found)

	snap = f.apply(t, PointerDown{Pos: path[0]})
	assert.Empty(t, snap.Active, "grid is disabled after game over")

	snap = f.apply(t, Tick{})
	assert.Equal(t, 0, snap.TimeLeft)
	assert.Equal(t, 0, snap.Celebrations)
	assert.Empty(t, f.board.Entries())
}

// Scenario C: the recorded time spans the whole run, not the last level.
func TestScenarioRunTimeSpansLevels(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.LevelSizes = []int{3, 5} })

	f.apply(t, SetMode{Mode: ModeLevel})
	f.clock.Advance(40 * time.Second)
	snap := f.solveAll(t)
	require.Equal(t, "level_complete", snap.Phase)

	entries := f.board.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Level)
	assert.Equal(t, 40, entries[0].Time)

	f.clock.Advance(5 * time.Second)
	snap = f.apply(t, AdvanceLevel{})
	require.Equal(t, "level_active", snap.Phase)
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, 5, snap.Size)
	assert.Equal(t, 300, snap.TimeLeft)

	f.clock.Advance(55 * time.Second)
	snap = f.solveAll(t)
	require.Equal(t, "level_complete", snap.Phase)

	entries = f.board.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Level)
	assert.Equal(t, 100, entries[0].Time)
	assert.Equal(t, "ada", entries[0].Name)

	// Advancing past the last level finishes the run.
	snap = f.apply(t, AdvanceLevel{})
	assert.Equal(t, "game_over", snap.Phase)
	assert.True(t, snap.RunCleared)
	assert.False(t, snap.Interactive)
}

func TestAdvanceRequiresCompletedLevel(t *testing.T) {
	f := newFixture(t, nil)
	f.apply(t, SetMode{Mode: ModeLevel})
	snap := f.apply(t, AdvanceLevel{})
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, "level_active", snap.Phase)

	f.apply(t, SetMode{Mode: ModeNormal})
	snap = f.apply(t, AdvanceLevel{})
	assert.Equal(t, "normal", snap.Phase)
}

func TestRestartLevelKeepsRunClock(t *testing.T) {
	f := newFixture(t, nil)
	f.apply(t, SetMode{Mode: ModeLevel})

	f.clock.Advance(50 * time.Second)
	f.apply(t, Tick{})
	snap := f.apply(t, RestartLevel{})
	assert.Equal(t, 300, snap.TimeLeft)
	assert.Equal(t, 1, snap.Level)

	f.clock.Advance(10 * time.Second)
	f.solveAll(t)
	require.Len(t, f.board.Entries(), 1)
	assert.Equal(t, 60, f.board.Entries()[0].Time)
}

func TestRestartRunResetsRunClock(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.LevelSizes = []int{3, 5} })
	f.apply(t, SetMode{Mode: ModeLevel})
	f.solveAll(t)
	f.apply(t, AdvanceLevel{})

	f.clock.Advance(60 * time.Second)
	snap := f.apply(t, RestartRun{})
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 3, snap.Size)

	f.clock.Advance(10 * time.Second)
	f.solveAll(t)
	entries := f.board.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Time)
	assert.Equal(t, 10, entries[1].Time)
}

func TestReplayedLevelRecordsAgain(t *testing.T) {
	f := newFixture(t, nil)
	f.apply(t, SetMode{Mode: ModeLevel})
	f.solveAll(t)
	f.apply(t, RestartLevel{})
	snap := f.solveAll(t)
	assert.Equal(t, 2, snap.Celebrations)
	assert.Len(t, f.board.Entries(), 2)
}

func TestBlankPlayerNeverScores(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Player = "   " })
	snap := f.apply(t, SetMode{Mode: ModeLevel})
	assert.True(t, snap.NeedsName)

	snap = f.solveAll(t)
	assert.Equal(t, "level_complete", snap.Phase)
	assert.Equal(t, 1, snap.Celebrations)
	assert.Empty(t, f.board.Entries())
}

func TestSetPlayerNotifies(t *testing.T) {
	var saved []string
	f := newFixture(t, func(o *Options) {
		o.Player = ""
		o.OnPlayer = func(name string) { saved = append(saved, name) }
	})
	snap := f.apply(t, SetPlayer{Name: "bo"})
	assert.Equal(t, "bo", snap.Player)
	assert.Equal(t, []string{"bo"}, saved)
}

func TestResetHighlightsKeepsGridAndTimer(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.LevelSizes = []int{10} })
	snap := f.apply(t, SetMode{Mode: ModeLevel})
	grid := snap.Grid

	f.apply(t, Tick{})
	f.drag(t, snap.Words[0])
	f.apply(t, PointerDown{Pos: puzzle.Position{}})

	snap = f.apply(t, ResetHighlights{})
	assert.Equal(t, grid, snap.Grid)
	assert.Empty(t, snap.Found)
	assert.Empty(t, snap.Active)
	assert.Equal(t, 299, snap.TimeLeft)
	assert.Equal(t, "level_active", snap.Phase)
}

func TestLeavingLevelModeClearsRun(t *testing.T) {
	f := newFixture(t, nil)
	f.apply(t, SetMode{Mode: ModeLevel})
	f.apply(t, Tick{})

	snap := f.apply(t, SetMode{Mode: ModeNormal})
	assert.Equal(t, "normal", snap.Mode)
	assert.Equal(t, 20, snap.Size)
	assert.Equal(t, 300, snap.TimeLeft)
	assert.False(t, f.ctrl.Ticking())
	assert.True(t, f.ctrl.st.runStart.IsZero())
	assert.True(t, f.ctrl.st.levelStart.IsZero())
}

func TestEpochBumpsOnNewPuzzle(t *testing.T) {
	f := newFixture(t, nil)
	e0 := f.ctrl.Snapshot().Epoch
	snap := f.apply(t, NewPuzzle{Size: 15})
	assert.Equal(t, e0+1, snap.Epoch)
	snap = f.apply(t, ResetHighlights{})
	assert.Equal(t, e0+1, snap.Epoch)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("level")
	require.NoError(t, err)
	assert.Equal(t, ModeLevel, m)

	_, err = ParseMode("arcade")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "5:00", FormatClock(300))
	assert.Equal(t, "0:09", FormatClock(9))
	assert.Equal(t, "1:05", FormatClock(65))
	assert.Equal(t, "0:00", FormatClock(-4))
}

// Found words stay put once a level has ended, whichever way it ended.
func TestResetHighlightsFrozenAfterLevelEnds(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.LevelSizes = []int{3} })
	f.apply(t, SetMode{Mode: ModeLevel})
	solved := f.solveAll(t)
	require.Equal(t, "level_complete", solved.Phase)

	snap := f.apply(t, ResetHighlights{})
	assert.Equal(t, "level_complete", snap.Phase)
	assert.Equal(t, solved.Found, snap.Found)

	snap = f.apply(t, AdvanceLevel{})
	require.Equal(t, "game_over", snap.Phase)
	snap = f.apply(t, ResetHighlights{})
	assert.Equal(t, "game_over", snap.Phase)
	assert.Equal(t, solved.Found, snap.Found)
	assert.Len(t, f.board.Entries(), 1)
}
