package game

import "github.com/robalobadob/wordsearch/internal/puzzle"

// Event is an input to Controller.Apply. The set is closed.
type Event interface {
	event()
}

type (
	// SetMode switches mode; entering Level always starts a fresh run.
	SetMode struct{ Mode Mode }

	// NewPuzzle regenerates the Normal puzzle; Size 0 means the default size.
	NewPuzzle struct{ Size int }

	// RestartLevel regenerates the current level and keeps the run clock.
	RestartLevel struct{}

	// RestartRun starts the run over from the first level.
	RestartRun struct{}

	// ResetHighlights forgets found words and the active drag on the same grid.
	ResetHighlights struct{}

	// AdvanceLevel moves past a completed level.
	AdvanceLevel struct{}

	// PointerDown starts a drag at Pos.
	PointerDown struct{ Pos puzzle.Position }

	// PointerEnter extends the drag to Pos.
	PointerEnter struct{ Pos puzzle.Position }

	// PointerUp releases the drag and tries to match it.
	PointerUp struct{}

	// Tick is one second of level countdown.
	Tick struct{}

	// SetPlayer changes the player name used for leaderboard entries.
	SetPlayer struct{ Name string }
)

func (SetMode) event()         {}
func (NewPuzzle) event()       {}
func (RestartLevel) event()    {}
func (RestartRun) event()      {}
func (ResetHighlights) event() {}
func (AdvanceLevel) event()    {}
func (PointerDown) event()     {}
func (PointerEnter) event()    {}
func (PointerUp) event()       {}
func (Tick) event()            {}
func (SetPlayer) event()       {}
