package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// Snapshot is a read-only copy of the controller state for rendering.
type Snapshot struct {
	Mode        string                       `json:"mode"`
	Phase       string                       `json:"phase"`
	Level       int                          `json:"level"` // 1-based
	LevelCount  int                          `json:"levelCount"`
	Size        int                          `json:"size"`
	Grid        []string                     `json:"grid"`
	Words       []string                     `json:"words"`
	Found       map[string][]puzzle.Position `json:"found"`
	Remaining   []string                     `json:"remaining"`
	Active      []puzzle.Position            `json:"active"`
	TimeLeft    int                          `json:"timeLeft"`
	Clock       string                       `json:"clock"`
	Progress    float64                      `json:"progress"` // timeLeft / limit
	Interactive bool                         `json:"interactive"`
	RunCleared  bool                         `json:"runCleared"`
	Player      string                       `json:"player"`
	NeedsName   bool                         `json:"needsName"` // level mode without a name saves no scores
	Fallback    bool                         `json:"fallback"`
	Leaderboard []leaderboard.Entry          `json:"leaderboard"`

	// Epoch and Celebrations let front-ends notice new puzzles and completions.
	Epoch        int `json:"epoch"`
	Celebrations int `json:"celebrations"`
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	st := &c.st
	found := make(map[string][]puzzle.Position, len(st.found))
	for w, path := range st.found {
		found[w] = slices.Clone(path)
	}
	remaining := c.remaining()

	s := Snapshot{
		Mode:         st.mode.String(),
		Phase:        st.phase.String(),
		Level:        st.levelIndex + 1,
		LevelCount:   len(c.opts.LevelSizes),
		Size:         st.puzzle.Size,
		Grid:         st.puzzle.Rows(),
		Words:        slices.Clone(st.puzzle.Words),
		Found:        found,
		Remaining:    remaining,
		Active:       st.drag.Path(),
		TimeLeft:     st.timeLeft,
		Clock:        FormatClock(st.timeLeft),
		Progress:     max(0, float64(st.timeLeft)/float64(c.opts.TimeLimit)),
		Interactive:  !c.blocked(),
		RunCleared:   st.phase == PhaseGameOver && len(remaining) == 0,
		Player:       st.player,
		NeedsName:    st.mode == ModeLevel && strings.TrimSpace(st.player) == "",
		Fallback:     st.puzzle.Fallback,
		Epoch:        st.epoch,
		Celebrations: st.celebrations,
	}
	if c.opts.Scoreboard != nil {
		s.Leaderboard = c.opts.Scoreboard.Entries()
	}
	return s
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
