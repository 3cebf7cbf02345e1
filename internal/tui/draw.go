package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// Layout: one header row, a blank row, then the grid with every cell two
// columns wide. The word list and leaderboard sit to the right of the grid.
const (
	gridTop    = 2
	gridLeft   = 2
	cellWidth  = 2
	sideGap    = 4
	barWidth   = 20
	maxNameLen = 20
)

var (
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleFound  = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleActive = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleDone   = tcell.StyleDefault.Foreground(tcell.ColorGreen).StrikeThrough(true)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGood   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// cellAt maps screen coordinates onto a grid cell.
func (a *App) cellAt(x, y int) (puzzle.Position, bool) {
	size := a.snapshot().Size
	if x < gridLeft || y < gridTop {
		return puzzle.Position{}, false
	}
	pos := puzzle.Position{Row: y - gridTop, Col: (x - gridLeft) / cellWidth}
	if pos.Row >= size || pos.Col >= size {
		return puzzle.Position{}, false
	}
	return pos, true
}

func (a *App) draw() {
	s := a.snapshot()
	a.screen.Clear()

	a.drawHeader(s)
	a.drawGrid(s)
	side := gridLeft + s.Size*cellWidth + sideGap
	y := a.drawWords(s, side, gridTop)
	if s.Mode == game.ModeLevel.String() {
		a.drawLeaderboard(s, side, y+1)
	}
	a.drawFooter(s, gridTop+s.Size+1)

	a.fx.Draw(a.screen)
	a.screen.Show()
}

func (a *App) drawHeader(s game.Snapshot) {
	if s.Mode != game.ModeLevel.String() {
		a.text(0, 0, styleTitle, fmt.Sprintf("WORD SEARCH  Normal  %dx%d", s.Size, s.Size))
		return
	}
	x := a.text(0, 0, styleTitle, fmt.Sprintf("WORD SEARCH  Level %d/%d  %dx%d  ", s.Level, s.LevelCount, s.Size, s.Size))
	clock := styleText
	if s.TimeLeft <= 30 {
		clock = styleAlert
	}
	x = a.text(x, 0, clock, s.Clock+" ")
	a.text(x, 0, clock, progressBar(s.Progress, barWidth))
}

func (a *App) drawGrid(s game.Snapshot) {
	marks := make(map[puzzle.Position]tcell.Style)
	for _, path := range s.Found {
		for _, p := range path {
			marks[p] = styleFound
		}
	}
	for _, p := range s.Active {
		marks[p] = styleActive
	}
	for r, row := range s.Grid {
		for c := 0; c < len(row); c++ {
			st, ok := marks[puzzle.Position{Row: r, Col: c}]
			if !ok {
				st = styleText
				if !s.Interactive {
					st = styleDim
				}
			}
			x := gridLeft + c*cellWidth
			a.screen.SetContent(x, gridTop+r, rune(row[c]), nil, st)
			a.screen.SetContent(x+1, gridTop+r, ' ', nil, st)
		}
	}
}

// drawWords lists the words and returns the row below the list.
func (a *App) drawWords(s game.Snapshot, x, y int) int {
	a.text(x, y, styleTitle, fmt.Sprintf("Words %d/%d", len(s.Words)-len(s.Remaining), len(s.Words)))
	y++
	for _, w := range s.Words {
		st := styleText
		if _, ok := s.Found[w]; ok {
			st = styleDone
		}
		a.text(x, y, st, w)
		y++
	}
	return y
}

func (a *App) drawLeaderboard(s game.Snapshot, x, y int) {
	a.text(x, y, styleTitle, "Leaderboard")
	y++
	if len(s.Leaderboard) == 0 {
		a.text(x, y, styleDim, "no scores yet")
		return
	}
	for i, e := range s.Leaderboard {
		a.text(x, y+i, styleText, fmt.Sprintf("%2d. %-12s L%-2d %s", i+1, e.Name, e.Level, game.FormatClock(e.Time)))
	}
}

func (a *App) drawFooter(s game.Snapshot, y int) {
	switch s.Phase {
	case "normal_complete":
		a.text(gridLeft, y, styleGood, "All words found!  n: new puzzle  h: play again")
	case "level_complete":
		a.text(gridLeft, y, styleGood, fmt.Sprintf("Level %d cleared!  enter: next level", s.Level))
	case "game_over":
		if s.RunCleared {
			a.text(gridLeft, y, styleGood, "Run cleared!  R: new run  b: back to normal")
		} else {
			a.text(gridLeft, y, styleAlert, "Time's up!  R: restart run  b: back to normal")
		}
	}
	y++
	if s.Fallback {
		a.text(gridLeft, y, styleDim, "(words could not be placed; showing letters only)")
		y++
	}
	switch {
	case a.naming:
		a.text(gridLeft, y, styleTitle, "Name: "+string(a.name)+"_")
	case s.NeedsName:
		a.text(gridLeft, y, styleAlert, "Press p to enter a name; scores are not saved without one")
	case s.Player != "":
		a.text(gridLeft, y, styleDim, "Player: "+s.Player)
	}
	y++
	if a.status != "" {
		a.text(gridLeft, y, styleAlert, a.status)
	}
	y++
	help := "n new  1/2/3 size  m mode  h reset  p name  q quit"
	if s.Mode == game.ModeLevel.String() {
		help = "r restart level  R restart run  enter next  b normal  h reset  p name  q quit"
	}
	a.text(gridLeft, y, styleDim, help)
}

// text draws str at (x, y) and returns the column after it.
func (a *App) text(x, y int, st tcell.Style, str string) int {
	for _, r := range str {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

func progressBar(frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	full := int(frac*float64(width) + 0.5)
	return "[" + strings.Repeat("#", full) + strings.Repeat("-", width-full) + "]"
}
