// internal/selection/selection.go
//
// Drag selection on a puzzle grid.
// Responsibilities:
//   - BuildPath: turn an anchor cell and the hovered cell into a straight run of
//     cells (horizontal, vertical or 45° diagonal), or reject the pair.
//   - Finalize: read the letters along a released path and match them, forward
//     or reversed, against the words not yet found.
//   - Drag: the pointer down/enter/up protocol around BuildPath.

package selection

import (
	"slices"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// MinLength is the shortest path that is ever matched against words.
const MinLength = 2

// BuildPath returns the inclusive cells from start to end, or false when the
// two cells are not on a common row, column or diagonal.
func BuildPath(start, end puzzle.Position) ([]puzzle.Position, bool) {
	dr, dc := end.Row-start.Row, end.Col-start.Col
	if dr == 0 && dc == 0 {
		return []puzzle.Position{start}, true
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return nil, false
	}
	d := puzzle.Direction{DR: sign(dr), DC: sign(dc)}
	n := max(abs(dr), abs(dc)) + 1
	path := make([]puzzle.Position, n)
	for i := range path {
		path[i] = start.Step(d, i)
	}
	return path, true
}

// Finalize matches the letters along path against p.Words. The first word not
// yet in found that equals the forward or reversed letters is recorded in
// found with a copy of path and returned.
func Finalize(path []puzzle.Position, p puzzle.Puzzle, found map[string][]puzzle.Position) (string, bool) {
	if len(path) < MinLength {
		return "", false
	}
	letters := make([]byte, len(path))
	for i, pos := range path {
		if !p.Contains(pos) {
			return "", false
		}
		letters[i] = p.At(pos)
	}
	forward := string(letters)
	slices.Reverse(letters)
	reversed := string(letters)

	for _, w := range p.Words {
		if _, done := found[w]; done {
			continue
		}
		if w == forward || w == reversed {
			found[w] = slices.Clone(path)
			return w, true
		}
	}
	return "", false
}

// Drag tracks one in-progress pointer selection. The zero value is idle.
type Drag struct {
	start  puzzle.Position
	path   []puzzle.Position
	active bool
}

// Down anchors a new selection at pos.
func (d *Drag) Down(pos puzzle.Position) {
	d.start = pos
	d.path = []puzzle.Position{pos}
	d.active = true
}

// Enter re-anchors the path at the start cell and extends it to pos.
// Off-line cells leave the previous path in place and report false.
func (d *Drag) Enter(pos puzzle.Position) bool {
	if !d.active {
		return false
	}
	path, ok := BuildPath(d.start, pos)
	if !ok {
		return false
	}
	d.path = path
	return true
}

// Up ends the drag and returns the final path (nil when idle).
func (d *Drag) Up() []puzzle.Position {
	if !d.active {
		return nil
	}
	path := d.path
	d.Reset()
	return path
}

// Reset drops any in-progress selection.
func (d *Drag) Reset() {
	*d = Drag{}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// Path returns a copy of the highlighted cells.
func (d *Drag) Path() []puzzle.Position { return slices.Clone(d.path) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
