// internal/puzzle/types.go
//
// Core type definitions for word-search puzzles.
// Defines:
//   - Position: one grid cell (row, col).
//   - Direction: one of the 8 unit steps a word can run along.
//   - Puzzle: a square letter grid plus its hidden target words.

package puzzle

// Alphabet is the filler alphabet for empty cells.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Position identifies a single cell in the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the position n steps away along d.
func (p Position) Step(d Direction, n int) Position {
	return Position{Row: p.Row + n*d.DR, Col: p.Col + n*d.DC}
}

// Direction is a unit vector; DR and DC are each -1, 0 or 1 and never both 0.
type Direction struct {
	DR int
	DC int
}

// Directions lists the 8 placement directions.
var Directions = []Direction{
	{DR: 0, DC: 1},
	{DR: 1, DC: 0},
	{DR: 0, DC: -1},
	{DR: -1, DC: 0},
	{DR: 1, DC: 1},
	{DR: 1, DC: -1},
	{DR: -1, DC: 1},
	{DR: -1, DC: -1},
}

// Puzzle is one generated grid with its target words.
type Puzzle struct {
	Grid  [][]byte // Size×Size uppercase letters.
	Words []string // Target words in display order.
	Size  int      // Side length.

	// Fallback is set when placement exhausted its retries and the grid is
	// pure filler; the words are then not guaranteed to be findable.
	Fallback bool
}

// Contains reports whether pos lies inside the grid.
func (p Puzzle) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < p.Size && pos.Col >= 0 && pos.Col < p.Size
}

// At returns the letter at pos. pos must be inside the grid.
func (p Puzzle) At(pos Position) byte {
	return p.Grid[pos.Row][pos.Col]
}

// Rows renders the grid as one string per row.
func (p Puzzle) Rows() []string {
	out := make([]string, len(p.Grid))
	for i, row := range p.Grid {
		out[i] = string(row)
	}
	return out
}

// FromRows rebuilds a puzzle from row strings, e.g. a stored or transmitted grid.
func FromRows(rows []string, words []string) Puzzle {
	grid := make([][]byte, len(rows))
	for i, r := range rows {
		grid[i] = []byte(r)
	}
	return Puzzle{Grid: grid, Words: append([]string(nil), words...), Size: len(rows)}
}

// Locate finds the cells spelling word along any straight line, or false.
func Locate(p Puzzle, word string) ([]Position, bool) {
	n := len(word)
	if n == 0 {
		return nil, false
	}
	for r := 0; r < p.Size; r++ {
		for c := 0; c < p.Size; c++ {
			start := Position{Row: r, Col: c}
			for _, d := range Directions {
				if !p.Contains(start.Step(d, n-1)) {
					continue
				}
				match := true
				for i := 0; i < n; i++ {
					if p.At(start.Step(d, i)) != word[i] {
						match = false
						break
					}
				}
				if !match {
					continue
				}
				path := make([]Position, n)
				for i := range path {
					path[i] = start.Step(d, i)
				}
				return path, true
			}
		}
	}
	return nil, false
}
