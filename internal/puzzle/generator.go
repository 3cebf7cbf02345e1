// internal/puzzle/generator.go
//
// Randomized puzzle generation.
//
// Algorithm:
//   - Pick the target word count for the size (WordCounts, else min(12, bank)).
//   - Build the candidate pool (≤3 letters for tiny grids, else ≤ size letters),
//     Fisher–Yates shuffle it and keep the first count words.
//   - Place each word with up to wordAttempts random (direction, start) tries;
//     cells may be shared only when the letters agree.
//   - Retry the whole set on a fresh grid up to gridAttempts times, then fall
//     back to a pure filler grid flagged with Puzzle.Fallback.
//   - Fill every empty cell with a random letter.
//
// The random source is injectable so tests can replay a puzzle from a seed.

package puzzle

import (
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/words"
)

const (
	wordAttempts = 200
	gridAttempts = 40

	// defaultWordCount caps the word count for sizes missing from WordCounts.
	defaultWordCount = 12
	// tinySize is the largest grid restricted to three-letter words.
	tinySize = 3
)

// WordCounts maps grid size to the number of hidden words.
var WordCounts = map[int]int{
	3:  2,
	5:  4,
	7:  6,
	10: 8,
	12: 10,
	15: 12,
	20: 18,
}

// WordCount returns how many words a puzzle of the given size hides.
func WordCount(size, bankLen int) int {
	if n, ok := WordCounts[size]; ok {
		return n
	}
	return min(defaultWordCount, bankLen)
}

// Generator builds puzzles from a random source. It is not safe for
// concurrent use; give each goroutine its own.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator wraps an existing random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator returns a generator that replays the same puzzles for the same seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewRandomGenerator returns a generator seeded from the runtime's entropy.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// Generate builds a size×size puzzle from bank.
func (g *Generator) Generate(size int, bank []string) Puzzle {
	if size <= 0 {
		return Puzzle{}
	}
	selected := g.shuffle(candidates(size, bank))
	if n := WordCount(size, len(bank)); len(selected) > n {
		selected = selected[:n]
	}

	for attempt := 0; attempt < gridAttempts; attempt++ {
		if grid, ok := g.place(size, selected); ok {
			return Puzzle{Grid: grid, Words: selected, Size: size}
		}
	}

	log.Warn().
		Int("size", size).
		Strs("words", selected).
		Msg("word placement exhausted retries; puzzle falls back to filler grid")
	return Puzzle{Grid: g.fillerGrid(size), Words: selected, Size: size, Fallback: true}
}

// candidates returns the words eligible for a grid of the given size.
func candidates(size int, bank []string) []string {
	if size <= tinySize {
		return words.Short(bank, tinySize)
	}
	return words.Short(bank, size)
}

// shuffle returns a Fisher–Yates shuffled copy of items.
func (g *Generator) shuffle(items []string) []string {
	out := append([]string(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// place tries to lay every word on a fresh grid; false if any word fails.
func (g *Generator) place(size int, list []string) ([][]byte, bool) {
	grid := emptyGrid(size)
	for _, w := range list {
		if !g.placeWord(grid, w) {
			return nil, false
		}
	}
	for _, row := range grid {
		for c := range row {
			if row[c] == 0 {
				row[c] = g.letter()
			}
		}
	}
	return grid, true
}

func (g *Generator) placeWord(grid [][]byte, word string) bool {
	size, n := len(grid), len(word)
	for attempt := 0; attempt < wordAttempts; attempt++ {
		d := Directions[g.rng.IntN(len(Directions))]
		rowMin, rowMax := startRange(d.DR, n, size)
		colMin, colMax := startRange(d.DC, n, size)
		if rowMax < rowMin || colMax < colMin {
			continue
		}
		start := Position{
			Row: rowMin + g.rng.IntN(rowMax-rowMin+1),
			Col: colMin + g.rng.IntN(colMax-colMin+1),
		}
		if !fits(grid, word, start, d) {
			continue
		}
		for i := 0; i < n; i++ {
			p := start.Step(d, i)
			grid[p.Row][p.Col] = word[i]
		}
		return true
	}
	return false
}

// startRange bounds the start coordinate so a word of length n stays on the
// board when stepping by step.
func startRange(step, n, size int) (lo, hi int) {
	lo, hi = 0, size-1
	switch step {
	case -1:
		lo = n - 1
	case 1:
		hi = size - n
	}
	return lo, hi
}

// fits reports whether every target cell is empty or already holds the
// matching letter.
func fits(grid [][]byte, word string, start Position, d Direction) bool {
	for i := 0; i < len(word); i++ {
		p := start.Step(d, i)
		if cur := grid[p.Row][p.Col]; cur != 0 && cur != word[i] {
			return false
		}
	}
	return true
}

func (g *Generator) fillerGrid(size int) [][]byte {
	grid := emptyGrid(size)
	for _, row := range grid {
		for c := range row {
			row[c] = g.letter()
		}
	}
	return grid
}

func (g *Generator) letter() byte {
	return Alphabet[g.rng.IntN(len(Alphabet))]
}

func emptyGrid(size int) [][]byte {
	grid := make([][]byte, size)
	for i := range grid {
		grid[i] = make([]byte, size)
	}
	return grid
}
