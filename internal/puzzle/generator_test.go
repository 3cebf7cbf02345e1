package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/words"
)

func testBank(t *testing.T) []string {
	t.Helper()
	bank, err := words.Load("")
	require.NoError(t, err)
	return bank
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 2, WordCount(3, 50))
	assert.Equal(t, 18, WordCount(20, 50))
	assert.Equal(t, 12, WordCount(8, 50))
	assert.Equal(t, 5, WordCount(8, 5))
}

func TestGenerateEveryWordIsFindable(t *testing.T) {
	bank := testBank(t)
	sizes := []int{3, 5, 7, 10, 12, 15, 20}

	trials, fallbacks := 0, 0
	for seed := uint64(1); seed <= 60; seed++ {
		g := NewSeededGenerator(seed)
		for _, size := range sizes {
			p := g.Generate(size, bank)
			trials++
			require.Equal(t, size, p.Size)
			require.Len(t, p.Grid, size)
			if p.Fallback {
				fallbacks++
				continue
			}
			for _, w := range p.Words {
				path, ok := Locate(p, w)
				require.Truef(t, ok, "seed %d size %d: %q not in grid", seed, size, w)
				assert.Len(t, path, len(w))
			}
		}
	}
	assert.LessOrEqual(t, fallbacks, trials/100, "fallback grids should be negligible")
}

func TestGenerateShape(t *testing.T) {
	bank := testBank(t)
	g := NewSeededGenerator(7)

	for _, size := range []int{3, 5, 10, 20} {
		p := g.Generate(size, bank)
		assert.Len(t, p.Words, WordCount(size, len(bank)))

		seen := map[string]bool{}
		for _, w := range p.Words {
			assert.False(t, seen[w], "duplicate word %q", w)
			seen[w] = true
			if size <= 3 {
				assert.LessOrEqual(t, len(w), 3)
			} else {
				assert.LessOrEqual(t, len(w), size)
			}
		}
		for _, row := range p.Grid {
			require.Len(t, row, size)
			for _, ch := range row {
				assert.True(t, ch >= 'A' && ch <= 'Z', "cell %q is not a letter", ch)
			}
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	bank := testBank(t)
	a := NewSeededGenerator(42).Generate(15, bank)
	b := NewSeededGenerator(42).Generate(15, bank)
	assert.Equal(t, a, b)

	c := NewSeededGenerator(43).Generate(15, bank)
	assert.NotEqual(t, a.Rows(), c.Rows())
}

func TestGenerateFallsBackWhenWordsCannotFit(t *testing.T) {
	// Five 4-letter words with 20 distinct letters need 20 cells; a 4x4 grid has 16.
	bank := []string{"ABCD", "EFGH", "IJKL", "MNOP", "QRST"}
	p := NewSeededGenerator(3).Generate(4, bank)

	require.True(t, p.Fallback)
	assert.Equal(t, 4, p.Size)
	assert.ElementsMatch(t, bank, p.Words)
	for _, row := range p.Grid {
		require.Len(t, row, 4)
		for _, ch := range row {
			assert.True(t, ch >= 'A' && ch <= 'Z')
		}
	}
}

func TestGenerateZeroSize(t *testing.T) {
	p := NewSeededGenerator(1).Generate(0, testBank(t))
	assert.Equal(t, 0, p.Size)
	assert.Empty(t, p.Grid)
}

func TestStartRange(t *testing.T) {
	lo, hi := startRange(1, 3, 5)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 2, hi)

	lo, hi = startRange(-1, 3, 5)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 4, hi)

	lo, hi = startRange(1, 6, 5)
	assert.Greater(t, lo, hi)
}

func TestLocate(t *testing.T) {
	p := FromRows([]string{
		"CAT",
		"XOX",
		"XXW",
	}, []string{"CAT", "COW", "TAC", "DOG"})

	path, ok := Locate(p, "CAT")
	require.True(t, ok)
	assert.Equal(t, []Position{{0, 0}, {0, 1}, {0, 2}}, path)

	path, ok = Locate(p, "COW")
	require.True(t, ok)
	assert.Equal(t, []Position{{0, 0}, {1, 1}, {2, 2}}, path)

	path, ok = Locate(p, "TAC")
	require.True(t, ok)
	assert.Equal(t, Position{0, 2}, path[0])

	_, ok = Locate(p, "DOG")
	assert.False(t, ok)
}
