// internal/words/words.go
//
// Word bank management for the puzzle generator.
//
// Responsibilities:
//   - Load the word bank from a file (WORDS_FILE) or fall back to the embedded default.
//   - Normalize entries to uppercase A–Z and drop duplicates, keeping first-seen order.
//   - Expose the loaded bank plus small helpers (Stats, Short).
//
// Constraints:
//   • Words must be alphabetic and at least two letters long.
//   • Initialization is run once (sync.Once); Load is available for callers that
//     manage their own bank (tests, tools).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordsearch/assets"
)

// MinLength is the shortest word accepted into a bank.
const MinLength = 2

// ErrEmptyBank is returned when a bank source yields no usable words.
var ErrEmptyBank = errors.New("words: bank is empty")

var (
	initOnce   sync.Once
	bank       []string
	initialErr error
)

// Init loads the package-level bank exactly once.
// An empty path selects the embedded default bank.
func Init(path string) error {
	initOnce.Do(func() {
		bank, initialErr = Load(path)
	})
	return initialErr
}

// Bank returns the bank loaded by Init (nil before Init succeeds).
func Bank() []string {
	return bank
}

// Load reads a bank from path, or the embedded default when path is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		raw, err := assets.WordBank()
		if err != nil {
			return nil, fmt.Errorf("read embedded bank: %w", err)
		}
		return Normalize(raw)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()

	raw, err := readWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Normalize(raw)
}

// readWords collects one word per line, skipping blanks and # comments.
func readWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Normalize uppercases entries, drops invalid words and removes duplicates.
func Normalize(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) < MinLength || !isAlpha(w) {
			log.Debug().Str("word", w).Msg("skipping invalid bank entry")
			continue
		}
		out = append(out, w)
	}
	uniq := lo.Uniq(out)
	if dropped := len(out) - len(uniq); dropped > 0 {
		log.Warn().Int("duplicates", dropped).Msg("word bank contained duplicate entries")
	}
	if len(uniq) == 0 {
		return nil, ErrEmptyBank
	}
	return uniq, nil
}

// Short returns the words of at most max letters, preserving order.
func Short(list []string, max int) []string {
	return lo.Filter(list, func(w string, _ int) bool { return len(w) <= max })
}

// Stats returns the number of loaded words and the longest word length.
func Stats() (count int, longest int) {
	for _, w := range bank {
		longest = max(longest, len(w))
	}
	return len(bank), longest
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
