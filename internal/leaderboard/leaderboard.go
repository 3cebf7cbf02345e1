// internal/leaderboard/leaderboard.go
//
// Ranked list of completed level runs, persisted in a kv.Store.
//
// Rules:
//   - Entries sort by level (desc), then time in seconds (asc).
//   - Only the top Capacity entries are kept.
//   - Blank player names never produce an entry.
//   - A missing or malformed stored blob loads as an empty board.
//
// The stored format is a JSON array of {id,name,level,time,completedAt}, with
// completedAt in Unix milliseconds.

package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/kv"
)

const (
	// Key is the store key for the serialized board.
	Key = "word-search-leaderboard"
	// PlayerKey is the store key for the last used player name.
	PlayerKey = "word-search-player"
	// Capacity is the maximum number of kept entries.
	Capacity = 10
)

// Entry is one recorded run result.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`       // levels completed, 1-based
	Time        int    `json:"time"`        // seconds since the run started
	CompletedAt int64  `json:"completedAt"` // Unix milliseconds
}

// Board is a concurrency-safe leaderboard bound to a store.
type Board struct {
	// save serializes persisting so an older blob never lands after a newer one.
	save    sync.Mutex
	mu      sync.Mutex
	store   kv.Store
	entries []Entry
	now     func() time.Time
}

// Open loads the board from store. Absent or malformed data yields an empty
// board; only store failures are returned as errors.
func Open(ctx context.Context, store kv.Store) (*Board, error) {
	raw, ok, err := store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	b := &Board{store: store, now: time.Now}
	if !ok || strings.TrimSpace(raw) == "" {
		return b, nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn().Err(err).Msg("stored leaderboard is malformed; starting empty")
		return b, nil
	}
	b.entries = Rank(entries)
	return b, nil
}

// Record adds a result for name and persists the board. It returns the new
// entry and false without touching the board when name is blank. The entry
// stays in memory even if persisting fails.
func (b *Board) Record(ctx context.Context, name string, level, seconds int) (Entry, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, false, nil
	}
	e := Entry{
		ID:          uuid.NewString(),
		Name:        name,
		Level:       level,
		Time:        seconds,
		CompletedAt: b.now().UnixMilli(),
	}

	b.save.Lock()
	defer b.save.Unlock()

	b.mu.Lock()
	b.entries = Rank(append([]Entry{e}, b.entries...))
	blob, err := json.Marshal(b.entries)
	b.mu.Unlock()
	if err != nil {
		return e, true, fmt.Errorf("encode leaderboard: %w", err)
	}

	if err := b.store.Set(ctx, Key, string(blob)); err != nil {
		return e, true, fmt.Errorf("save leaderboard: %w", err)
	}
	log.Info().Str("name", name).Int("level", level).Int("seconds", seconds).Msg("leaderboard entry recorded")
	return e, true, nil
}

// Entries returns a copy of the ranked entries.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.entries)
}

// Rank sorts entries by level desc, time asc (stable, so earlier entries win
// ties) and truncates to Capacity.
func Rank(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if a.Level != b.Level {
			return b.Level - a.Level
		}
		return a.Time - b.Time
	})
	if len(out) > Capacity {
		out = out[:Capacity]
	}
	return out
}

// LoadPlayer returns the remembered player name, or "" when none is stored.
func LoadPlayer(ctx context.Context, store kv.Store) (string, error) {
	v, _, err := store.Get(ctx, PlayerKey)
	if err != nil {
		return "", fmt.Errorf("load player: %w", err)
	}
	return v, nil
}

// SavePlayer remembers name as the last used player name.
func SavePlayer(ctx context.Context, store kv.Store, name string) error {
	if err := store.Set(ctx, PlayerKey, name); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}
