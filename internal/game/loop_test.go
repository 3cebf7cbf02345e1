package game

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

func startLoop(t *testing.T, f *fixture, opts LoopOptions) *Loop {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(f.ctrl, opts)
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l
}

func dispatchSolve(t *testing.T, l *Loop) Snapshot {
	t.Helper()
	ctx := context.Background()
	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)
	for _, w := range snap.Remaining {
		path, ok := puzzle.Locate(puzzle.FromRows(snap.Grid, snap.Words), w)
		require.True(t, ok)
		for _, ev := range []Event{PointerDown{Pos: path[0]}, PointerEnter{Pos: path[len(path)-1]}, PointerUp{}} {
			snap, err = l.Dispatch(ctx, ev)
			require.NoError(t, err)
		}
	}
	return snap
}

func TestLoopDispatch(t *testing.T) {
	f := newFixture(t, nil)
	var changes atomic.Int32
	l := startLoop(t, f, LoopOptions{OnChange: func(Snapshot) { changes.Add(1) }})

	snap, err := l.Dispatch(context.Background(), NewPuzzle{Size: 15})
	require.NoError(t, err)
	assert.Equal(t, 15, snap.Size)
	assert.Equal(t, int32(1), changes.Load())

	_, err = l.Dispatch(context.Background(), NewPuzzle{Size: 4})
	require.ErrorIs(t, err, ErrBadSize)
}

func TestLoopCountsDown(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.TimeLimit = 3 })
	l := startLoop(t, f, LoopOptions{TickEvery: 5 * time.Millisecond})

	snap, err := l.Dispatch(context.Background(), SetMode{Mode: ModeLevel})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TimeLeft)

	require.Eventually(t, func() bool {
		s, err := l.Snapshot(context.Background())
		return err == nil && s.Phase == "game_over"
	}, 2*time.Second, 5*time.Millisecond)

	snap, err = l.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.TimeLeft)
}

func TestLoopTicksOnlyInLevelMode(t *testing.T) {
	f := newFixture(t, nil)
	l := startLoop(t, f, LoopOptions{TickEvery: time.Millisecond})

	time.Sleep(20 * time.Millisecond)
	snap, err := l.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300, snap.TimeLeft)
}

func TestLoopCelebratesCompletion(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.LevelSizes = []int{3} })
	var bursts atomic.Int32
	fx := EffectsFunc(func(Burst) { bursts.Add(1) })
	l := startLoop(t, f, LoopOptions{
		Effects:        fx,
		Frame:          time.Millisecond,
		CelebrationFor: 30 * time.Millisecond,
	})

	_, err := l.Dispatch(context.Background(), SetMode{Mode: ModeLevel})
	require.NoError(t, err)
	snap := dispatchSolve(t, l)
	assert.Equal(t, "level_complete", snap.Phase)
	assert.Equal(t, 1, snap.Celebrations)

	require.Eventually(t, func() bool { return bursts.Load() >= 2 }, time.Second, time.Millisecond)

	// The animation ends by itself.
	time.Sleep(60 * time.Millisecond)
	settled := bursts.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, bursts.Load())
}

func TestLoopClosed(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(f.ctrl, LoopOptions{})
	go l.Run(ctx)
	cancel()
	<-l.Done()

	_, err := l.Dispatch(context.Background(), ResetHighlights{})
	require.ErrorIs(t, err, ErrClosed)
}
