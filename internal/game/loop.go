// internal/game/loop.go
//
// Event loop that owns a Controller.
// Responsibilities:
//   - Serialize events from any goroutine onto the single loop goroutine.
//   - Run the 1-second countdown ticker only while a level is active, and
//     restart it on every new puzzle so ticks never leak across levels.
//   - Start a Celebration on completion transitions and stop it on teardown
//     (new puzzle, mode change, loop exit).

package game

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrClosed is returned by Dispatch once the loop has stopped.
var ErrClosed = errors.New("game: loop closed")

// LoopOptions configures timing and observers of a Loop.
type LoopOptions struct {
	Effects        Effects       // celebration target; nil disables bursts
	TickEvery      time.Duration // countdown cadence; time.Second when zero
	Frame          time.Duration // CelebrationFrame when zero
	CelebrationFor time.Duration // CelebrationDuration when zero

	// OnChange runs on the loop goroutine after every applied event or tick.
	OnChange func(Snapshot)
}

// Loop serializes access to a Controller.
type Loop struct {
	ctrl     *Controller
	opts     LoopOptions
	requests chan request
	done     chan struct{}
}

type request struct {
	ctx   context.Context
	ev    Event
	reply chan response
}

type response struct {
	snap Snapshot
	err  error
}

// NewLoop wraps ctrl. Call Run to start processing.
func NewLoop(ctrl *Controller, opts LoopOptions) *Loop {
	if opts.TickEvery == 0 {
		opts.TickEvery = time.Second
	}
	if opts.Frame == 0 {
		opts.Frame = CelebrationFrame
	}
	if opts.CelebrationFor == 0 {
		opts.CelebrationFor = CelebrationDuration
	}
	return &Loop{
		ctrl:     ctrl,
		opts:     opts,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled. It must be called once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	var (
		ticker *time.Ticker
		tickC  <-chan time.Time
		cel    *Celebration
		epoch  = l.ctrl.st.epoch
		cheers = l.ctrl.st.celebrations
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	stopCelebration := func() {
		if cel != nil {
			cel.Stop()
			cel = nil
		}
	}
	defer stopTicker()
	defer stopCelebration()

	reconcile := func() {
		st := &l.ctrl.st
		if st.epoch != epoch {
			stopCelebration()
			stopTicker()
		}
		if st.celebrations != cheers && l.opts.Effects != nil {
			stopCelebration()
			cel = StartCelebration(l.opts.Effects, l.opts.Frame, l.opts.CelebrationFor)
		}
		epoch, cheers = st.epoch, st.celebrations

		switch ticking := l.ctrl.Ticking(); {
		case ticking && ticker == nil:
			ticker = time.NewTicker(l.opts.TickEvery)
			tickC = ticker.C
		case !ticking:
			stopTicker()
		}
		if l.opts.OnChange != nil {
			l.opts.OnChange(l.ctrl.Snapshot())
		}
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("game loop stopped")
			return
		case req := <-l.requests:
			err := l.ctrl.Apply(req.ctx, req.ev)
			reconcile()
			req.reply <- response{snap: l.ctrl.Snapshot(), err: err}
		case <-tickC:
			if err := l.ctrl.Apply(ctx, Tick{}); err != nil {
				log.Warn().Err(err).Msg("tick")
			}
			reconcile()
		}
	}
}

// Dispatch applies ev on the loop goroutine and returns the resulting state.
func (l *Loop) Dispatch(ctx context.Context, ev Event) (Snapshot, error) {
	req := request{ctx: ctx, ev: ev, reply: make(chan response, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.snap, res.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Snapshot returns the current state without changing it.
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	return l.Dispatch(ctx, nil)
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }
