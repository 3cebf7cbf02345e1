package game

import (
	"sync"
	"time"
)

const (
	// CelebrationDuration bounds how long bursts keep firing.
	CelebrationDuration = 1600 * time.Millisecond
	// CelebrationFrame is the gap between paired bursts (~60 fps).
	CelebrationFrame = 16 * time.Millisecond
)

// Side bursts fired every frame: one from the left edge angled right, one
// from the right edge angled left.
var (
	leftBurst  = Burst{Particles: 3, Angle: 60, Spread: 70, OriginX: 0}
	rightBurst = Burst{Particles: 3, Angle: 120, Spread: 70, OriginX: 1}
)

// Celebration is a running burst animation. Stop it on teardown; it also
// ends by itself after its duration.
type Celebration struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartCelebration fires paired bursts at fx every frame until duration has
// elapsed or Stop is called.
func StartCelebration(fx Effects, frame, duration time.Duration) *Celebration {
	c := &Celebration{stop: make(chan struct{}), done: make(chan struct{})}
	go c.run(fx, frame, duration)
	return c
}

func (c *Celebration) run(fx Effects, frame, duration time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	deadline := time.NewTimer(duration)
	defer deadline.Stop()

	for {
		fx.Burst(leftBurst)
		fx.Burst(rightBurst)
		select {
		case <-c.stop:
			return
		case <-deadline.C:
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and waits for the last burst to return. Safe to
// call more than once and after the animation finished.
func (c *Celebration) Stop() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Done is closed once the animation has ended.
func (c *Celebration) Done() <-chan struct{} { return c.done }
