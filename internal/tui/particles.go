package tui

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordsearch/internal/game"
)

const (
	particleLife  = 1200 * time.Millisecond
	particleSpeed = 28.0 // cells per second
	gravity       = 22.0 // cells per second squared
	maxParticles  = 600
)

var (
	confettiRunes  = []rune{'*', '+', 'o', '.', '•'}
	confettiColors = []tcell.Color{
		tcell.ColorRed, tcell.ColorYellow, tcell.ColorGreen,
		tcell.ColorBlue, tcell.ColorFuchsia, tcell.ColorAqua,
	}
)

type particle struct {
	x, y   float64
	vx, vy float64
	age    time.Duration
	r      rune
	color  tcell.Color
}

// Particles renders celebration bursts as terminal confetti. It implements
// game.Effects and is safe for concurrent use.
type Particles struct {
	mu    sync.Mutex
	items []particle
	w, h  int
	rng   *rand.Rand
}

// NewParticles returns an empty field; rng may be nil.
func NewParticles(rng *rand.Rand) *Particles {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Particles{rng: rng}
}

// Resize sets the area particles live in.
func (p *Particles) Resize(w, h int) {
	p.mu.Lock()
	p.w, p.h = w, h
	p.mu.Unlock()
}

// Burst launches b.Particles pieces from the screen edge given by b.OriginX,
// halfway down, aimed at b.Angle degrees (90 is straight up) +/- Spread/2.
func (p *Particles) Burst(b game.Burst) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.w == 0 || p.h == 0 {
		return
	}
	x0 := b.OriginX * float64(p.w-1)
	y0 := float64(p.h) / 2
	for range b.Particles {
		deg := b.Angle + (p.rng.Float64()-0.5)*b.Spread
		rad := deg * math.Pi / 180
		speed := particleSpeed * (0.6 + 0.6*p.rng.Float64())
		p.items = append(p.items, particle{
			x:     x0,
			y:     y0,
			vx:    math.Cos(rad) * speed * 2, // cells are about twice as tall as wide
			vy:    -math.Sin(rad) * speed,
			r:     confettiRunes[p.rng.IntN(len(confettiRunes))],
			color: confettiColors[p.rng.IntN(len(confettiColors))],
		})
	}
	if over := len(p.items) - maxParticles; over > 0 {
		p.items = p.items[over:]
	}
}

// Step advances every particle by dt and drops the expired or off-screen
// ones. It returns how many remain.
func (p *Particles) Step(dt time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	sec := dt.Seconds()
	alive := p.items[:0]
	for _, it := range p.items {
		it.age += dt
		it.vy += gravity * sec
		it.x += it.vx * sec
		it.y += it.vy * sec
		if it.age >= particleLife || it.x < 0 || it.x >= float64(p.w) || it.y >= float64(p.h) {
			continue
		}
		alive = append(alive, it)
	}
	p.items = alive
	return len(alive)
}

// Len reports the live particle count.
func (p *Particles) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Draw paints the particles over whatever is on screen.
func (p *Particles) Draw(s tcell.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, it := range p.items {
		if it.y < 0 {
			continue
		}
		s.SetContent(int(it.x), int(it.y), it.r, nil, tcell.StyleDefault.Foreground(it.color))
	}
}
