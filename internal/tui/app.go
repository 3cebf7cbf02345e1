// internal/tui/app.go
//
// Terminal front-end for the word search game.
// Responsibilities:
//   - Translate tcell mouse drags and key presses into game events.
//   - Redraw whenever the game loop reports a change or confetti is moving.
//   - Play the chime and let the particle field render celebrations.
//
// Notes:
//   - All drawing happens on the goroutine running App.Run; other goroutines
//     only post interrupt events to ask for a redraw.

package tui

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

const animFrame = 33 * time.Millisecond

// sizeKeys maps the number keys to Normal-mode grid sizes.
var sizeKeys = map[rune]int{'1': 10, '2': 15, '3': 20}

type quitSignal struct{}

// Options wires optional collaborators of an App.
type Options struct {
	Particles *Particles // NewParticles(nil) when nil
	Sounder   Sounder    // silent when nil
}

// App owns the terminal screen.
type App struct {
	screen tcell.Screen
	fx     *Particles
	sound  Sounder
	loop   *game.Loop

	mu     sync.Mutex
	snap   game.Snapshot
	cheers int
	primed bool

	// UI-goroutine state
	dragging bool
	lastCell puzzle.Position
	naming   bool
	name     []rune
	status   string
}

// New prepares an App on an initialised screen.
func New(screen tcell.Screen, opts Options) *App {
	if opts.Particles == nil {
		opts.Particles = NewParticles(nil)
	}
	if opts.Sounder == nil {
		opts.Sounder = silent{}
	}
	w, h := screen.Size()
	opts.Particles.Resize(w, h)
	return &App{screen: screen, fx: opts.Particles, sound: opts.Sounder}
}

// Particles is the celebration target to hand to game.LoopOptions.Effects.
func (a *App) Particles() *Particles { return a.fx }

// Update records the latest snapshot and requests a redraw. It is meant as
// game.LoopOptions.OnChange and runs on the loop goroutine.
func (a *App) Update(s game.Snapshot) {
	a.mu.Lock()
	celebrate := a.primed && s.Celebrations > a.cheers
	a.snap, a.cheers, a.primed = s, s.Celebrations, true
	a.mu.Unlock()

	if celebrate {
		a.sound.Play()
	}
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (a *App) snapshot() game.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Run drives the screen until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context, loop *game.Loop) error {
	a.loop = loop
	a.screen.EnableMouse()
	a.screen.HideCursor()

	snap, err := loop.Snapshot(ctx)
	if err != nil {
		return err
	}
	a.Update(snap)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.animate(runCtx)
	go func() {
		<-runCtx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
	}()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handle(ctx, ev) {
			return nil
		}
	}
}

// animate steps the confetti and asks for frames while any is alive.
func (a *App) animate(ctx context.Context) {
	t := time.NewTicker(animFrame)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if a.fx.Len() == 0 {
				continue
			}
			a.fx.Step(animFrame)
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

// handle processes one terminal event; false means quit.
func (a *App) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := a.screen.Size()
		a.fx.Resize(w, h)
		a.screen.Sync()
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			return false
		}
	case *tcell.EventKey:
		if !a.handleKey(ctx, ev) {
			return false
		}
	case *tcell.EventMouse:
		a.handleMouse(ctx, ev)
	}
	a.draw()
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if a.naming {
		a.editName(ctx, ev)
		return true
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.send(ctx, game.AdvanceLevel{})
	case tcell.KeyRune:
		r := ev.Rune()
		if size, ok := sizeKeys[r]; ok {
			a.send(ctx, game.NewPuzzle{Size: size})
			return true
		}
		switch r {
		case 'q':
			return false
		case 'n':
			a.send(ctx, game.NewPuzzle{})
		case 'm':
			next := game.ModeLevel
			if a.snapshot().Mode == game.ModeLevel.String() {
				next = game.ModeNormal
			}
			a.send(ctx, game.SetMode{Mode: next})
		case 'b':
			a.send(ctx, game.SetMode{Mode: game.ModeNormal})
		case 'r':
			a.send(ctx, game.RestartLevel{})
		case 'R':
			a.send(ctx, game.RestartRun{})
		case 'h':
			a.send(ctx, game.ResetHighlights{})
		case 'p':
			a.naming = true
			a.name = []rune(a.snapshot().Player)
		}
	}
	return true
}

// editName handles keys while the name prompt is open.
func (a *App) editName(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.naming = false
	case tcell.KeyEnter:
		a.naming = false
		a.send(ctx, game.SetPlayer{Name: string(a.name)})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.name) > 0 {
			a.name = a.name[:len(a.name)-1]
		}
	case tcell.KeyRune:
		if len(a.name) < maxNameLen {
			a.name = append(a.name, ev.Rune())
		}
	}
}

func (a *App) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos, onGrid := a.cellAt(x, y)
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !a.dragging:
		if !onGrid {
			return
		}
		a.dragging, a.lastCell = true, pos
		a.send(ctx, game.PointerDown{Pos: pos})
	case pressed && a.dragging:
		if onGrid && pos != a.lastCell {
			a.lastCell = pos
			a.send(ctx, game.PointerEnter{Pos: pos})
		}
	case !pressed && a.dragging:
		a.dragging = false
		a.send(ctx, game.PointerUp{})
	}
}

// send dispatches ev; rejected events only show up in the status line.
func (a *App) send(ctx context.Context, ev game.Event) {
	if _, err := a.loop.Dispatch(ctx, ev); err != nil {
		log.Debug().Err(err).Msgf("event %T rejected", ev)
		a.status = err.Error()
		return
	}
	a.status = ""
}
