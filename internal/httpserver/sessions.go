// internal/httpserver/sessions.go
//
// In-memory registry of live game sessions.
// Responsibilities:
//   - Create sessions, each with its own controller loop goroutine.
//   - Track last use so idle sessions can be swept after the TTL.
//   - Stop loops on removal so no goroutine outlives its session.
//
// Notes:
//   - Safe for concurrent use; the map is guarded by a mutex, the game state
//     itself is only touched by the session's loop.

package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
)

type session struct {
	id       string
	loop     *game.Loop
	cancel   context.CancelFunc
	lastSeen time.Time // guarded by registry.mu
}

// close stops the loop and waits for it to exit.
func (s *session) close() {
	s.cancel()
	<-s.loop.Done()
}

type registry struct {
	mu    sync.Mutex
	items map[string]*session
	ttl   time.Duration
	now   func() time.Time
}

func newRegistry(ttl time.Duration) *registry {
	return &registry{items: make(map[string]*session), ttl: ttl, now: time.Now}
}

// add starts a loop for ctrl and registers it under a fresh id.
func (g *registry) add(ctrl *game.Controller) *session {
	ctx, cancel := context.WithCancel(context.Background())
	loop := game.NewLoop(ctrl, game.LoopOptions{})
	go loop.Run(ctx)

	sess := &session{id: uuid.NewString(), loop: loop, cancel: cancel}
	g.mu.Lock()
	sess.lastSeen = g.now()
	g.items[sess.id] = sess
	g.mu.Unlock()
	return sess
}

// get returns the session and marks it as used.
func (g *registry) get(id string) (*session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.items[id]
	if ok {
		sess.lastSeen = g.now()
	}
	return sess, ok
}

// remove closes and forgets a session.
func (g *registry) remove(id string) bool {
	g.mu.Lock()
	sess, ok := g.items[id]
	delete(g.items, id)
	g.mu.Unlock()
	if ok {
		sess.close()
	}
	return ok
}

// sweep closes sessions idle for longer than the TTL.
func (g *registry) sweep() int {
	if g.ttl <= 0 {
		return 0
	}
	cutoff := g.now().Add(-g.ttl)

	g.mu.Lock()
	var stale []*session
	for id, sess := range g.items {
		if sess.lastSeen.Before(cutoff) {
			stale = append(stale, sess)
			delete(g.items, id)
		}
	}
	g.mu.Unlock()

	for _, sess := range stale {
		sess.close()
		log.Debug().Str("session", sess.id).Msg("expired idle session")
	}
	return len(stale)
}

func (g *registry) janitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := g.sweep(); n > 0 {
				log.Info().Int("expired", n).Msg("swept sessions")
			}
		}
	}
}

func (g *registry) closeAll() {
	g.mu.Lock()
	all := g.items
	g.items = make(map[string]*session)
	g.mu.Unlock()
	for _, sess := range all {
		sess.close()
	}
}

func (g *registry) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}
