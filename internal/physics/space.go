package physics

import (
	"context"
	"sync"
	"time"

	"github.com/pixil98/go-rogue/internal/game"
)

const DefaultStep = time.Second / 30

// restSpeed is the speed below which a body is put to rest.
const restSpeed = 0.01

type body struct {
	owner   game.EntityId
	rect    game.Rect
	damping float32
	vx, vy  float32
}

// Space holds the bodies of loose items. Bodies only move when pushed and
// slow down with linear damping.
type Space struct {
	mu     sync.Mutex
	next   game.BodyId
	bodies map[game.BodyId]*body
	step   float32
}

func NewSpace(opts ...SpaceOpt) *Space {
	s := &Space{
		bodies: make(map[game.BodyId]*body),
		step:   float32(DefaultStep.Seconds()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Space) AddBody(owner game.EntityId, r game.Rect, damping float32) game.BodyId {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.bodies[s.next] = &body{owner: owner, rect: r, damping: damping}
	return s.next
}

// RemoveBody forgets the body. Unknown ids are ignored.
func (s *Space) RemoveBody(id game.BodyId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bodies, id)
}

// Push adds velocity to the body.
func (s *Space) Push(id game.BodyId, vx, vy float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bodies[id]; ok {
		b.vx += vx
		b.vy += vy
	}
}

func (s *Space) Position(id game.BodyId) (float32, float32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return 0, 0, false
	}
	return b.rect.X, b.rect.Y, true
}

// velocity returns the body's current velocity.
func (s *Space) velocity(id game.BodyId) (float32, float32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return 0, 0, false
	}
	return b.vx, b.vy, true
}

// Bounds returns the body's rectangle.
func (s *Space) Bounds(id game.BodyId) (game.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return game.Rect{}, false
	}
	return b.rect, true
}

func (s *Space) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

// Tick satisfies driver.Manager. It advances every body by one step.
func (s *Space) Tick(context.Context) error {
	s.Step(s.step)
	return nil
}

// Step moves bodies by their velocity over dt seconds, then damps the
// velocity with v *= 1 / (1 + dt*damping).
func (s *Space) Step(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bodies {
		if b.vx == 0 && b.vy == 0 {
			continue
		}
		b.rect.X += b.vx * dt
		b.rect.Y += b.vy * dt

		f := 1 / (1 + dt*b.damping)
		b.vx *= f
		b.vy *= f
		if b.vx*b.vx+b.vy*b.vy < restSpeed*restSpeed {
			b.vx, b.vy = 0, 0
		}
	}
}
