package physics

import "time"

type SpaceOpt func(*Space)

// WithStep sets the simulated time each tick advances.
func WithStep(d time.Duration) SpaceOpt {
	return func(s *Space) {
		s.step = float32(d.Seconds())
	}
}
