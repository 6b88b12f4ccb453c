package game

type WorldOpt func(*World)

// WithStep sets the simulated seconds that pass on each tick.
func WithStep(seconds float32) WorldOpt {
	return func(w *World) {
		w.step = seconds
	}
}
