package driver

import "time"

type GameDriverOpt func(*GameDriver)

// WithTickLength sets the wall clock time between ticks.
func WithTickLength(tickLength time.Duration) GameDriverOpt {
	return func(d *GameDriver) {
		d.tickLength = tickLength
	}
}
