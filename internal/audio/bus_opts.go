package audio

import (
	"time"

	"github.com/gopxl/beep"
)

type BusOpt func(*Bus)

// WithSampleRate sets the mixing sample rate
func WithSampleRate(rate int) BusOpt {
	return func(b *Bus) {
		b.rate = beep.SampleRate(rate)
	}
}

// WithTickLength sets how much audio each tick drains. It should match the
// driver's tick length.
func WithTickLength(d time.Duration) BusOpt {
	return func(b *Bus) {
		b.tickLength = d
	}
}
