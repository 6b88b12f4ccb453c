package audio

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

const (
	DefaultSampleRate = beep.SampleRate(22050)
	DefaultTickLength = 50 * time.Millisecond
)

// Bus mixes the cues of every item. The server has no speaker, so each tick
// drains one tick worth of samples and keeps the level for inspection.
type Bus struct {
	mu         sync.Mutex
	mixer      *beep.Mixer
	rate       beep.SampleRate
	tickLength time.Duration
	buf        [][2]float64

	played int
	peak   float64
}

func NewBus(opts ...BusOpt) *Bus {
	b := &Bus{
		mixer:      &beep.Mixer{},
		rate:       DefaultSampleRate,
		tickLength: DefaultTickLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.buf = make([][2]float64, b.rate.N(b.tickLength))
	return b
}

func (b *Bus) Rate() beep.SampleRate { return b.rate }

// Play queues cue on the mixer.
func (b *Bus) Play(cue Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mixer.Add(cue.Streamer(b.rate))
	b.played++
}

// Active is the number of cues still sounding.
func (b *Bus) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Len()
}

// Played is the number of cues queued since the bus was created.
func (b *Bus) Played() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.played
}

// Peak is the loudest sample mixed during the last tick.
func (b *Bus) Peak() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.peak
}

// Tick satisfies driver.Manager.
func (b *Bus) Tick(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mixer.Len() == 0 {
		b.peak = 0
		return nil
	}

	n, _ := b.mixer.Stream(b.buf)
	peak := 0.0
	for _, s := range b.buf[:n] {
		peak = max(peak, math.Abs(s[0]), math.Abs(s[1]))
	}
	b.peak = peak

	if err := b.mixer.Err(); err != nil {
		slog.WarnContext(ctx, "mixing sound cues", "error", err)
	}
	return nil
}
