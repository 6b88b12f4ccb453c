package audio

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

var waveNames = map[string]Wave{
	"sine":   WaveSine,
	"square": WaveSquare,
	"saw":    WaveSaw,
	"noise":  WaveNoise,
}

func (w Wave) MarshalText() ([]byte, error) {
	for name, v := range waveNames {
		if v == w {
			return []byte(name), nil
		}
	}
	return nil, fmt.Errorf("unknown wave: %d", int(w))
}

func (w *Wave) UnmarshalText(text []byte) error {
	v, ok := waveNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown wave: %s", text)
	}
	*w = v
	return nil
}

// Cue is a short synthesized sound played when an item is used. Cues live in
// an item definition under ext.sound.
type Cue struct {
	Freq       float64 `json:"freq"`
	DurationMs int     `json:"ms"`
	Wave       Wave    `json:"wave"`
	Volume     float64 `json:"volume"`
	ReleaseMs  int     `json:"release_ms,omitempty"`
}

func (c Cue) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

func (c Cue) Validate() error {
	if c.DurationMs <= 0 {
		return fmt.Errorf("cue duration must be positive")
	}
	if c.Freq < 0 {
		return fmt.Errorf("cue frequency must not be negative")
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("cue volume must be between 0 and 1")
	}
	return nil
}

// Streamer builds the cue's samples at rate.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(c.Duration())
	s := beep.Streamer(&oscillator{freq: c.Freq, wave: c.Wave, rate: rate, length: total})
	if c.ReleaseMs > 0 {
		s = &release{streamer: s, total: total, samples: rate.N(time.Duration(c.ReleaseMs) * time.Millisecond)}
	}

	vol := c.Volume
	if vol == 0 {
		vol = 1
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// oscillator generates a raw wave for length samples.
type oscillator struct {
	freq     float64
	phase    float64
	wave     Wave
	rate     beep.SampleRate
	length   int
	position int
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// release fades the last samples of a stream out linearly.
type release struct {
	streamer beep.Streamer
	total    int
	samples  int
	position int
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.streamer.Stream(samples)
	start := r.total - r.samples
	for i := 0; i < n; i++ {
		if r.position >= start && r.samples > 0 {
			vol := max(0, float64(r.total-r.position)/float64(r.samples))
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }
