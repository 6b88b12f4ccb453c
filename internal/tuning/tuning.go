package tuning

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

// Tuning holds the gameplay numbers designers adjust without a rebuild.
type Tuning struct {
	TickMs          int     `yaml:"tick_ms"`
	DropDamping     float32 `yaml:"drop_damping"`
	PromptSeconds   float32 `yaml:"prompt_seconds"`
	ExplosionRadius float32 `yaml:"explosion_radius"`
	ExplosionForce  float32 `yaml:"explosion_force"`
	SampleRate      int     `yaml:"sample_rate"`
}

// Defaults returns the tuning used when no file is given.
func Defaults() Tuning {
	return Tuning{
		TickMs:          33,
		DropDamping:     4,
		PromptSeconds:   1.5,
		ExplosionRadius: 48,
		ExplosionForce:  120,
		SampleRate:      22050,
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	el := errors.NewErrorList()
	if t.TickMs <= 0 {
		el.Add(fmt.Errorf("tick_ms must be positive"))
	}
	if t.DropDamping < 0 {
		el.Add(fmt.Errorf("drop_damping must not be negative"))
	}
	if t.PromptSeconds <= 0 {
		el.Add(fmt.Errorf("prompt_seconds must be positive"))
	}
	if t.ExplosionRadius < 0 {
		el.Add(fmt.Errorf("explosion_radius must not be negative"))
	}
	if t.SampleRate <= 0 {
		el.Add(fmt.Errorf("sample_rate must be positive"))
	}
	return el.Err()
}

// Tick is the length of one simulation step.
func (t Tuning) Tick() time.Duration {
	return time.Duration(t.TickMs) * time.Millisecond
}
