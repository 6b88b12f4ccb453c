package command

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

type Config struct {
	Listeners []ListenerConfig `json:"listeners"`
	Storage   StorageConfig    `json:"storage"`
	Progress  ProgressConfig   `json:"progress"`
	Tuning    TuningConfig     `json:"tuning"`
	Nats      NatsConfig       `json:"nats"`
	Console   ConsoleConfig    `json:"console"`
}

// ApplyEnv overrides config values with any ROGUE_* environment variables
// that are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Progress.validate())
	el.Add(c.Tuning.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Console.validate())

	return el.Err()
}
