package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/messaging"
)

type NatsConfig struct {
	Host         string `json:"host" env:"ROGUE_NATS_HOST"`
	Port         int    `json:"port" env:"ROGUE_NATS_PORT"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("nats: parsing start_timeout: %w", err))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats: port %d out of range", n.Port))
	}

	return el.Err()
}

func (c *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	if c.Port != 0 {
		opts = append(opts, messaging.WithPort(c.Port))
	}

	return messaging.NewNatsServer(opts...)
}
