package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second / 30
)

// Manager is advanced once per tick, in registration order.
type Manager interface {
	Tick(context.Context) error
}

// GameDriver runs the fixed step simulation loop.
type GameDriver struct {
	tickLength time.Duration
	managers   []Manager
	ticks      uint64
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "game driver started", "tick", d.tickLength, "managers", len(d.managers))
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "game driver stopped", "ticks", d.Ticks())
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick advances every manager once. The first failing manager stops the tick.
func (d *GameDriver) Tick(ctx context.Context) error {
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d: manager %d (%T): %w", d.ticks, i, m, err)
		}
	}
	d.ticks++
	return nil
}

// Ticks is the number of completed ticks.
func (d *GameDriver) Ticks() uint64 {
	return d.ticks
}
