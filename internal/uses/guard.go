package uses

import (
	"github.com/pixil98/go-rogue/internal/game"
)

// GuardFactory creates shields that block hits taken by the item's owner.
// Using the item restores its charges.
// Config:
//   - charges (optional, default 1): hits blocked before it needs a recharge
type GuardFactory struct{}

func (f *GuardFactory) ValidateConfig(config map[string]any) error {
	_, err := positiveInt(config, "charges", 1)
	return err
}

func (f *GuardFactory) Create(config map[string]any) (game.UseBehavior, error) {
	charges, err := positiveInt(config, "charges", 1)
	if err != nil {
		return nil, err
	}
	return &Guard{max: charges, charges: charges}, nil
}

// Guard is exported so callers can inspect the remaining charges.
type Guard struct {
	max     int
	charges int
}

func (g *Guard) Charges() int { return g.charges }

func (g *Guard) Use(game.Actor, *game.Item) error {
	g.charges = g.max
	return nil
}

func (g *Guard) HandleEvent(e game.Event) bool {
	if _, ok := e.(game.DamagedEvent); !ok || g.charges == 0 {
		return false
	}
	g.charges--
	return true
}
