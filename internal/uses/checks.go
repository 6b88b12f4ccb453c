package uses

import "github.com/pixil98/go-rogue/internal/game"

// AlwaysFactory creates a check that never refuses.
type AlwaysFactory struct{}

func (f *AlwaysFactory) ValidateConfig(map[string]any) error { return nil }

func (f *AlwaysFactory) Create(map[string]any) (game.UseCheck, error) {
	return always{}, nil
}

type always struct{}

func (always) CanUse(game.Actor, *game.Item) bool { return true }

// ReadyFactory creates a check that refuses while the item is cooling down.
type ReadyFactory struct{}

func (f *ReadyFactory) ValidateConfig(map[string]any) error { return nil }

func (f *ReadyFactory) Create(map[string]any) (game.UseCheck, error) {
	return ready{}, nil
}

type ready struct{}

func (ready) CanUse(_ game.Actor, item *game.Item) bool {
	return item.Delay() <= 0
}

// NotFullHealthFactory creates a check that refuses when the user cannot be
// healed any further.
type NotFullHealthFactory struct{}

func (f *NotFullHealthFactory) ValidateConfig(map[string]any) error { return nil }

func (f *NotFullHealthFactory) Create(map[string]any) (game.UseCheck, error) {
	return notFullHealth{}, nil
}

type notFullHealth struct{}

func (notFullHealth) CanUse(actor game.Actor, _ *game.Item) bool {
	h, ok := actor.(game.HealthHolder)
	return ok && !h.HasFullHealth()
}
