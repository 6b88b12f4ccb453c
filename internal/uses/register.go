package uses

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/storage"
)

// Register adds every stock use behavior and use check to the catalog. defs
// resolves convert targets.
func Register(c *game.Catalog, defs storage.Storer[*game.ItemDefinition]) error {
	el := errors.NewErrorList()

	uses := map[string]game.UseFactory{
		"heal":    &HealFactory{},
		"coins":   &CoinsFactory{},
		"consume": &ConsumeFactory{},
		"convert": NewConvertFactory(defs),
		"message": &MessageFactory{},
		"guard":   &GuardFactory{},
	}
	for name, f := range uses {
		if err := c.RegisterUse(name, f); err != nil {
			el.Add(fmt.Errorf("registering use %s: %w", name, err))
		}
	}

	checks := map[string]game.CheckFactory{
		"always":          &AlwaysFactory{},
		"ready":           &ReadyFactory{},
		"not_full_health": &NotFullHealthFactory{},
	}
	for name, f := range checks {
		if err := c.RegisterCheck(name, f); err != nil {
			el.Add(fmt.Errorf("registering check %s: %w", name, err))
		}
	}

	return el.Err()
}

// noEvents is embedded by behaviors that never react to owner events.
type noEvents struct{}

func (noEvents) HandleEvent(game.Event) bool { return false }
