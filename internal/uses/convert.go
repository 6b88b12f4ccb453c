package uses

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/storage"
)

// ConvertFactory creates behaviors that turn the item into another kind, such
// as a wand that burns out into a stick.
// Config:
//   - to (required): id of the item definition to become
type ConvertFactory struct {
	defs storage.Storer[*game.ItemDefinition]
}

func NewConvertFactory(defs storage.Storer[*game.ItemDefinition]) *ConvertFactory {
	return &ConvertFactory{defs: defs}
}

func (f *ConvertFactory) ValidateConfig(config map[string]any) error {
	_, err := requiredString(config, "to")
	return err
}

func (f *ConvertFactory) Create(config map[string]any) (game.UseBehavior, error) {
	to, err := requiredString(config, "to")
	if err != nil {
		return nil, err
	}
	target := storage.NewSmartIdentifier[*game.ItemDefinition](to)
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if f.defs != nil {
		if err := target.Resolve(f.defs); err != nil {
			return nil, fmt.Errorf("resolving convert target: %w", err)
		}
	}
	return &convert{to: target}, nil
}

type convert struct {
	noEvents
	to storage.SmartIdentifier[*game.ItemDefinition]
}

func (c *convert) Use(_ game.Actor, item *game.Item) error {
	return item.ConvertTo(c.to.Key())
}
