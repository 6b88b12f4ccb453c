package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/storage"
)

// ItemDefinition describes an item kind loaded from asset files. Ids follow the
// convention <namespace>:<name> (e.g., "bk:sword").
type ItemDefinition struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        ItemType `json:"type"`

	// UseTime is the cooldown after use in seconds. Negative values on active
	// items count charges (rooms cleared) instead of seconds.
	UseTime   float32 `json:"use_time,omitempty"`
	Animation string  `json:"animation,omitempty"`
	Sprite    Size    `json:"sprite"`
	Count     int     `json:"count,omitempty"`

	AutoPickup bool `json:"auto_pickup,omitempty"`
	Automatic  bool `json:"automatic,omitempty"`
	// Unknown items spawn unidentified.
	Unknown bool `json:"unknown,omitempty"`

	// Prompt is a text/template shown when an actor walks up to the item.
	Prompt string `json:"prompt,omitempty"`

	Uses     []UseSpec    `json:"uses,omitempty"`
	Check    *UseSpec     `json:"check,omitempty"`
	Renderer RendererSpec `json:"renderer,omitempty"`

	storage.ExtensionState `json:"ext,omitempty"`
}

// UseSpec names a registered factory and its configuration.
type UseSpec struct {
	Handler string         `json:"handler"`
	Config  map[string]any `json:"config,omitempty"`
}

type RendererSpec struct {
	Kind string `json:"kind,omitempty"`
}

// Selector satisfies storage.SelectableStorer
func (d *ItemDefinition) Selector() string {
	return d.Name
}

// Validate satisfies storage.ValidatingSpec
func (d *ItemDefinition) Validate() error {
	el := errors.NewErrorList()
	if d.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if d.Count < 0 {
		el.Add(fmt.Errorf("item count must not be negative"))
	}
	if d.Sprite.W < 0 || d.Sprite.H < 0 {
		el.Add(fmt.Errorf("item sprite size must not be negative"))
	}
	for i, u := range d.Uses {
		if u.Handler == "" {
			el.Add(fmt.Errorf("use %d: handler is required", i))
		}
	}
	if d.Check != nil && d.Check.Handler == "" {
		el.Add(fmt.Errorf("check: handler is required"))
	}
	return el.Err()
}

func (d *ItemDefinition) spriteSize() Size {
	s := d.Sprite
	if s.W == 0 {
		s.W = DefaultSpriteSize
	}
	if s.H == 0 {
		s.H = DefaultSpriteSize
	}
	return s
}
