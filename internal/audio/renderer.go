package audio

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/game"
)

const ExtSound = "sound"

// CueRenderer is a sprite renderer that also plays a sound cue on use.
type CueRenderer struct {
	*game.SpriteRenderer
	bus *Bus
	cue Cue
}

func (r *CueRenderer) OnUse() {
	r.SpriteRenderer.OnUse()
	r.bus.Play(r.cue)
}

func (r *CueRenderer) Cue() Cue { return r.cue }

// RendererFactory builds CueRenderers from the definition's ext.sound cue.
type RendererFactory struct {
	bus *Bus
}

func NewRendererFactory(bus *Bus) *RendererFactory {
	return &RendererFactory{bus: bus}
}

func (f *RendererFactory) Create(def *game.ItemDefinition) (game.Renderer, error) {
	if !def.Has(ExtSound) {
		return nil, fmt.Errorf("sound renderer needs an ext.%s cue", ExtSound)
	}
	var cue Cue
	if _, err := def.Get(ExtSound, &cue); err != nil {
		return nil, fmt.Errorf("reading sound cue: %w", err)
	}
	if err := cue.Validate(); err != nil {
		return nil, err
	}
	return &CueRenderer{SpriteRenderer: game.NewSpriteRenderer(), bus: f.bus, cue: cue}, nil
}
