package game

const defaultFlashDuration = 0.2

// Renderer draws an item and reacts to it being used.
type Renderer interface {
	OnUse()
	Update(dt float32)
}

// SpriteRenderer is the default renderer. Using the item flashes the sprite.
type SpriteRenderer struct {
	FlashDuration float32

	flash float32
	uses  int
}

func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{FlashDuration: defaultFlashDuration}
}

func (r *SpriteRenderer) OnUse() {
	r.uses++
	r.flash = r.FlashDuration
}

func (r *SpriteRenderer) Update(dt float32) {
	r.flash = max(0, r.flash-dt)
}

// Flashing reports whether the use flash is still visible.
func (r *SpriteRenderer) Flashing() bool {
	return r.flash > 0
}

// Uses is the number of use notifications received.
func (r *SpriteRenderer) Uses() int {
	return r.uses
}

type spriteRendererFactory struct{}

func (spriteRendererFactory) Create(*ItemDefinition) (Renderer, error) {
	return NewSpriteRenderer(), nil
}

// GraphicKind distinguishes animated from static item graphics.
type GraphicKind int

const (
	GraphicStatic GraphicKind = iota
	GraphicAnimated
)

func (k GraphicKind) String() string {
	if k == GraphicAnimated {
		return "animated"
	}
	return "static"
}

type Size struct {
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// Graphic is the visual representation attached to an item. Bodies are sized
// from it.
type Graphic struct {
	Kind GraphicKind
	Name string
	Size Size
}
