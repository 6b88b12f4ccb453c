package game

import (
	"slices"

	"github.com/pixil98/go-rogue/internal/display"
)

const (
	TagPersistent = "persistent"
	TagItem       = "item"
)

const defaultPromptTemplate = `{{ .Name }}`

// dropped holds the components an item carries while it lies in the world.
type dropped struct {
	body        BodyId
	interaction *Interaction
	shadow      *Shadow
	tags        []string
	room        *RoomHook
	explodable  *ExplodableHook
	prompt      *PickupPrompt
}

// Interaction is the hook actors use to pick an item up.
type Interaction struct {
	active map[EntityId]bool
}

// Interacting reports whether actor is mid-interaction.
func (in *Interaction) Interacting(id EntityId) bool {
	return in.active[id]
}

type Shadow struct {
	Size Size
}

// RoomHook ties a dropped item to the room it lies in.
type RoomHook struct {
	Room int
}

// ExplodableHook lets explosions push the item around.
type ExplodableHook struct {
	Force float32
}

// PickupPrompt is the transient "press to pick up" text.
type PickupPrompt struct {
	Text      string
	Remaining float32
}

func (i *Item) Body() (BodyId, bool)            { return i.body, i.body != 0 }
func (i *Item) Interaction() *Interaction       { return i.interaction }
func (i *Item) Shadow() *Shadow                 { return i.shadow }
func (i *Item) RoomHook() *RoomHook             { return i.room }
func (i *Item) ExplodableHook() *ExplodableHook { return i.explodable }
func (i *Item) Prompt() *PickupPrompt           { return i.prompt }

// Tags returns a copy of the item's tags.
func (i *Item) Tags() []string {
	return slices.Clone(i.tags)
}

// IsDropped reports whether the item carries its dropped components.
func (i *Item) IsDropped() bool {
	return i.interaction != nil
}

// Bounds is the size of the current graphic.
func (i *Item) Bounds() Size {
	if i.graphic != nil {
		return i.graphic.Size
	}
	return i.sprite
}

// AddDroppedComponents turns the item into a free standing world object.
// Components that are already attached are kept.
func (i *Item) AddDroppedComponents() {
	size := i.Bounds()

	if i.body == 0 && i.env != nil && i.env.Physics != nil {
		i.body = i.env.Physics.AddBody(i.instanceId, Rect{X: i.X, Y: i.Y, W: size.W, H: size.H}, i.env.dropDamping())
	}
	if i.interaction == nil {
		i.interaction = &Interaction{active: map[EntityId]bool{}}
	}
	if i.shadow == nil {
		i.shadow = &Shadow{Size: size}
	}
	for _, tag := range []string{TagPersistent, TagItem} {
		if !slices.Contains(i.tags, tag) {
			i.tags = append(i.tags, tag)
		}
	}
	if i.room == nil {
		i.room = &RoomHook{}
	}
	if i.explodable == nil {
		i.explodable = &ExplodableHook{Force: 1}
	}

	i.CheckMasked()
}

// RemoveDroppedComponents detaches everything AddDroppedComponents attached.
// Missing components are skipped so it is safe to call repeatedly.
func (i *Item) RemoveDroppedComponents() {
	if i.body != 0 {
		if i.env != nil && i.env.Physics != nil {
			i.env.Physics.RemoveBody(i.body)
		}
		i.body = 0
	}
	i.interaction = nil
	i.shadow = nil
	i.tags = slices.DeleteFunc(i.tags, func(t string) bool {
		return t == TagPersistent || t == TagItem
	})
	if len(i.tags) == 0 {
		i.tags = nil
	}
	i.room = nil
	i.explodable = nil
	i.prompt = nil
}

// CanInteract reports whether actor may interact with the item. Masked items
// refuse all interaction.
func (i *Item) CanInteract(Actor) bool {
	return i.interaction != nil && !i.masked
}

// Interact hands the item to actor's inventory. It reports whether the item
// changed hands.
func (i *Item) Interact(actor Actor) bool {
	if !i.CanInteract(actor) {
		return false
	}
	holder, ok := actor.(InventoryHolder)
	if !ok || holder.Inventory() == nil {
		return false
	}
	holder.Inventory().Pickup(i)
	return true
}

// OnInteractionStart runs when actor walks up to the item. Auto pickup items go
// straight into the inventory, except hearts when the actor is already at full
// health. Other loose items show a pickup prompt instead.
func (i *Item) OnInteractionStart(actor Actor) {
	if i.interaction != nil && actor != nil {
		i.interaction.active[actor.Id()] = true
	}

	if i.autoPickup {
		holder, ok := actor.(InventoryHolder)
		if !ok || holder.Inventory() == nil {
			return
		}

		full := false
		if h, ok := actor.(HealthHolder); ok {
			full = h.HasFullHealth()
		}
		if i.itemType != ItemTypeHeart || !full {
			i.Interact(actor)
		}
		i.endInteraction(actor)
		return
	}

	if i.owner == "" {
		i.showPrompt()
	}
}

// OnInteractionEnd clears the interaction state for actor.
func (i *Item) OnInteractionEnd(actor Actor) {
	i.endInteraction(actor)
}

func (i *Item) endInteraction(actor Actor) {
	if i.interaction != nil && actor != nil {
		delete(i.interaction.active, actor.Id())
	}
}

func (i *Item) showPrompt() {
	tmpl := i.promptText
	if tmpl == "" {
		tmpl = defaultPromptTemplate
	}

	text, err := display.ExpandTemplate(tmpl, i.DisplayData())
	if err != nil {
		i.env.logger().Warn("expanding pickup prompt", "item", i.id, "error", err)
		text = i.DisplayName()
	}

	i.prompt = &PickupPrompt{
		Text:      display.Wrap(text),
		Remaining: i.env.promptDuration(),
	}
}

// DisplayName hides the real name of masked items.
func (i *Item) DisplayName() string {
	if i.masked {
		return "???"
	}
	return display.Title(i.name)
}

// DisplayData is the data templates render against.
func (i *Item) DisplayData() map[string]any {
	return map[string]any{
		"Id":     i.id,
		"Name":   i.DisplayName(),
		"Type":   i.itemType.String(),
		"Count":  i.count,
		"Masked": i.masked,
	}
}

// Pickup makes owner the holder of the item. Inventory.Pickup is the usual
// entry point.
func (i *Item) Pickup(owner Actor) {
	i.RemoveDroppedComponents()
	if owner != nil {
		i.owner = owner.Id()
	}
	i.touched = true

	if u, ok := i.env.progression().(Unlocker); ok && !i.unknown {
		if err := u.Unlock(i.id); err != nil {
			i.env.logger().Error("unlocking item", "item", i.id, "error", err)
		}
	}
	i.CheckMasked()

	i.env.emit(ItemPickedUpEvent{ItemId: i.id, InstanceId: i.instanceId, Who: i.owner})
}

// Drop releases the item into the world at x, y.
func (i *Item) Drop(x, y float32) {
	i.owner = ""
	i.X, i.Y = x, y
	i.AddDroppedComponents()
	i.env.emit(ItemDroppedEvent{ItemId: i.id, InstanceId: i.instanceId, X: x, Y: y})
}

// syncPosition copies the body position back onto the item.
func (i *Item) syncPosition() {
	if i.body == 0 || i.env == nil || i.env.Physics == nil {
		return
	}
	if x, y, ok := i.env.Physics.Position(i.body); ok {
		i.X, i.Y = x, y
	}
}
