package game

import (
	"fmt"
	"math"
	"runtime/debug"

	"github.com/pixil98/go-errors"
)

// Item is a single collectible in the world or in an inventory.
//
// An item is either dropped (it has a body, an interaction hook and a shadow)
// or owned (held by exactly one actor, referenced by id). Items are not safe for
// concurrent use; the World serializes access.
type Item struct {
	instanceId EntityId
	env        *Env

	id          string
	name        string
	description string
	promptText  string
	itemType    ItemType
	count       int

	uses     []UseBehavior
	useCheck UseCheck
	useTime  float32
	delay    float32

	used    bool
	touched bool
	unknown bool
	masked  bool

	autoPickup bool
	automatic  bool
	animation  string
	sprite     Size
	renderer   Renderer
	graphic    *Graphic

	// X and Y are the world position used while dropped.
	X, Y float32

	owner   EntityId
	removed bool

	dropped
}

// NewItem creates an ownerless item of definition id. It has no dropped
// components until Drop or AddDroppedComponents is called.
func NewItem(env *Env, id string) (*Item, error) {
	if env == nil || env.Templates == nil {
		return nil, fmt.Errorf("item environment has no templates")
	}
	it, err := env.Templates.Template(id)
	if err != nil {
		return nil, err
	}
	it.instanceId = NewEntityId()
	it.env = env
	it.attachGraphic()
	it.CheckMasked()
	return it, nil
}

// NewBlankItem creates an item with no definition, ready to be filled by Load.
func NewBlankItem(env *Env) *Item {
	return &Item{
		instanceId: NewEntityId(),
		env:        env,
		count:      1,
	}
}

func (i *Item) InstanceId() EntityId { return i.instanceId }
func (i *Item) Id() string           { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Type() ItemType       { return i.itemType }
func (i *Item) Count() int           { return i.count }
func (i *Item) UseTime() float32     { return i.useTime }
func (i *Item) Delay() float32       { return i.delay }
func (i *Item) Used() bool           { return i.used }
func (i *Item) Touched() bool        { return i.touched }
func (i *Item) Unknown() bool        { return i.unknown }
func (i *Item) Masked() bool         { return i.masked }
func (i *Item) AutoPickup() bool     { return i.autoPickup }
func (i *Item) Automatic() bool      { return i.automatic }
func (i *Item) Animation() string    { return i.animation }
func (i *Item) Renderer() Renderer   { return i.renderer }
func (i *Item) Graphic() *Graphic    { return i.graphic }
func (i *Item) UseCheck() UseCheck   { return i.useCheck }
func (i *Item) Env() *Env            { return i.env }

// Owner returns the id of the holding actor, or "" when the item is loose.
func (i *Item) Owner() EntityId { return i.owner }

// Done reports whether the item has been marked for removal.
func (i *Item) Done() bool { return i.removed }

// Uses returns the item's use behaviors in application order.
func (i *Item) Uses() []UseBehavior {
	return append([]UseBehavior(nil), i.uses...)
}

// SetCount sets the stack size, clamped at zero. Reaching zero marks the item
// for removal; this happens at most once.
func (i *Item) SetCount(n int) {
	i.count = max(n, 0)
	if i.count == 0 {
		i.markRemoved("consumed")
	}
}

// SetDelay overrides the current cooldown, clamped at zero.
func (i *Item) SetDelay(d float32) {
	i.delay = max(d, 0)
}

func (i *Item) SetTouched(v bool) {
	i.touched = v
}

// SetUnknown changes whether the item is unidentified and re-evaluates masking.
func (i *Item) SetUnknown(v bool) {
	i.unknown = v
	i.CheckMasked()
}

// LostSupport removes the item regardless of its count, e.g. when the floor
// under it disappears.
func (i *Item) LostSupport() {
	i.markRemoved("lost support")
}

func (i *Item) markRemoved(reason string) {
	if i.removed {
		return
	}
	i.removed = true
	i.env.emit(ItemRemovedEvent{ItemId: i.id, InstanceId: i.instanceId, Reason: reason})
}

// chargeBased items recharge by clearing rooms instead of over time.
func (i *Item) chargeBased() bool {
	return i.itemType == ItemTypeActive && i.useTime < 0
}

// Update advances timers by dt seconds.
func (i *Item) Update(dt float32) {
	if !i.chargeBased() && i.delay > 0 {
		i.delay = max(0, i.delay-dt)
	}
	if i.prompt != nil {
		i.prompt.Remaining -= dt
		if i.prompt.Remaining <= 0 {
			i.prompt = nil
		}
	}
	if i.renderer != nil {
		i.renderer.Update(dt)
	}
}

// OnRoomCleared recharges charge based actives by one charge.
func (i *Item) OnRoomCleared() {
	if i.chargeBased() && i.delay > 0 {
		i.delay = max(0, i.delay-1)
	}
}

// Use applies every use behavior in order on behalf of actor. A failing
// behavior does not stop the others; failures are logged and returned as one
// aggregated error after the use bookkeeping has been applied. Nothing happens
// when the use check refuses.
func (i *Item) Use(actor Actor) error {
	if i.useCheck != nil && !i.useCheck.CanUse(actor, i) {
		return nil
	}

	el := errors.NewErrorList()
	// Behaviors may convert the item; keep iterating the list we started with.
	for n, u := range i.Uses() {
		if err := runUse(u, actor, i); err != nil {
			el.Add(fmt.Errorf("use %d (%T): %w", n, u, err))
		}
	}

	i.delay = float32(math.Abs(float64(i.useTime)))

	ev := ItemUsedEvent{ItemId: i.id, InstanceId: i.instanceId}
	if actor != nil {
		ev.Who = actor.Id()
	}
	owner, hasOwner := i.env.lookup(i.owner)
	if h, ok := owner.(EventHandler); hasOwner && ok {
		h.HandleEvent(ev)
	}
	i.env.emit(ev)

	i.used = true

	if i.renderer != nil {
		i.renderer.OnUse()
	}

	if i.itemType == ItemTypeActive {
		if a, ok := owner.(PickupAnimator); hasOwner && ok {
			a.PlayPickup(i)
		}
	}

	err := el.Err()
	if err != nil {
		i.env.logger().Warn("item use failed", "item", i.id, "instance", i.instanceId, "error", err)
	}
	return err
}

// runUse converts a panicking behavior into an error.
func runUse(u UseBehavior, actor Actor, item *Item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return u.Use(actor, item)
}

// HandleOwnerEvent offers e to each use behavior in order and stops at the
// first one that handles it.
func (i *Item) HandleOwnerEvent(e Event) bool {
	for _, u := range i.Uses() {
		if u.HandleEvent(e) {
			return true
		}
	}
	return false
}

func (i *Item) String() string {
	return fmt.Sprintf("%s[%s]", i.id, i.instanceId.Short())
}
