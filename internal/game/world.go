package game

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/pixil98/go-rogue/internal/fileio"
)

const DefaultStep = float32(1.0 / 30)

// DepthSetter is implemented by progressions that can restore a saved depth.
type DepthSetter interface {
	SetDepth(depth int) error
}

// World is the table of every actor and live item. It serializes all item
// operations and implements EntityLookup for the items it holds.
type World struct {
	mu  sync.Mutex
	env *Env

	actorsMu sync.RWMutex
	actors   map[EntityId]Actor

	items []*Item
	step  float32
	room  int
}

// NewWorld creates an empty world. The world becomes the entity lookup of env.
func NewWorld(env *Env, opts ...WorldOpt) *World {
	if env == nil {
		env = &Env{}
	}
	w := &World{
		env:    env,
		actors: make(map[EntityId]Actor),
		step:   DefaultStep,
	}
	env.Entities = w

	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Env() *Env { return w.env }

// Lookup satisfies EntityLookup.
func (w *World) Lookup(id EntityId) (Actor, bool) {
	w.actorsMu.RLock()
	defer w.actorsMu.RUnlock()
	a, ok := w.actors[id]
	return a, ok
}

func (w *World) AddActor(a Actor) error {
	w.actorsMu.Lock()
	defer w.actorsMu.Unlock()
	if _, exists := w.actors[a.Id()]; exists {
		return fmt.Errorf("%w: %s", ErrActorExists, a.Id())
	}
	w.actors[a.Id()] = a
	return nil
}

// RemoveActor forgets the actor. Items it held keep their owner id but no
// longer resolve.
func (w *World) RemoveActor(id EntityId) {
	w.actorsMu.Lock()
	defer w.actorsMu.Unlock()
	delete(w.actors, id)
}

// Actors returns every actor in the world.
func (w *World) Actors() []Actor {
	w.actorsMu.RLock()
	defer w.actorsMu.RUnlock()
	out := make([]Actor, 0, len(w.actors))
	for _, a := range w.actors {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Actor) int {
		return compareIds(a.Id(), b.Id())
	})
	return out
}

func compareIds(a, b EntityId) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Items returns every live item in spawn order.
func (w *World) Items() []*Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.items)
}

// Inspect calls fn with the live items while holding the world lock, so the
// items and their holders can be read without racing the tick. fn must not
// call back into the World.
func (w *World) Inspect(fn func(items []*Item)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.items)
}

// Item returns the live item with the instance id.
func (w *World) Item(instanceId EntityId) (*Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.item(instanceId)
}

func (w *World) item(instanceId EntityId) (*Item, error) {
	for _, it := range w.items {
		if it.InstanceId() == instanceId {
			return it, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrItemNotFound, instanceId)
}

func (w *World) actor(id EntityId) (Actor, error) {
	a, ok := w.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActor, id)
	}
	return a, nil
}

// SpawnItem creates an item of kind id lying at x, y.
func (w *World) SpawnItem(id string, x, y float32) (*Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, err := NewItem(w.env, id)
	if err != nil {
		return nil, fmt.Errorf("spawning item: %w", err)
	}
	it.Drop(x, y)
	w.items = append(w.items, it)
	w.env.logger().Debug("item spawned", "item", it.Id(), "instance", it.InstanceId(), "x", x, "y", y)
	return it, nil
}

// GiveItem creates an item of kind id directly in the actor's inventory.
func (w *World) GiveItem(actorId EntityId, id string) (*Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	inv, actor, err := w.inventory(actorId)
	if err != nil {
		return nil, err
	}
	it, err := NewItem(w.env, id)
	if err != nil {
		return nil, fmt.Errorf("giving item: %w", err)
	}
	w.items = append(w.items, it)
	inv.Pickup(it)
	w.env.logger().Debug("item given", "item", it.Id(), "who", actor.Id())
	return it, nil
}

func (w *World) inventory(actorId EntityId) (*Inventory, Actor, error) {
	actor, err := w.actor(actorId)
	if err != nil {
		return nil, nil, err
	}
	holder, ok := actor.(InventoryHolder)
	if !ok || holder.Inventory() == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoInventory, actorId)
	}
	return holder.Inventory(), actor, nil
}

// Touch starts an interaction between the actor and a dropped item.
func (w *World) Touch(actorId, instanceId EntityId) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	actor, err := w.actor(actorId)
	if err != nil {
		return err
	}
	it, err := w.item(instanceId)
	if err != nil {
		return err
	}
	it.OnInteractionStart(actor)
	return nil
}

// Interact completes an interaction, moving the item into the actor's
// inventory.
func (w *World) Interact(actorId, instanceId EntityId) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	actor, err := w.actor(actorId)
	if err != nil {
		return err
	}
	it, err := w.item(instanceId)
	if err != nil {
		return err
	}
	if !it.CanInteract(actor) {
		return fmt.Errorf("%w: %s", ErrInteractBlock, it)
	}
	if !it.Interact(actor) {
		return fmt.Errorf("%w: %s", ErrNoInventory, actorId)
	}
	it.OnInteractionEnd(actor)
	return nil
}

func (w *World) owned(actorId, instanceId EntityId) (Actor, *Item, error) {
	actor, err := w.actor(actorId)
	if err != nil {
		return nil, nil, err
	}
	it, err := w.item(instanceId)
	if err != nil {
		return nil, nil, err
	}
	if it.Owner() != actorId {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotOwner, it)
	}
	return actor, it, nil
}

// UseItem uses an item the actor holds.
func (w *World) UseItem(actorId, instanceId EntityId) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	actor, it, err := w.owned(actorId, instanceId)
	if err != nil {
		return err
	}
	return it.Use(actor)
}

// DropItem moves an item from the actor's inventory into the world at x, y.
func (w *World) DropItem(actorId, instanceId EntityId, x, y float32) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	actor, it, err := w.owned(actorId, instanceId)
	if err != nil {
		return err
	}
	holder, ok := actor.(InventoryHolder)
	if !ok || !holder.Inventory().Drop(it, x, y) {
		it.Drop(x, y)
	}
	return nil
}

// ConvertItem turns an item into another kind.
func (w *World) ConvertItem(instanceId EntityId, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, err := w.item(instanceId)
	if err != nil {
		return err
	}
	return it.ConvertTo(id)
}

// LoseSupport removes a dropped item whose floor went away.
func (w *World) LoseSupport(instanceId EntityId) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, err := w.item(instanceId)
	if err != nil {
		return err
	}
	it.LostSupport()
	return nil
}

// Damage hurts an actor. Held items get a chance to absorb the hit first.
// Returns the damage taken.
func (w *World) Damage(actorId EntityId, amount int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	actor, err := w.actor(actorId)
	if err != nil {
		return 0, err
	}
	d, ok := actor.(interface{ Damage(amount int) int })
	if !ok {
		return 0, fmt.Errorf("actor %s cannot be damaged", actorId)
	}
	return d.Damage(amount), nil
}

// SetDepth moves the run to depth and rechecks the masking of every item.
func (w *World) SetDepth(depth int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ds, ok := w.env.progression().(DepthSetter)
	if !ok {
		return fmt.Errorf("progression cannot change depth")
	}
	if err := ds.SetDepth(depth); err != nil {
		return fmt.Errorf("setting depth: %w", err)
	}
	for _, it := range w.items {
		it.CheckMasked()
	}
	return nil
}

// ClearRoom recharges charge based items and announces the clear.
func (w *World) ClearRoom() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.room++
	for _, it := range w.items {
		it.OnRoomCleared()
	}
	w.env.emit(RoomClearedEvent{Room: w.room})
	return w.room
}

// Explode pushes every dropped item within radius of x, y away from the
// center. Returns the number of items pushed.
func (w *World) Explode(x, y, radius, force float32) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.env.Physics == nil {
		return 0
	}
	pushed := 0
	for _, it := range w.items {
		body, ok := it.Body()
		if !ok || it.ExplodableHook() == nil {
			continue
		}
		dx, dy := it.X-x, it.Y-y
		dist := float32(math.Hypot(float64(dx), float64(dy)))
		if dist > radius {
			continue
		}
		if dist == 0 {
			dx, dy, dist = 0, -1, 1
		}
		f := force * it.ExplodableHook().Force
		w.env.Physics.Push(body, dx/dist*f, dy/dist*f)
		pushed++
	}
	return pushed
}

// Tick advances every item by one step and sweeps removed items.
func (w *World) Tick(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, it := range w.items {
		it.Update(w.step)
		it.syncPosition()
	}
	w.sweep(ctx)
	return nil
}

func (w *World) sweep(ctx context.Context) {
	holders := map[EntityId]bool{}
	w.items = slices.DeleteFunc(w.items, func(it *Item) bool {
		if !it.Done() {
			return false
		}
		it.RemoveDroppedComponents()
		if it.Owner() != "" {
			holders[it.Owner()] = true
		}
		w.env.logger().DebugContext(ctx, "item removed", "item", it.Id(), "instance", it.InstanceId())
		return true
	})
	for id := range holders {
		if a, ok := w.Lookup(id); ok {
			if h, ok := a.(InventoryHolder); ok && h.Inventory() != nil {
				h.Inventory().Sweep()
			}
		}
	}
}

// Save writes every dropped item to a save file at path. Held items travel
// with their holders and are not part of the world save.
func (w *World) Save(ctx context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var records []*Item
	for _, it := range w.items {
		if it.IsDropped() && !it.Done() {
			records = append(records, it)
		}
	}

	hdr := fileio.Header{Version: fileio.SaveVersion, Depth: w.env.depth(), Records: len(records)}
	err := fileio.WriteSave(path, hdr, func(fw *fileio.Writer) error {
		for n, it := range records {
			if err := it.Save(fw); err != nil {
				return fmt.Errorf("record %d: %w", n, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving world: %w", err)
	}

	w.env.logger().InfoContext(ctx, "world saved", "path", path, "items", len(records))
	return nil
}

// Load replaces the dropped items with the ones stored at path. The world is
// unchanged when any record fails to load.
func (w *World) Load(ctx context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var loaded []*Item
	var depth int
	err := fileio.ReadSave(path, func(hdr fileio.Header, fr *fileio.Reader) error {
		depth = hdr.Depth
		for n := range hdr.Records {
			it := NewBlankItem(w.env)
			if err := it.Load(fr); err != nil {
				return fmt.Errorf("record %d: %w", n, err)
			}
			loaded = append(loaded, it)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}

	if ds, ok := w.env.progression().(DepthSetter); ok {
		if err := ds.SetDepth(depth); err != nil {
			return fmt.Errorf("restoring depth: %w", err)
		}
	}

	w.items = slices.DeleteFunc(w.items, func(it *Item) bool {
		if it.IsDropped() {
			it.RemoveDroppedComponents()
			return true
		}
		return false
	})
	for _, it := range loaded {
		it.AddDroppedComponents()
		w.items = append(w.items, it)
	}
	// Held items were masked at the depth before the load.
	for _, it := range w.items {
		it.CheckMasked()
	}

	w.env.logger().InfoContext(ctx, "world loaded", "path", path, "items", len(loaded), "depth", depth)
	return nil
}
