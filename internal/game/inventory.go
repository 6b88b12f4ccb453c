package game

import "slices"

// Inventory holds the items an actor owns, in pickup order.
type Inventory struct {
	owner Actor
	items []*Item
}

// NewInventory creates an empty inventory for owner.
func NewInventory(owner Actor) *Inventory {
	return &Inventory{owner: owner}
}

// Pickup moves item into the inventory. Stackable items merge into an existing
// stack of the same id; the picked up item is then spent.
func (inv *Inventory) Pickup(item *Item) {
	if item.Type().Stackable() {
		if stack := inv.FindById(item.Id()); stack != nil && stack != item {
			item.Pickup(inv.owner)
			stack.SetCount(stack.Count() + item.Count())
			item.SetCount(0)
			return
		}
	}

	item.Pickup(inv.owner)
	if !slices.Contains(inv.items, item) {
		inv.items = append(inv.items, item)
	}
}

// Remove takes item out of the inventory without dropping it.
// Returns false if it wasn't held.
func (inv *Inventory) Remove(item *Item) bool {
	i := slices.Index(inv.items, item)
	if i < 0 {
		return false
	}
	inv.items = slices.Delete(inv.items, i, i+1)
	return true
}

// Drop removes item and places it in the world at x, y.
func (inv *Inventory) Drop(item *Item, x, y float32) bool {
	if !inv.Remove(item) {
		return false
	}
	item.Drop(x, y)
	return true
}

// Items returns a copy of the held items.
func (inv *Inventory) Items() []*Item {
	return slices.Clone(inv.items)
}

// Get returns the held item with the given instance id, or nil.
func (inv *Inventory) Get(instanceId EntityId) *Item {
	for _, it := range inv.items {
		if it.InstanceId() == instanceId {
			return it
		}
	}
	return nil
}

// FindById returns the first held item with definition id, or nil.
func (inv *Inventory) FindById(id string) *Item {
	for _, it := range inv.items {
		if it.Id() == id && !it.Done() {
			return it
		}
	}
	return nil
}

// Contains checks if an item is in the inventory.
func (inv *Inventory) Contains(item *Item) bool {
	return slices.Contains(inv.items, item)
}

// Sweep drops references to items marked for removal.
func (inv *Inventory) Sweep() {
	inv.items = slices.DeleteFunc(inv.items, (*Item).Done)
}

// HandleEvent offers e to each held item in order. The first item that handles
// it wins.
func (inv *Inventory) HandleEvent(e Event) bool {
	for _, it := range slices.Clone(inv.items) {
		if it.HandleOwnerEvent(e) {
			return true
		}
	}
	return false
}
