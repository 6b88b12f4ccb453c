package game

import "github.com/google/uuid"

// EntityId identifies an actor or item in the world table.
type EntityId string

func NewEntityId() EntityId {
	return EntityId(uuid.New().String())
}

// Short is a prefix of the id suitable for display.
func (id EntityId) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Actor is anything that can interact with or use an item. Optional
// capabilities are discovered with type assertions.
type Actor interface {
	Id() EntityId
}

type InventoryHolder interface {
	Inventory() *Inventory
}

type HealthHolder interface {
	HasFullHealth() bool
}

type Healer interface {
	Heal(amount int) int
}

type CoinHolder interface {
	AddCoins(amount int)
}

// PickupAnimator replays the "got item" animation, used when an active item fires.
type PickupAnimator interface {
	PlayPickup(item *Item)
}

type EventHandler interface {
	HandleEvent(e Event) bool
}

// Messenger receives text feedback from items.
type Messenger interface {
	Message(text string)
}

// Creature is the stock actor: a player or monster with health, coins and an
// inventory.
type Creature struct {
	id   EntityId
	Name string

	HP    int
	MaxHP int
	Coins int

	// Pickups counts pickup animation replays.
	Pickups int

	inventory *Inventory
	messages  []string
}

func NewCreature(name string, maxHP int) *Creature {
	c := &Creature{
		id:    NewEntityId(),
		Name:  name,
		HP:    maxHP,
		MaxHP: maxHP,
	}
	c.inventory = NewInventory(c)
	return c
}

func (c *Creature) Id() EntityId          { return c.id }
func (c *Creature) Inventory() *Inventory { return c.inventory }
func (c *Creature) HasFullHealth() bool   { return c.HP >= c.MaxHP }
func (c *Creature) AddCoins(amount int)   { c.Coins += amount }
func (c *Creature) PlayPickup(*Item)      { c.Pickups++ }

// Heal restores up to amount health and returns how much was restored.
func (c *Creature) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := min(amount, c.MaxHP-c.HP)
	c.HP += healed
	return healed
}

// Damage offers the hit to held items first. It returns the damage taken.
func (c *Creature) Damage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if c.HandleEvent(DamagedEvent{Who: c.id, Amount: amount}) {
		return 0
	}
	taken := min(amount, c.HP)
	c.HP -= taken
	return taken
}

// HandleEvent forwards owner events to held items.
func (c *Creature) HandleEvent(e Event) bool {
	return c.inventory.HandleEvent(e)
}

func (c *Creature) Message(text string) {
	c.messages = append(c.messages, text)
}

// DrainMessages returns and clears pending messages.
func (c *Creature) DrainMessages() []string {
	msgs := c.messages
	c.messages = nil
	return msgs
}
