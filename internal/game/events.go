package game

// Event is anything the item system announces. Events are plain values so they
// can be published outside the process.
type Event interface {
	Name() string
}

type ItemUsedEvent struct {
	ItemId     string   `json:"item_id"`
	InstanceId EntityId `json:"instance_id"`
	Who        EntityId `json:"who"`
}

func (ItemUsedEvent) Name() string { return "item.used" }

type ItemPickedUpEvent struct {
	ItemId     string   `json:"item_id"`
	InstanceId EntityId `json:"instance_id"`
	Who        EntityId `json:"who"`
}

func (ItemPickedUpEvent) Name() string { return "item.picked_up" }

type ItemDroppedEvent struct {
	ItemId     string   `json:"item_id"`
	InstanceId EntityId `json:"instance_id"`
	X          float32  `json:"x"`
	Y          float32  `json:"y"`
}

func (ItemDroppedEvent) Name() string { return "item.dropped" }

type ItemConvertedEvent struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	InstanceId EntityId `json:"instance_id"`
}

func (ItemConvertedEvent) Name() string { return "item.converted" }

type ItemRemovedEvent struct {
	ItemId     string   `json:"item_id"`
	InstanceId EntityId `json:"instance_id"`
	Reason     string   `json:"reason"`
}

func (ItemRemovedEvent) Name() string { return "item.removed" }

// DamagedEvent is raised on an actor before damage is applied. Handlers that
// report it handled cancel the damage.
type DamagedEvent struct {
	Who    EntityId `json:"who"`
	Amount int      `json:"amount"`
}

func (DamagedEvent) Name() string { return "actor.damaged" }

type RoomClearedEvent struct {
	Room int `json:"room"`
}

func (RoomClearedEvent) Name() string { return "room.cleared" }

// EventSinks fans an event out to several sinks.
type EventSinks []EventSink

func (s EventSinks) Emit(e Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Emit(e)
		}
	}
}
