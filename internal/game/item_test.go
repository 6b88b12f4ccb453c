package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestItem_SetCount(t *testing.T) {
	tests := map[string]struct {
		sets       []int
		expCount   int
		expDone    bool
		expRemoved int
	}{
		"positive keeps item": {
			sets:     []int{5},
			expCount: 5,
		},
		"zero removes": {
			sets:       []int{0},
			expDone:    true,
			expRemoved: 1,
		},
		"negative clamps to zero": {
			sets:       []int{-3},
			expDone:    true,
			expRemoved: 1,
		},
		"removed only once": {
			sets:       []int{0, 0, -1},
			expDone:    true,
			expRemoved: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te := newTestEnv(1)
			it := te.item("bk:bomb")

			for _, n := range tt.sets {
				it.SetCount(n)
			}

			testutil.AssertEqual(t, "count", it.Count(), tt.expCount)
			testutil.AssertEqual(t, "done", it.Done(), tt.expDone)
			testutil.AssertEqual(t, "removed events", te.sink.count("item.removed"), tt.expRemoved)
		})
	}
}

func TestItem_ConvertTo(t *testing.T) {
	te := newTestEnv(1)
	it := te.item("bk:sword")
	it.Drop(3, 4)
	it.used = true
	oldBody, _ := it.Body()

	err := it.ConvertTo("bk:lamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tmpl, err := te.env.Templates.Template("bk:lamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "id", it.Id(), tmpl.Id())
	testutil.AssertEqual(t, "type", it.Type(), tmpl.Type())
	testutil.AssertEqual(t, "animation", it.Animation(), tmpl.Animation())
	testutil.AssertEqual(t, "uses", len(it.Uses()), len(tmpl.Uses()))
	testutil.AssertEqual(t, "use time", it.UseTime(), tmpl.UseTime())
	testutil.AssertEqual(t, "used", it.Used(), false)
	testutil.AssertEqual(t, "graphic kind", it.Graphic().Kind, GraphicAnimated)
	testutil.AssertEqual(t, "graphic name", it.Graphic().Name, "lamp_glow")

	newBody, hasBody := it.Body()
	testutil.AssertEqual(t, "has body", hasBody, true)
	testutil.AssertEqual(t, "body replaced", newBody != oldBody, true)
	testutil.AssertEqual(t, "old body removed", len(te.physics.removed), 1)
	testutil.AssertEqual(t, "position kept", it.X, float32(3))
	testutil.AssertEqual(t, "converted events", te.sink.count("item.converted"), 1)
}

func TestItem_ConvertTo_OwnedKeepsNoBody(t *testing.T) {
	te := newTestEnv(1)
	it := te.item("bk:sword")

	if err := it.ConvertTo("bk:potion"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, hasBody := it.Body()
	testutil.AssertEqual(t, "has body", hasBody, false)
	testutil.AssertEqual(t, "graphic kind", it.Graphic().Kind, GraphicStatic)
	testutil.AssertEqual(t, "graphic name", it.Graphic().Name, "bk:potion")
}

func TestItem_ConvertTo_UnknownId(t *testing.T) {
	te := newTestEnv(1)
	it := te.item("bk:sword")
	it.Drop(1, 2)
	it.used = true
	it.delay = 0.3
	marker := &recordingUse{name: "marker"}
	it.uses = []UseBehavior{marker}
	body, _ := it.Body()
	graphic := it.Graphic()

	err := it.ConvertTo("bk:nothing")
	testutil.AssertErrorContains(t, err, "unknown item")
	if !errors.Is(err, ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}

	testutil.AssertEqual(t, "id", it.Id(), "bk:sword")
	testutil.AssertEqual(t, "type", it.Type(), ItemTypeWeapon)
	testutil.AssertEqual(t, "used", it.Used(), true)
	testutil.AssertEqual(t, "delay", it.Delay(), float32(0.3))
	testutil.AssertEqual(t, "uses", len(it.Uses()), 1)
	testutil.AssertEqual(t, "graphic", it.Graphic(), graphic)
	gotBody, _ := it.Body()
	testutil.AssertEqual(t, "body", gotBody, body)
	testutil.AssertEqual(t, "bodies removed", len(te.physics.removed), 0)
	testutil.AssertEqual(t, "error logs", strings.Count(te.logs.String(), "level=ERROR"), 1)
	testutil.AssertEqual(t, "converted events", te.sink.count("item.converted"), 0)
}

func TestItem_CheckMasked(t *testing.T) {
	tests := map[string]struct {
		id       string
		depth    int
		unlocked []string
		unknown  bool
		exp      bool
	}{
		"unknown is masked in the dungeon": {
			id:      "bk:potion",
			depth:   3,
			unknown: true,
			exp:     true,
		},
		"unknown is masked even when unlocked": {
			id:       "bk:potion",
			unlocked: []string{"bk:potion"},
			unknown:  true,
			exp:      true,
		},
		"unknown starter item is masked": {
			id:      "bk:sword",
			unknown: true,
			exp:     true,
		},
		"known item in the dungeon is never masked": {
			id:    "bk:potion",
			depth: 1,
			exp:   false,
		},
		"locked item in the hub is masked": {
			id:  "bk:potion",
			exp: true,
		},
		"unlocked item in the hub is visible": {
			id:       "bk:potion",
			unlocked: []string{"bk:potion"},
			exp:      false,
		},
		"starter item in the hub is visible": {
			id:  "bk:sword",
			exp: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te := newTestEnv(tt.depth, tt.unlocked...)
			it := te.item("bk:sword")
			if err := it.ConvertTo(tt.id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			it.SetUnknown(tt.unknown)

			testutil.AssertEqual(t, "masked", it.Masked(), tt.exp)
		})
	}
}

func TestItem_CheckMasked_FollowsProgression(t *testing.T) {
	te := newTestEnv(0)
	it := te.item("bk:potion")
	testutil.AssertEqual(t, "masked in hub", it.Masked(), true)

	te.progress.depth = 2
	it.CheckMasked()
	testutil.AssertEqual(t, "masked in dungeon", it.Masked(), false)

	te.progress.depth = 0
	te.progress.unlocked["bk:potion"] = true
	it.CheckMasked()
	testutil.AssertEqual(t, "masked once unlocked", it.Masked(), false)
}

func TestUnlocked_StarterItems(t *testing.T) {
	tests := map[string]struct {
		progression Progression
	}{
		"no progression":      {progression: nil},
		"empty progression":   {progression: newStubProgression(0)},
		"dungeon progression": {progression: newStubProgression(4)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"bk:sword", "bk:lamp", "bk:missile_wand", "bk:gun"} {
				testutil.AssertEqual(t, id, Unlocked(tt.progression, id), true)
			}
			testutil.AssertEqual(t, "bk:potion", Unlocked(tt.progression, "bk:potion"), false)
		})
	}
}

func TestItem_RemoveDroppedComponentsTwice(t *testing.T) {
	te := newTestEnv(1)
	it := te.item("bk:sword")
	it.Drop(0, 0)

	it.RemoveDroppedComponents()
	first := it.dropped
	it.RemoveDroppedComponents()

	testutil.AssertEqual(t, "dropped", it.IsDropped(), false)
	testutil.AssertEqual(t, "bodies removed", len(te.physics.removed), 1)
	testutil.AssertEqual(t, "shadow", it.Shadow() == nil, true)
	testutil.AssertEqual(t, "tags", len(it.Tags()), 0)
	testutil.AssertEqual(t, "body", it.dropped.body, first.body)
	testutil.AssertEqual(t, "interaction", it.dropped.interaction == first.interaction, true)
	testutil.AssertEqual(t, "room", it.dropped.room == first.room, true)
	testutil.AssertEqual(t, "explodable", it.dropped.explodable == first.explodable, true)
	testutil.AssertEqual(t, "prompt", it.dropped.prompt == first.prompt, true)
}

func TestItem_AddDroppedComponents(t *testing.T) {
	te := newTestEnv(1)
	te.env.DropDamping = 6
	it := te.item("bk:heart")
	it.X, it.Y = 10, 20

	it.AddDroppedComponents()
	it.AddDroppedComponents()

	body, ok := it.Body()
	testutil.AssertEqual(t, "has body", ok, true)
	testutil.AssertEqual(t, "bodies", len(te.physics.bodies), 1)
	b := te.physics.bodies[body]
	testutil.AssertEqual(t, "rect", b.rect, Rect{X: 10, Y: 20, W: 8, H: 8})
	testutil.AssertEqual(t, "damping", b.damping, float32(6))
	testutil.AssertEqual(t, "owner", b.owner, it.InstanceId())
	testutil.AssertEqual(t, "tags", strings.Join(it.Tags(), ","), "persistent,item")
	testutil.AssertEqual(t, "shadow", it.Shadow().Size, Size{W: 8, H: 8})
	testutil.AssertEqual(t, "room hook", it.RoomHook() != nil, true)
	testutil.AssertEqual(t, "explodable", it.ExplodableHook() != nil, true)
}

func TestItem_DefaultDropDamping(t *testing.T) {
	te := newTestEnv(1)
	it := te.item("bk:sword")
	it.Drop(0, 0)

	body, _ := it.Body()
	testutil.AssertEqual(t, "damping", te.physics.bodies[body].damping, float32(DefaultDropDamping))
	testutil.AssertEqual(t, "size", te.physics.bodies[body].rect.W, float32(DefaultSpriteSize))
}

func TestItem_Use(t *testing.T) {
	tests := map[string]struct {
		uses      func(calls *[]string) []UseBehavior
		expCalls  []string
		expErr    string
		expWarned bool
	}{
		"all behaviors run in order": {
			uses: func(calls *[]string) []UseBehavior {
				return []UseBehavior{
					&recordingUse{calls: calls, name: "a"},
					&recordingUse{calls: calls, name: "b"},
				}
			},
			expCalls: []string{"a", "b"},
		},
		"failing behavior does not stop the rest": {
			uses: func(calls *[]string) []UseBehavior {
				return []UseBehavior{
					&recordingUse{calls: calls, name: "a", err: errors.New("no target")},
					&recordingUse{calls: calls, name: "b"},
				}
			},
			expCalls:  []string{"a", "b"},
			expErr:    "no target",
			expWarned: true,
		},
		"panicking behavior is captured": {
			uses: func(calls *[]string) []UseBehavior {
				return []UseBehavior{
					&recordingUse{calls: calls, name: "a", panics: true},
					&recordingUse{calls: calls, name: "b"},
				}
			},
			expCalls:  []string{"a", "b"},
			expErr:    "panic: boom",
			expWarned: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te := newTestEnv(1)
			owner := te.creature("hero", 10)
			it := te.item("bk:potion")
			owner.Inventory().Pickup(it)

			var calls []string
			it.uses = tt.uses(&calls)

			err := it.Use(owner)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "calls", strings.Join(calls, ","), strings.Join(tt.expCalls, ","))
			testutil.AssertEqual(t, "delay", it.Delay(), float32(3))
			testutil.AssertEqual(t, "used", it.Used(), true)
			testutil.AssertEqual(t, "used events", te.sink.count("item.used"), 1)
			testutil.AssertEqual(t, "flashes", it.Renderer().(*SpriteRenderer).Uses(), 1)
			testutil.AssertEqual(t, "warned", strings.Contains(te.logs.String(), "item use failed"), tt.expWarned)
		})
	}
}

func TestItem_Use_CheckRefuses(t *testing.T) {
	te := newTestEnv(1)
	owner := te.creature("hero", 10)
	it := te.item("bk:potion")
	owner.Inventory().Pickup(it)

	var calls []string
	it.uses = []UseBehavior{&recordingUse{calls: &calls, name: "a"}}
	it.useCheck = stubCheck(false)

	if err := it.Use(owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "calls", len(calls), 0)
	testutil.AssertEqual(t, "delay", it.Delay(), float32(0))
	testutil.AssertEqual(t, "used", it.Used(), false)
	testutil.AssertEqual(t, "used events", te.sink.count("item.used"), 0)
}

func TestItem_Use_ActiveReplaysPickup(t *testing.T) {
	te := newTestEnv(1)
	owner := te.creature("hero", 10)
	lamp := te.item("bk:lamp")
	sword := te.item("bk:sword")
	owner.Inventory().Pickup(lamp)
	owner.Inventory().Pickup(sword)

	_ = lamp.Use(owner)
	_ = sword.Use(owner)

	testutil.AssertEqual(t, "pickups", owner.Pickups, 1)
	testutil.AssertEqual(t, "lamp delay", lamp.Delay(), float32(2))
}

// handlingOwner records events forwarded to the owner
type handlingOwner struct {
	*Creature
	events []Event
}

func (o *handlingOwner) HandleEvent(e Event) bool {
	o.events = append(o.events, e)
	return false
}

func TestItem_Use_NotifiesOwner(t *testing.T) {
	te := newTestEnv(1)
	owner := &handlingOwner{Creature: NewCreature("hero", 5)}
	te.entities[owner.Id()] = owner
	it := te.item("bk:sword")
	it.Pickup(owner)

	_ = it.Use(owner)

	testutil.AssertEqual(t, "owner events", len(owner.events), 1)
	testutil.AssertEqual(t, "event", owner.events[0].Name(), "item.used")
	testutil.AssertEqual(t, "who", owner.events[0].(ItemUsedEvent).Who, owner.Id())
}

func TestItem_HandleOwnerEvent(t *testing.T) {
	tests := map[string]struct {
		handles []bool
		exp     bool
		expSeen []int
	}{
		"no behaviors": {
			exp: false,
		},
		"none handle": {
			handles: []bool{false, false},
			exp:     false,
			expSeen: []int{1, 1},
		},
		"first handled wins": {
			handles: []bool{false, true, true},
			exp:     true,
			expSeen: []int{1, 1, 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te := newTestEnv(1)
			it := te.item("bk:sword")
			var uses []*recordingUse
			it.uses = nil
			for _, h := range tt.handles {
				u := &recordingUse{handles: h}
				uses = append(uses, u)
				it.uses = append(it.uses, u)
			}

			testutil.AssertEqual(t, "handled", it.HandleOwnerEvent(DamagedEvent{Amount: 1}), tt.exp)
			for n, u := range uses {
				testutil.AssertEqual(t, "seen", u.seen, tt.expSeen[n])
			}
		})
	}
}

func TestItem_OnInteractionStart(t *testing.T) {
	tests := map[string]struct {
		id          string
		hp          int
		expPickedUp bool
		expPrompt   string
	}{
		"heart at full health stays": {
			id:          "bk:heart",
			hp:          10,
			expPickedUp: false,
		},
		"heart when hurt is picked up": {
			id:          "bk:heart",
			hp:          4,
			expPickedUp: true,
		},
		"coin at full health is picked up": {
			id:          "bk:coin",
			hp:          10,
			expPickedUp: true,
		},
		"manual item shows prompt": {
			id:        "bk:potion",
			hp:        10,
			expPrompt: "Drink Red Potion?",
		},
		"manual item default prompt": {
			id:        "bk:sword",
			hp:        10,
			expPrompt: "Sword",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te := newTestEnv(1)
			hero := te.creature("hero", 10)
			hero.HP = tt.hp
			it := te.item(tt.id)
			it.Drop(0, 0)

			it.OnInteractionStart(hero)

			testutil.AssertEqual(t, "picked up", hero.Inventory().Contains(it), tt.expPickedUp)
			testutil.AssertEqual(t, "interacting", it.IsDropped() && it.Interaction().Interacting(hero.Id()), tt.expPrompt != "")
			if tt.expPrompt == "" {
				testutil.AssertEqual(t, "prompt", it.Prompt() == nil, true)
				return
			}
			testutil.AssertEqual(t, "prompt", it.Prompt().Text, tt.expPrompt)
			testutil.AssertEqual(t, "prompt time", it.Prompt().Remaining, float32(DefaultPromptDuration))
		})
	}
}

func TestItem_PromptExpires(t *testing.T) {
	te := newTestEnv(1)
	te.env.PromptDuration = 1
	hero := te.creature("hero", 10)
	it := te.item("bk:sword")
	it.Drop(0, 0)
	it.OnInteractionStart(hero)

	it.Update(0.5)
	testutil.AssertEqual(t, "prompt shown", it.Prompt() != nil, true)
	it.Update(0.6)
	testutil.AssertEqual(t, "prompt gone", it.Prompt() == nil, true)
}

func TestItem_MaskedRefusesInteraction(t *testing.T) {
	te := newTestEnv(0)
	hero := te.creature("hero", 10)
	it := te.item("bk:potion")
	it.Drop(0, 0)

	testutil.AssertEqual(t, "can interact", it.CanInteract(hero), false)
	testutil.AssertEqual(t, "interacted", it.Interact(hero), false)
	testutil.AssertEqual(t, "display name", it.DisplayName(), "???")

	te.progress.depth = 1
	it.CheckMasked()
	testutil.AssertEqual(t, "can interact", it.CanInteract(hero), true)
	testutil.AssertEqual(t, "interacted", it.Interact(hero), true)
	testutil.AssertEqual(t, "held", hero.Inventory().Contains(it), true)
}

func TestItem_PickupAndDrop(t *testing.T) {
	te := newTestEnv(1)
	hero := te.creature("hero", 10)
	it := te.item("bk:potion")
	it.Drop(5, 6)

	hero.Inventory().Pickup(it)

	testutil.AssertEqual(t, "owner", it.Owner(), hero.Id())
	testutil.AssertEqual(t, "touched", it.Touched(), true)
	testutil.AssertEqual(t, "dropped", it.IsDropped(), false)
	testutil.AssertEqual(t, "unlocked", te.progress.unlocked["bk:potion"], true)

	hero.Inventory().Drop(it, 7, 8)

	testutil.AssertEqual(t, "owner", it.Owner(), EntityId(""))
	testutil.AssertEqual(t, "dropped", it.IsDropped(), true)
	testutil.AssertEqual(t, "x", it.X, float32(7))
	testutil.AssertEqual(t, "held", hero.Inventory().Contains(it), false)
	testutil.AssertEqual(t, "events", strings.Join(te.sink.names(), ","), "item.dropped,item.picked_up,item.dropped")
}

func TestItem_PickupUnknownDoesNotUnlock(t *testing.T) {
	te := newTestEnv(1)
	hero := te.creature("hero", 10)
	it := te.item("bk:scroll")

	hero.Inventory().Pickup(it)

	testutil.AssertEqual(t, "masked", it.Masked(), true)
	testutil.AssertEqual(t, "unlocked", te.progress.unlocked["bk:scroll"], false)
}

func TestItem_UnlockErrorIsLogged(t *testing.T) {
	te := newTestEnv(1)
	te.progress.unlockErr = errors.New("disk full")
	hero := te.creature("hero", 10)
	it := te.item("bk:potion")

	hero.Inventory().Pickup(it)

	testutil.AssertEqual(t, "held", hero.Inventory().Contains(it), true)
	testutil.AssertEqual(t, "logged", strings.Contains(te.logs.String(), "disk full"), true)
}

func TestItem_Update(t *testing.T) {
	tests := map[string]struct {
		id       string
		delay    float32
		dt       float32
		expDelay float32
	}{
		"decays": {
			id:       "bk:potion",
			delay:    3,
			dt:       1,
			expDelay: 2,
		},
		"clamps at zero": {
			id:       "bk:potion",
			delay:    0.5,
			dt:       1,
			expDelay: 0,
		},
		"charge based active does not decay": {
			id:       "bk:lamp",
			delay:    2,
			dt:       1,
			expDelay: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te := newTestEnv(1)
			it := te.item(tt.id)
			it.SetDelay(tt.delay)

			it.Update(tt.dt)

			testutil.AssertEqual(t, "delay", it.Delay(), tt.expDelay)
		})
	}
}

func TestItem_OnRoomCleared(t *testing.T) {
	te := newTestEnv(1)
	lamp := te.item("bk:lamp")
	potion := te.item("bk:potion")
	lamp.SetDelay(2)
	potion.SetDelay(2)

	lamp.OnRoomCleared()
	potion.OnRoomCleared()

	testutil.AssertEqual(t, "lamp", lamp.Delay(), float32(1))
	testutil.AssertEqual(t, "potion", potion.Delay(), float32(2))
}

func TestItem_LostSupport(t *testing.T) {
	te := newTestEnv(1)
	it := te.item("bk:bomb")
	it.Drop(0, 0)

	it.LostSupport()
	it.LostSupport()

	testutil.AssertEqual(t, "done", it.Done(), true)
	testutil.AssertEqual(t, "count", it.Count(), 3)
	testutil.AssertEqual(t, "removed events", te.sink.count("item.removed"), 1)
}

func TestNewItem_UnknownDefinition(t *testing.T) {
	te := newTestEnv(1)
	_, err := NewItem(te.env, "bk:nothing")
	testutil.AssertErrorContains(t, err, "unknown item")

	_, err = NewItem(nil, "bk:sword")
	testutil.AssertErrorContains(t, err, "no templates")
}
