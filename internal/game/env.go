package game

import "log/slog"

const (
	DefaultDropDamping    = 4.0
	DefaultPromptDuration = 1.5
	DefaultSpriteSize     = 16
)

// starterItems are unlocked from the very first run.
var starterItems = map[string]bool{
	"bk:sword":        true,
	"bk:lamp":         true,
	"bk:missile_wand": true,
	"bk:gun":          true,
}

// Progression answers run and meta progression queries.
type Progression interface {
	// Depth is the current dungeon depth. Zero is the hub.
	Depth() int
	// IsUnlocked reports whether the player has permanently identified id.
	IsUnlocked(id string) bool
}

// Unlocker is implemented by progressions that can persist new unlocks.
type Unlocker interface {
	Unlock(id string) error
}

// Unlocked reports whether id is shown unmasked at depth zero. Starter items
// are always unlocked.
func Unlocked(p Progression, id string) bool {
	if starterItems[id] {
		return true
	}
	return p != nil && p.IsUnlocked(id)
}

// BodyId is a handle to a body in the physics space. Zero is never issued.
type BodyId uint64

type Rect struct {
	X, Y, W, H float32
}

// Physics owns the bodies of dropped items.
type Physics interface {
	AddBody(owner EntityId, r Rect, damping float32) BodyId
	RemoveBody(id BodyId)
	Push(id BodyId, vx, vy float32)
	Position(id BodyId) (x, y float32, ok bool)
}

// EventSink receives every event the world emits.
type EventSink interface {
	Emit(e Event)
}

// TemplateSource builds a fresh, detached item for a definition id.
type TemplateSource interface {
	Template(id string) (*Item, error)
}

// EntityLookup resolves weak entity references.
type EntityLookup interface {
	Lookup(id EntityId) (Actor, bool)
}

// Env is the set of collaborators an item talks to. Items never own them.
type Env struct {
	Templates   TemplateSource
	Progression Progression
	Entities    EntityLookup
	Physics     Physics
	Events      EventSink
	Logger      *slog.Logger

	DropDamping    float32
	PromptDuration float32
}

func (e *Env) logger() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Env) dropDamping() float32 {
	if e == nil || e.DropDamping == 0 {
		return DefaultDropDamping
	}
	return e.DropDamping
}

func (e *Env) promptDuration() float32 {
	if e == nil || e.PromptDuration == 0 {
		return DefaultPromptDuration
	}
	return e.PromptDuration
}

func (e *Env) depth() int {
	if e == nil || e.Progression == nil {
		return 0
	}
	return e.Progression.Depth()
}

func (e *Env) progression() Progression {
	if e == nil {
		return nil
	}
	return e.Progression
}

func (e *Env) emit(ev Event) {
	if e == nil || e.Events == nil {
		return
	}
	e.Events.Emit(ev)
}

func (e *Env) lookup(id EntityId) (Actor, bool) {
	if e == nil || e.Entities == nil || id == "" {
		return nil, false
	}
	return e.Entities.Lookup(id)
}
