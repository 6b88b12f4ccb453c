package game

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
)

// memDefs implements storage.Storer[*ItemDefinition] for testing
type memDefs struct {
	defs map[string]*ItemDefinition
}

func (m *memDefs) Save(id string, d *ItemDefinition) error {
	m.defs[id] = d
	return nil
}

func (m *memDefs) Get(id string) *ItemDefinition {
	return m.defs[id]
}

func (m *memDefs) GetAll() map[string]*ItemDefinition {
	out := make(map[string]*ItemDefinition, len(m.defs))
	for k, v := range m.defs {
		out[k] = v
	}
	return out
}

func testDefinitions() map[string]*ItemDefinition {
	return map[string]*ItemDefinition{
		"bk:sword":  {Name: "sword", Type: ItemTypeWeapon, UseTime: 0.5},
		"bk:lamp":   {Name: "lamp", Type: ItemTypeActive, UseTime: -2, Animation: "lamp_glow"},
		"bk:heart":  {Name: "heart", Type: ItemTypeHeart, AutoPickup: true, Sprite: Size{W: 8, H: 8}},
		"bk:coin":   {Name: "coin", Type: ItemTypeCoin, AutoPickup: true},
		"bk:potion": {Name: "red potion", Type: ItemTypeArtifact, UseTime: 3, Prompt: "Drink {{ .Name }}?"},
		"bk:bomb":   {Name: "bomb", Type: ItemTypeBomb, Count: 3, Automatic: true},
		"bk:scroll": {Name: "scroll", Type: ItemTypeArtifact, Unknown: true},
	}
}

func newTestCatalog() *Catalog {
	return NewCatalog(&memDefs{defs: testDefinitions()})
}

// stubProgression implements Progression, Unlocker and DepthSetter for testing
type stubProgression struct {
	depth     int
	unlocked  map[string]bool
	unlockErr error
}

func newStubProgression(depth int, unlocked ...string) *stubProgression {
	p := &stubProgression{depth: depth, unlocked: map[string]bool{}}
	for _, id := range unlocked {
		p.unlocked[id] = true
	}
	return p
}

func (p *stubProgression) Depth() int                { return p.depth }
func (p *stubProgression) IsUnlocked(id string) bool { return p.unlocked[id] }

func (p *stubProgression) Unlock(id string) error {
	if p.unlockErr != nil {
		return p.unlockErr
	}
	p.unlocked[id] = true
	return nil
}

func (p *stubProgression) SetDepth(depth int) error {
	p.depth = depth
	return nil
}

type stubBody struct {
	owner   EntityId
	rect    Rect
	damping float32
	pushes  int
}

// stubPhysics implements Physics for testing
type stubPhysics struct {
	next    BodyId
	bodies  map[BodyId]*stubBody
	removed []BodyId
}

func newStubPhysics() *stubPhysics {
	return &stubPhysics{bodies: map[BodyId]*stubBody{}}
}

func (p *stubPhysics) AddBody(owner EntityId, r Rect, damping float32) BodyId {
	p.next++
	p.bodies[p.next] = &stubBody{owner: owner, rect: r, damping: damping}
	return p.next
}

func (p *stubPhysics) RemoveBody(id BodyId) {
	delete(p.bodies, id)
	p.removed = append(p.removed, id)
}

func (p *stubPhysics) Push(id BodyId, vx, vy float32) {
	if b, ok := p.bodies[id]; ok {
		b.pushes++
		b.rect.X += vx
		b.rect.Y += vy
	}
}

func (p *stubPhysics) Position(id BodyId) (float32, float32, bool) {
	b, ok := p.bodies[id]
	if !ok {
		return 0, 0, false
	}
	return b.rect.X, b.rect.Y, true
}

// recordingSink collects emitted events
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Name())
	}
	return out
}

func (s *recordingSink) count(name string) int {
	n := 0
	for _, got := range s.names() {
		if got == name {
			n++
		}
	}
	return n
}

// stubEntities implements EntityLookup for testing
type stubEntities map[EntityId]Actor

func (s stubEntities) Lookup(id EntityId) (Actor, bool) {
	a, ok := s[id]
	return a, ok
}

type testEnv struct {
	env      *Env
	physics  *stubPhysics
	progress *stubProgression
	sink     *recordingSink
	entities stubEntities
	logs     *bytes.Buffer
}

func newTestEnv(depth int, unlocked ...string) *testEnv {
	te := &testEnv{
		physics:  newStubPhysics(),
		progress: newStubProgression(depth, unlocked...),
		sink:     &recordingSink{},
		entities: stubEntities{},
		logs:     &bytes.Buffer{},
	}
	te.env = &Env{
		Templates:   newTestCatalog(),
		Progression: te.progress,
		Entities:    te.entities,
		Physics:     te.physics,
		Events:      te.sink,
		Logger:      slog.New(slog.NewTextHandler(te.logs, nil)),
	}
	return te
}

func (te *testEnv) item(id string) *Item {
	it, err := NewItem(te.env, id)
	if err != nil {
		panic(fmt.Sprintf("creating %s: %v", id, err))
	}
	return it
}

func (te *testEnv) creature(name string, maxHP int) *Creature {
	c := NewCreature(name, maxHP)
	te.entities[c.Id()] = c
	return c
}

// recordingUse is a UseBehavior that records calls
type recordingUse struct {
	calls   *[]string
	name    string
	err     error
	panics  bool
	handles bool
	seen    int
}

func (u *recordingUse) Use(Actor, *Item) error {
	if u.calls != nil {
		*u.calls = append(*u.calls, u.name)
	}
	if u.panics {
		panic("boom")
	}
	return u.err
}

func (u *recordingUse) HandleEvent(Event) bool {
	u.seen++
	return u.handles
}

type stubCheck bool

func (c stubCheck) CanUse(Actor, *Item) bool { return bool(c) }
