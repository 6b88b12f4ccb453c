package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-rogue/internal/storage"
)

// UseBehavior is one effect an item applies when used.
type UseBehavior interface {
	Use(actor Actor, item *Item) error
	// HandleEvent reacts to an event raised on the item's owner and reports
	// whether it consumed it.
	HandleEvent(e Event) bool
}

// UseCheck gates whether an item may be used right now.
type UseCheck interface {
	CanUse(actor Actor, item *Item) bool
}

// UseFactory builds use behaviors from definition config.
type UseFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create builds a fresh behavior. Behaviors may hold per-item state.
	Create(config map[string]any) (UseBehavior, error)
}

type CheckFactory interface {
	ValidateConfig(config map[string]any) error
	Create(config map[string]any) (UseCheck, error)
}

type RendererFactory interface {
	Create(def *ItemDefinition) (Renderer, error)
}

// Catalog compiles item definitions into items using registered factories.
type Catalog struct {
	defs      storage.Storer[*ItemDefinition]
	uses      map[string]UseFactory
	checks    map[string]CheckFactory
	renderers map[string]RendererFactory
}

func NewCatalog(defs storage.Storer[*ItemDefinition]) *Catalog {
	c := &Catalog{
		defs:      defs,
		uses:      make(map[string]UseFactory),
		checks:    make(map[string]CheckFactory),
		renderers: make(map[string]RendererFactory),
	}
	c.renderers["sprite"] = spriteRendererFactory{}
	return c
}

// RegisterUse registers a use factory by name.
// The name must match the "handler" field in item definitions.
func (c *Catalog) RegisterUse(name string, f UseFactory) error {
	if name == "" {
		return fmt.Errorf("use name cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("use factory cannot be nil")
	}
	if _, exists := c.uses[name]; exists {
		return fmt.Errorf("use factory %q already registered", name)
	}
	c.uses[name] = f
	return nil
}

// RegisterCheck registers a use check factory by name.
func (c *Catalog) RegisterCheck(name string, f CheckFactory) error {
	if name == "" {
		return fmt.Errorf("check name cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("check factory cannot be nil")
	}
	if _, exists := c.checks[name]; exists {
		return fmt.Errorf("check factory %q already registered", name)
	}
	c.checks[name] = f
	return nil
}

// RegisterRenderer registers a renderer factory by kind. "sprite" is built in
// and may be replaced.
func (c *Catalog) RegisterRenderer(kind string, f RendererFactory) error {
	if kind == "" {
		return fmt.Errorf("renderer kind cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("renderer factory cannot be nil")
	}
	c.renderers[kind] = f
	return nil
}

// Definition returns the definition for id, or nil.
func (c *Catalog) Definition(id string) *ItemDefinition {
	return c.defs.Get(id)
}

// Definitions returns every definition id in sorted order.
func (c *Catalog) Definitions() []string {
	all := c.defs.GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// CompileAll builds every definition once so bad configs fail at startup.
// Call this after all factories have been registered.
func (c *Catalog) CompileAll() error {
	for _, id := range c.Definitions() {
		if _, err := c.Template(id); err != nil {
			return fmt.Errorf("compiling item %q: %w", id, err)
		}
	}
	return nil
}

// Template builds a fresh, detached item for id. Each call returns new
// behavior and renderer instances.
func (c *Catalog) Template(id string) (*Item, error) {
	def := c.defs.Get(id)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	uses := make([]UseBehavior, 0, len(def.Uses))
	for i, spec := range def.Uses {
		u, err := c.buildUse(spec)
		if err != nil {
			return nil, fmt.Errorf("use %d: %w", i, err)
		}
		uses = append(uses, u)
	}

	var check UseCheck
	if def.Check != nil {
		var err error
		check, err = c.buildCheck(*def.Check)
		if err != nil {
			return nil, fmt.Errorf("check: %w", err)
		}
	}

	kind := def.Renderer.Kind
	if kind == "" {
		kind = "sprite"
	}
	rf, ok := c.renderers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown renderer %q", kind)
	}
	renderer, err := rf.Create(def)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	count := def.Count
	if count == 0 {
		count = 1
	}

	return &Item{
		id:          id,
		name:        def.Name,
		description: def.Description,
		promptText:  def.Prompt,
		itemType:    def.Type,
		count:       count,
		uses:        uses,
		useCheck:    check,
		useTime:     def.UseTime,
		animation:   def.Animation,
		sprite:      def.spriteSize(),
		autoPickup:  def.AutoPickup,
		automatic:   def.Automatic,
		unknown:     def.Unknown,
		renderer:    renderer,
	}, nil
}

func (c *Catalog) buildUse(spec UseSpec) (UseBehavior, error) {
	f, ok := c.uses[spec.Handler]
	if !ok {
		return nil, fmt.Errorf("unknown use handler %q", spec.Handler)
	}
	if err := f.ValidateConfig(spec.Config); err != nil {
		return nil, fmt.Errorf("validating %s config: %w", spec.Handler, err)
	}
	u, err := f.Create(spec.Config)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", spec.Handler, err)
	}
	return u, nil
}

func (c *Catalog) buildCheck(spec UseSpec) (UseCheck, error) {
	f, ok := c.checks[spec.Handler]
	if !ok {
		return nil, fmt.Errorf("unknown check handler %q", spec.Handler)
	}
	if err := f.ValidateConfig(spec.Config); err != nil {
		return nil, fmt.Errorf("validating %s config: %w", spec.Handler, err)
	}
	check, err := f.Create(spec.Config)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", spec.Handler, err)
	}
	return check, nil
}
