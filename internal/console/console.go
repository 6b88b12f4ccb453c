package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/pixil98/go-rogue/internal"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/storage"
)

const DefaultMaxHP = 6

var nameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{1,15}$`)

// Subscriber delivers published events to a session.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// ProgressionStore is the part of the progression store the console edits.
type ProgressionStore interface {
	game.Progression
	SetDepth(depth int) error
}

// ProgressResetter is implemented by stores that can wipe the run.
type ProgressResetter interface {
	Reset(ctx context.Context) error
}

// Console is a developer console for poking at the item system. Each
// connection gets its own actor in the shared world.
type Console struct {
	world    *game.World
	catalog  *game.Catalog
	picker   *storage.SelectableStorer[*game.ItemDefinition]
	progress ProgressionStore
	events   Subscriber

	subject         string
	savePath        string
	maxHP           int
	explosionRadius float32
	explosionForce  float32
}

func NewConsole(world *game.World, catalog *game.Catalog, picker *storage.SelectableStorer[*game.ItemDefinition], opts ...ConsoleOpt) *Console {
	c := &Console{
		world:           world,
		catalog:         catalog,
		picker:          picker,
		subject:         "rogue.events.>",
		savePath:        "saves/world.sav",
		maxHP:           DefaultMaxHP,
		explosionRadius: 48,
		explosionForce:  120,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunSession asks the user for a name and runs commands until the user quits,
// the connection closes or ctx is canceled.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	name, err := internal.Prompt(conn, "Name your adventurer: ",
		internal.WithMaxTries(3),
		internal.WithValidator(func(s string) (bool, string) {
			if !nameRegex.MatchString(s) {
				return false, "Names are 2-16 letters, digits, dashes or underscores.\n"
			}
			return true, ""
		}))
	if err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	hero := game.NewCreature(name, c.maxHP)
	if err := c.world.AddActor(hero); err != nil {
		return fmt.Errorf("adding actor: %w", err)
	}
	defer c.world.RemoveActor(hero.Id())

	slog.InfoContext(ctx, "console session started", "name", name, "actor", hero.Id())
	defer slog.InfoContext(ctx, "console session ended", "name", name)

	s := newSession(c, conn, hero)
	return s.run(ctx)
}
