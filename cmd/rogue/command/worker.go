package command

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/audio"
	"github.com/pixil98/go-rogue/internal/console"
	"github.com/pixil98/go-rogue/internal/driver"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/listener"
	"github.com/pixil98/go-rogue/internal/messaging"
	"github.com/pixil98/go-rogue/internal/physics"
	"github.com/pixil98/go-rogue/internal/progress"
	"github.com/pixil98/go-rogue/internal/storage"
	"github.com/pixil98/go-rogue/internal/uses"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	t, err := cfg.Tuning.load()
	if err != nil {
		return nil, fmt.Errorf("loading tuning: %w", err)
	}

	// Item definitions
	defs, err := cfg.Storage.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	bus := audio.NewBus(audio.WithSampleRate(t.SampleRate), audio.WithTickLength(t.Tick()))

	catalog := game.NewCatalog(defs)
	if err := uses.Register(catalog, defs); err != nil {
		return nil, fmt.Errorf("registering uses: %w", err)
	}
	if err := catalog.RegisterRenderer(audio.ExtSound, audio.NewRendererFactory(bus)); err != nil {
		return nil, fmt.Errorf("registering renderer: %w", err)
	}
	if err := catalog.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling items: %w", err)
	}

	store, err := cfg.Progress.openStore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("opening progress: %w", err)
	}

	// Event bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	space := physics.NewSpace(physics.WithStep(t.Tick()))
	world := game.NewWorld(&game.Env{
		Templates:      catalog,
		Progression:    store,
		Physics:        space,
		Events:         messaging.NewEventPublisher(natsServer, slog.Default()),
		Logger:         slog.Default(),
		DropDamping:    t.DropDamping,
		PromptDuration: t.PromptSeconds,
	}, game.WithStep(float32(t.Tick().Seconds())))

	// Physics moves bodies before the world syncs item positions from them
	gameDriver := driver.NewGameDriver([]driver.Manager{
		space,
		world,
		bus,
	}, driver.WithTickLength(t.Tick()))

	con := console.NewConsole(world, catalog, storage.NewSelectableStorer[*game.ItemDefinition](defs),
		console.WithEvents(natsServer, cfg.Console.EventSubject),
		console.WithProgression(store),
		console.WithSavePath(cfg.Progress.SavePath),
		console.WithMaxHP(cmp.Or(cfg.Console.MaxHP, console.DefaultMaxHP)),
		console.WithExplosion(t.ExplosionRadius, t.ExplosionForce),
	)
	cm := listener.NewConnectionManager(con)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lw, err := l.buildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lw
	}

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"driver":    gameDriver,
		"progress":  &storeCloser{store: store},
		"listeners": &listeners,
	}, nil
}

// storeCloser closes the progression database on shutdown.
type storeCloser struct {
	store *progress.Store
}

func (c *storeCloser) Start(ctx context.Context) error {
	<-ctx.Done()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("closing progress store: %w", err)
	}
	return nil
}
