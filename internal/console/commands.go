package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pixil98/go-rogue/internal"
	"github.com/pixil98/go-rogue/internal/display"
	"github.com/pixil98/go-rogue/internal/game"
)

type commandFunc func(ctx context.Context, s *session, args []string) error

type command struct {
	usage   string
	summary string
	minArgs int
	run     commandFunc
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {usage: "help", summary: "list commands", run: cmdHelp},
		"look":    {usage: "look", summary: "list items lying in the world", run: cmdLook},
		"inv":     {usage: "inv", summary: "list carried items", run: cmdInventory},
		"stats":   {usage: "stats", summary: "show health and coins", run: cmdStats},
		"defs":    {usage: "defs", summary: "list item definitions", run: cmdDefs},
		"spawn":   {usage: "spawn [id] [x y]", summary: "drop a new item into the world", run: cmdSpawn},
		"give":    {usage: "give <id>", summary: "put a new item in your inventory", minArgs: 1, run: cmdGive},
		"touch":   {usage: "touch <item>", summary: "walk into a dropped item", minArgs: 1, run: cmdTouch},
		"get":     {usage: "get <item>", summary: "pick up a dropped item", minArgs: 1, run: cmdGet},
		"use":     {usage: "use <item>", summary: "use a carried item", minArgs: 1, run: cmdUse},
		"drop":    {usage: "drop <item> [x y]", summary: "drop a carried item", minArgs: 1, run: cmdDrop},
		"convert": {usage: "convert <item> <id>", summary: "turn an item into another kind", minArgs: 2, run: cmdConvert},
		"lose":    {usage: "lose <item>", summary: "remove the floor under an item", minArgs: 1, run: cmdLose},
		"hurt":    {usage: "hurt <amount>", summary: "take damage", minArgs: 1, run: cmdHurt},
		"clear":   {usage: "clear", summary: "clear the current room", run: cmdClear},
		"explode": {usage: "explode <x> <y>", summary: "set off an explosion", minArgs: 2, run: cmdExplode},
		"depth":   {usage: "depth [n]", summary: "show or change the depth", run: cmdDepth},
		"reset":   {usage: "reset", summary: "forget every unlock and return to the hub", run: cmdReset},
		"save":    {usage: "save", summary: "save the dropped items", run: cmdSave},
		"load":    {usage: "load", summary: "restore the dropped items", run: cmdLoad},
		"quit":    {usage: "quit", summary: "leave the console", run: cmdQuit},
	}
}

// userFacing turns expected gameplay refusals into user errors.
func userFacing(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range []error{
		game.ErrUnknownItem,
		game.ErrItemNotFound,
		game.ErrNotOwner,
		game.ErrNoInventory,
		game.ErrInteractBlock,
	} {
		if errors.Is(err, target) {
			return NewUserError(err.Error())
		}
	}
	return err
}

// resolveItem finds a live item by instance id prefix. When no instance
// matches, ref is taken as a definition id and the hero's own items win over
// dropped ones.
func (s *session) resolveItem(ref string) (*game.Item, error) {
	var found []*game.Item
	s.c.world.Inspect(func(items []*game.Item) {
		for _, it := range items {
			if strings.HasPrefix(string(it.InstanceId()), ref) {
				found = append(found, it)
			}
		}
		if len(found) > 0 {
			return
		}
		var dropped *game.Item
		for _, it := range items {
			if it.Id() != ref || it.Done() {
				continue
			}
			if it.Owner() == s.hero.Id() {
				found = []*game.Item{it}
				return
			}
			if dropped == nil && it.IsDropped() {
				dropped = it
			}
		}
		if dropped != nil {
			found = []*game.Item{dropped}
		}
	})

	switch len(found) {
	case 0:
		return nil, NewUserError(fmt.Sprintf("No item matches %q.", ref))
	case 1:
		return found[0], nil
	default:
		return nil, NewUserError(fmt.Sprintf("%q matches %d items, be more specific.", ref, len(found)))
	}
}

func parseCoords(args []string) (float32, float32, error) {
	if len(args) < 2 {
		return 0, 0, NewUserError("Expected x and y.")
	}
	x, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, 0, NewUserError(fmt.Sprintf("Bad x %q.", args[0]))
	}
	y, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return 0, 0, NewUserError(fmt.Sprintf("Bad y %q.", args[1]))
	}
	return float32(x), float32(y), nil
}

// displayName reads the item's name under the world lock.
func (s *session) displayName(it *game.Item) string {
	var name string
	s.c.world.Inspect(func([]*game.Item) {
		name = it.DisplayName()
	})
	return name
}

// describe must be called under the world lock.
func describe(it *game.Item) string {
	line := fmt.Sprintf("  %s  %s", it.InstanceId().Short(), it.DisplayName())
	if it.Count() > 1 {
		line += fmt.Sprintf(" x%d", it.Count())
	}
	if it.Delay() > 0 {
		line += fmt.Sprintf(" (%.1fs)", it.Delay())
	}
	return line
}

func cmdHelp(_ context.Context, s *session, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{"Commands:"}
	for _, name := range names {
		cmd := commands[name]
		lines = append(lines, fmt.Sprintf("  %-20s %s", cmd.usage, cmd.summary))
	}
	return s.writeLine(strings.Join(lines, "\n"))
}

func cmdLook(_ context.Context, s *session, _ []string) error {
	lines := []string{"On the floor:"}
	s.c.world.Inspect(func(items []*game.Item) {
		for _, it := range items {
			if !it.IsDropped() {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s at %.0f,%.0f", describe(it), it.X, it.Y))
		}
	})
	if len(lines) == 1 {
		lines = append(lines, "  Nothing")
	}
	return s.writeLine(strings.Join(lines, "\n"))
}

func cmdInventory(_ context.Context, s *session, _ []string) error {
	lines := []string{"You are carrying:"}
	s.c.world.Inspect(func([]*game.Item) {
		for _, it := range s.hero.Inventory().Items() {
			if it.Done() {
				continue
			}
			lines = append(lines, describe(it))
		}
	})
	if len(lines) == 1 {
		lines = append(lines, "  Nothing")
	}
	return s.writeLine(strings.Join(lines, "\n"))
}

func cmdStats(_ context.Context, s *session, _ []string) error {
	var hp, maxHP, coins int
	s.c.world.Inspect(func([]*game.Item) {
		hp, maxHP, coins = s.hero.HP, s.hero.MaxHP, s.hero.Coins
	})
	return s.writef("%s: %d/%d hp, %d coins\n", s.hero.Name, hp, maxHP, coins)
}

func cmdDefs(_ context.Context, s *session, _ []string) error {
	lines := []string{"Definitions:"}
	for _, id := range s.c.catalog.Definitions() {
		def := s.c.catalog.Definition(id)
		lines = append(lines, fmt.Sprintf("  %-20s %s (%s)", id, display.Title(def.Name), def.Type))
	}
	return s.writeLine(strings.Join(lines, "\n"))
}

func cmdSpawn(_ context.Context, s *session, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
		args = args[1:]
	} else {
		if s.c.picker == nil {
			return NewUserError("Usage: " + commands["spawn"].usage)
		}
		picked, err := s.c.picker.Prompt(s.interactive(), "Spawn which item?")
		if err != nil {
			return fmt.Errorf("picking item: %w", err)
		}
		id = picked
	}

	var x, y float32
	if len(args) > 0 {
		var err error
		if x, y, err = parseCoords(args); err != nil {
			return err
		}
	}

	it, err := s.c.world.SpawnItem(id, x, y)
	if err != nil {
		return userFacing(err)
	}
	var line string
	s.c.world.Inspect(func([]*game.Item) {
		line = describe(it)
	})
	return s.writef("Spawned %s at %.0f,%.0f.\n", line, x, y)
}

func cmdGive(_ context.Context, s *session, args []string) error {
	it, err := s.c.world.GiveItem(s.hero.Id(), args[0])
	if err != nil {
		return userFacing(err)
	}
	return s.writef("You receive %s.\n", s.displayName(it))
}

func cmdTouch(_ context.Context, s *session, args []string) error {
	it, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	if err := s.c.world.Touch(s.hero.Id(), it.InstanceId()); err != nil {
		return userFacing(err)
	}
	var prompt, name string
	var prompted, held bool
	s.c.world.Inspect(func([]*game.Item) {
		if p := it.Prompt(); p != nil {
			prompt, prompted = p.Text, true
		}
		held = it.Owner() == s.hero.Id()
		name = it.DisplayName()
	})
	switch {
	case prompted:
		return s.writeLine(prompt)
	case held:
		return s.writef("You pick up %s.\n", name)
	}
	return nil
}

func cmdGet(_ context.Context, s *session, args []string) error {
	it, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	if err := s.c.world.Interact(s.hero.Id(), it.InstanceId()); err != nil {
		return userFacing(err)
	}
	return s.writef("You pick up %s.\n", s.displayName(it))
}

func cmdUse(_ context.Context, s *session, args []string) error {
	it, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	if err := s.c.world.UseItem(s.hero.Id(), it.InstanceId()); err != nil {
		if uerr := userFacing(err); uerr != err {
			return uerr
		}
		return NewUserError(fmt.Sprintf("Something went wrong using %s.", s.displayName(it)))
	}
	return nil
}

func cmdDrop(_ context.Context, s *session, args []string) error {
	it, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	var x, y float32
	if len(args) > 1 {
		if x, y, err = parseCoords(args[1:]); err != nil {
			return err
		}
	}
	if err := s.c.world.DropItem(s.hero.Id(), it.InstanceId(), x, y); err != nil {
		return userFacing(err)
	}
	return s.writef("You drop %s.\n", s.displayName(it))
}

func cmdConvert(_ context.Context, s *session, args []string) error {
	it, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	if err := s.c.world.ConvertItem(it.InstanceId(), args[1]); err != nil {
		return userFacing(err)
	}
	return s.writef("It is now %s.\n", s.displayName(it))
}

func cmdLose(_ context.Context, s *session, args []string) error {
	it, err := s.resolveItem(args[0])
	if err != nil {
		return err
	}
	if err := s.c.world.LoseSupport(it.InstanceId()); err != nil {
		return userFacing(err)
	}
	return s.writef("%s falls away.\n", display.Capitalize(s.displayName(it)))
}

func cmdHurt(_ context.Context, s *session, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount < 0 {
		return NewUserError(fmt.Sprintf("Bad amount %q.", args[0]))
	}
	taken, err := s.c.world.Damage(s.hero.Id(), amount)
	if err != nil {
		return err
	}
	if taken == 0 && amount > 0 {
		return s.writeLine("The hit is absorbed.")
	}
	return s.writef("You take %d damage.\n", taken)
}

func cmdClear(_ context.Context, s *session, _ []string) error {
	room := s.c.world.ClearRoom()
	return s.writef("Room %d cleared.\n", room)
}

func cmdExplode(_ context.Context, s *session, args []string) error {
	x, y, err := parseCoords(args)
	if err != nil {
		return err
	}
	n := s.c.world.Explode(x, y, s.c.explosionRadius, s.c.explosionForce)
	return s.writef("Boom. %d items pushed.\n", n)
}

func cmdDepth(_ context.Context, s *session, args []string) error {
	if s.c.progress == nil {
		return NewUserError("No progression store is attached.")
	}
	if len(args) == 0 {
		var depth int
		s.c.world.Inspect(func([]*game.Item) {
			depth = s.c.progress.Depth()
		})
		return s.writef("Depth %d.\n", depth)
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return NewUserError(fmt.Sprintf("Bad depth %q.", args[0]))
	}
	if err := s.c.world.SetDepth(depth); err != nil {
		return err
	}
	return s.writef("Depth %d.\n", depth)
}

func cmdReset(ctx context.Context, s *session, _ []string) error {
	r, ok := s.c.progress.(ProgressResetter)
	if !ok {
		return NewUserError("The progression store cannot be reset.")
	}
	ok, err := internal.PromptYN(s.interactive(), "Forget every unlock and return to the hub? ")
	if err != nil {
		return fmt.Errorf("confirming reset: %w", err)
	}
	if !ok {
		return s.writeLine("Reset canceled.")
	}
	if err := r.Reset(ctx); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	// SetDepth remasks every item against the cleared unlocks.
	if err := s.c.world.SetDepth(0); err != nil {
		return err
	}
	return s.writeLine("Progress reset.")
}

func cmdSave(ctx context.Context, s *session, _ []string) error {
	if err := s.c.world.Save(ctx, s.c.savePath); err != nil {
		return err
	}
	return s.writeLine("Saved.")
}

func cmdLoad(ctx context.Context, s *session, _ []string) error {
	ok, err := internal.PromptYN(s.interactive(), "Replace the dropped items with the last save? ")
	if err != nil {
		return fmt.Errorf("confirming load: %w", err)
	}
	if !ok {
		return s.writeLine("Load canceled.")
	}
	if err := s.c.world.Load(ctx, s.c.savePath); err != nil {
		return err
	}
	return s.writeLine("Loaded.")
}

func cmdQuit(context.Context, *session, []string) error {
	return ErrQuit
}
