package uses

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/game"
)

// HealFactory creates behaviors that restore the user's health.
// Config:
//   - amount (optional, default 1): health restored
type HealFactory struct{}

func (f *HealFactory) ValidateConfig(config map[string]any) error {
	_, err := positiveInt(config, "amount", 1)
	return err
}

func (f *HealFactory) Create(config map[string]any) (game.UseBehavior, error) {
	amount, err := positiveInt(config, "amount", 1)
	if err != nil {
		return nil, err
	}
	return &heal{amount: amount}, nil
}

type heal struct {
	noEvents
	amount int
}

func (h *heal) Use(actor game.Actor, _ *game.Item) error {
	healer, ok := actor.(game.Healer)
	if !ok {
		return fmt.Errorf("actor %v cannot be healed", actorId(actor))
	}
	healer.Heal(h.amount)
	return nil
}

// CoinsFactory creates behaviors that pay the user. The item's stack size
// multiplies the payout.
// Config:
//   - amount (optional, default 1): coins per item in the stack
type CoinsFactory struct{}

func (f *CoinsFactory) ValidateConfig(config map[string]any) error {
	_, err := positiveInt(config, "amount", 1)
	return err
}

func (f *CoinsFactory) Create(config map[string]any) (game.UseBehavior, error) {
	amount, err := positiveInt(config, "amount", 1)
	if err != nil {
		return nil, err
	}
	return &coins{amount: amount}, nil
}

type coins struct {
	noEvents
	amount int
}

func (c *coins) Use(actor game.Actor, item *game.Item) error {
	holder, ok := actor.(game.CoinHolder)
	if !ok {
		return fmt.Errorf("actor %v cannot carry coins", actorId(actor))
	}
	holder.AddCoins(c.amount * max(item.Count(), 1))
	return nil
}

// ConsumeFactory creates behaviors that use up part of the stack.
// Config:
//   - amount (optional, default 1): items consumed per use
type ConsumeFactory struct{}

func (f *ConsumeFactory) ValidateConfig(config map[string]any) error {
	_, err := positiveInt(config, "amount", 1)
	return err
}

func (f *ConsumeFactory) Create(config map[string]any) (game.UseBehavior, error) {
	amount, err := positiveInt(config, "amount", 1)
	if err != nil {
		return nil, err
	}
	return &consume{amount: amount}, nil
}

type consume struct {
	noEvents
	amount int
}

func (c *consume) Use(_ game.Actor, item *game.Item) error {
	item.SetCount(item.Count() - c.amount)
	return nil
}

func actorId(actor game.Actor) game.EntityId {
	if actor == nil {
		return ""
	}
	return actor.Id()
}
