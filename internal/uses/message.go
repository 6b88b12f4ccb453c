package uses

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/display"
	"github.com/pixil98/go-rogue/internal/game"
)

// MessageFactory creates behaviors that tell the user something.
// Config:
//   - text (required): template rendered with the item's display data
type MessageFactory struct{}

func (f *MessageFactory) ValidateConfig(config map[string]any) error {
	text, err := requiredString(config, "text")
	if err != nil {
		return err
	}
	if err := display.ValidateTemplate(text); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	return nil
}

func (f *MessageFactory) Create(config map[string]any) (game.UseBehavior, error) {
	text, err := requiredString(config, "text")
	if err != nil {
		return nil, err
	}
	return &message{text: text}, nil
}

type message struct {
	noEvents
	text string
}

func (m *message) Use(actor game.Actor, item *game.Item) error {
	recv, ok := actor.(game.Messenger)
	if !ok {
		return nil
	}
	out, err := display.ExpandTemplate(m.text, item.DisplayData())
	if err != nil {
		return fmt.Errorf("rendering message: %w", err)
	}
	recv.Message(display.Wrap(out))
	return nil
}
