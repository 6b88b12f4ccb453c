package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/game"
)

// SubjectPrefix is prepended to every event name to form its subject.
const SubjectPrefix = "rogue.events."

// Publisher provides the ability to publish messages to subjects
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher forwards game events to the message bus as JSON. It
// satisfies game.EventSink.
type EventPublisher struct {
	pub    Publisher
	logger *slog.Logger
}

func NewEventPublisher(pub Publisher, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{pub: pub, logger: logger}
}

// Subject returns the subject an event is published on.
func Subject(e game.Event) string {
	return SubjectPrefix + e.Name()
}

func (p *EventPublisher) Emit(e game.Event) {
	if err := p.publish(e); err != nil {
		p.logger.Warn("publishing event", "event", e.Name(), "error", err)
	}
}

func (p *EventPublisher) publish(e game.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return p.pub.Publish(Subject(e), data)
}
