package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer is an embedded NATS server with one internal client connection
// used for publishing game events.
type NatsServer struct {
	ns *server.Server

	mu   sync.Mutex
	conn *nats.Conn

	startupTimeout time.Duration
	host           string
	port           int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	// Create internal client connection
	conn, err := nats.Connect(n.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()
	n.mu.Lock()
	n.conn.Close()
	n.conn = nil
	n.mu.Unlock()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Subscribe creates a subscription on the given subject.
// The handler is called for each message received.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { sub.Unsubscribe() }, nil
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return conn.Publish(subject, data)
}
