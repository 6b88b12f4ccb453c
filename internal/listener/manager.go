package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner serves one connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	runner SessionRunner
	active atomic.Int64
}

func NewConnectionManager(runner SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner: runner,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	m.active.Add(1)
	defer m.active.Add(-1)

	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session", "error", err)
	}
}

// Active returns the number of sessions currently running.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}
