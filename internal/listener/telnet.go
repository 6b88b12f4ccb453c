package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/iammegalith/telnet/options"
)

type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another console running?)", l.port)
		}
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	slog.InfoContext(ctx, "listening for telnet", "port", l.port)
	return l.serve(ctx, ln)
}

// serve runs console sessions for connections on ln until ctx is canceled.
func (l *TelnetListener) serve(ctx context.Context, ln net.Listener) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	sessions := &telnetSessions{
		run:    l.cm.AcceptConnection,
		ctx:    connCtx,
		logger: slog.Default().With("listener", "telnet", "addr", ln.Addr().String()),
	}

	// The console is line based, so only go-ahead suppression is offered.
	svr := telnet.NewServer(ln.Addr().String(), sessions, options.SuppressGoAheadOption)

	// svr.Stop needs Serve to have stored its listener, so ln is closed
	// directly to end Serve.
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	err := svr.Serve(ln)
	cancelConns()
	sessions.wg.Wait()

	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("serving telnet on %s: %w", ln.Addr(), err)
}

type telnetSessions struct {
	wg     sync.WaitGroup
	run    func(context.Context, io.ReadWriter)
	ctx    context.Context
	logger *slog.Logger
}

func (s *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	s.wg.Add(1)
	defer s.wg.Done()

	logger := s.logger.With("remote", conn.RemoteAddr())
	logger.Info("telnet connection established")
	defer logger.Info("telnet connection closed")

	// Canceling the shared context ends the session; closing the socket
	// unblocks a session waiting on input.
	stop := context.AfterFunc(s.ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	if _, err := io.WriteString(conn, banner); err != nil {
		logger.Warn("writing telnet banner", "error", err)
		return
	}
	s.run(s.ctx, newCRLFReadWriter(conn))
}
