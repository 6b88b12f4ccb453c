package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

const (
	sshServerVersion = "SSH-2.0-go-rogue"
	banner           = "go-rogue developer console\r\n"
)

type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		NoClientAuth:  true,
		ServerVersion: sshServerVersion,
	}
	config.BannerCallback = func(ssh.ConnMetadata) string {
		return banner
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SshListener) Start(ctx context.Context) error {
	config := l.serverConfig()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	// Close the listener when the parent context is canceled
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				cancelConns()
				wg.Wait()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	logger := slog.Default().With("remote", conn.RemoteAddr(), "user", sshConn.User())
	logger.InfoContext(ctx, "ssh connection established", "client", string(sshConn.ClientVersion()))

	// Closing the connection ends the channel loop below.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		l.handleSession(ctx, logger, newChan)
	}
}

// handleSession runs one console session on a channel once the client asks
// for a shell. Clients hold back input until the shell request is answered.
func (l *SshListener) handleSession(ctx context.Context, logger *slog.Logger, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		logger.ErrorContext(ctx, "accepting ssh channel", "error", err)
		return
	}
	defer ch.Close()

	shellReady := make(chan struct{})
	go func(in <-chan *ssh.Request) {
		started := false
		for req := range in {
			switch req.Type {
			case "pty-req":
				// No PTY keeps local echo and line editing on the client.
				req.Reply(false, nil)
			case "shell":
				req.Reply(!started, nil)
				if !started {
					started = true
					close(shellReady)
				}
			default:
				req.Reply(false, nil)
			}
		}
	}(requests)

	select {
	case <-shellReady:
	case <-ctx.Done():
		return
	}

	l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
}
