package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-rogue/internal/game"
)

type session struct {
	c     *Console
	conn  io.ReadWriter
	hero  *game.Creature
	lines chan string
	msgs  chan []byte
}

func newSession(c *Console, conn io.ReadWriter, hero *game.Creature) *session {
	return &session{
		c:     c,
		conn:  conn,
		hero:  hero,
		lines: make(chan string),
		msgs:  make(chan []byte, 32),
	}
}

func (s *session) run(ctx context.Context) error {
	inputErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErr <- scanner.Err()
		close(s.lines)
	}()

	if s.c.events != nil {
		unsub, err := s.c.events.Subscribe(s.c.subject, func(data []byte) {
			select {
			case s.msgs <- data:
			default:
			}
		})
		if err != nil {
			slog.WarnContext(ctx, "subscribing to events", "error", err)
		} else {
			defer unsub()
		}
	}

	if err := s.writeLine(fmt.Sprintf("Welcome, %s. Type 'help' for commands.", s.hero.Name)); err != nil {
		return err
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			if err := s.writeLine("\n* " + string(msg)); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-s.lines:
			if !ok {
				return <-inputErr
			}
			err := s.exec(ctx, line)
			if errors.Is(err, ErrQuit) {
				return s.writeLine("Goodbye.")
			}
			if err != nil {
				var userErr *UserError
				if !errors.As(err, &userErr) {
					slog.ErrorContext(ctx, "console command", "line", line, "error", err)
				}
				if err := s.writeLine(err.Error()); err != nil {
					return err
				}
			}
			var msgs []string
			s.c.world.Inspect(func([]*game.Item) {
				msgs = s.hero.DrainMessages()
			})
			for _, m := range msgs {
				if err := s.writeLine(m); err != nil {
					return err
				}
			}
			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

func (s *session) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return NewUserError(fmt.Sprintf("Unknown command: %s", fields[0]))
	}
	if len(fields)-1 < cmd.minArgs {
		return NewUserError("Usage: " + cmd.usage)
	}
	return cmd.run(ctx, s, fields[1:])
}

// interactive reads follow-up answers from the session's line stream.
func (s *session) interactive() io.ReadWriter {
	return struct {
		io.Reader
		io.Writer
	}{&lineReader{lines: s.lines}, s.conn}
}

func (s *session) prompt() error {
	var hp, maxHP int
	s.c.world.Inspect(func([]*game.Item) {
		hp, maxHP = s.hero.HP, s.hero.MaxHP
	})
	_, err := io.WriteString(s.conn, fmt.Sprintf("[%d/%d hp] > ", hp, maxHP))
	return err
}

func (s *session) writeLine(line string) error {
	_, err := io.WriteString(s.conn, line+"\n")
	return err
}

func (s *session) writef(format string, args ...any) error {
	_, err := fmt.Fprintf(s.conn, format, args...)
	return err
}

// lineReader serves lines from a channel as a newline separated stream.
type lineReader struct {
	lines <-chan string
	buf   []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		line, ok := <-r.lines
		if !ok {
			return 0, io.EOF
		}
		r.buf = []byte(line + "\n")
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
