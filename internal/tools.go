package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

// WithValidator rejects input until v approves it. The returned message is
// written back to the user on rejection.
func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

// WithMaxTries gives up after i rejected answers.
func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt to rw and returns the next accepted line.
// It reads one byte at a time so no input past the line is consumed.
func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	br := bufio.NewReaderSize(byteReader{rw}, 16)

	tries := 0
	for {
		if _, err := io.WriteString(rw, prompt); err != nil {
			return "", err
		}

		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		input := strings.TrimRight(line, "\r\n")

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := io.WriteString(rw, msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

// PromptYN asks a yes/no question until it gets an answer.
func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// byteReader limits reads to a single byte so a bufio.Reader wrapped around a
// shared connection never buffers past the current line.
type byteReader struct {
	r io.Reader
}

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return b.r.Read(p)
}
