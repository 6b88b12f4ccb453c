package fileio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxStringLength bounds length prefixes so corrupt data can't force huge allocations.
const MaxStringLength = 1 << 16

var ErrInvalidLength = errors.New("invalid string length")

// Reader decodes values written by Writer.
type Reader struct {
	r   io.Reader
	buf [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) ReadBool() (bool, error) {
	if err := r.read(r.buf[:1]); err != nil {
		return false, err
	}
	return r.buf[0] != 0, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	if err := r.read(r.buf[:4]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.read(r.buf[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 0 || n > MaxStringLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	b := make([]byte, n)
	if err := r.read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) read(p []byte) error {
	if _, err := io.ReadFull(r.r, p); err != nil {
		return fmt.Errorf("reading %d bytes: %w", len(p), err)
	}
	return nil
}
