package fileio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes primitive values in the save layout: little endian, bools as a
// single byte and strings prefixed by their int32 byte length.
type Writer struct {
	w   io.Writer
	buf [8]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteBool(v bool) error {
	w.buf[0] = 0
	if v {
		w.buf[0] = 1
	}
	return w.write(w.buf[:1])
}

func (w *Writer) WriteInt32(v int32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], uint32(v))
	return w.write(w.buf[:4])
}

func (w *Writer) WriteFloat32(v float32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], math.Float32bits(v))
	return w.write(w.buf[:4])
}

func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d", ErrInvalidLength, len(s))
	}
	if err := w.WriteInt32(int32(len(s))); err != nil {
		return err
	}
	return w.write([]byte(s))
}

func (w *Writer) write(p []byte) error {
	if _, err := w.w.Write(p); err != nil {
		return fmt.Errorf("writing %d bytes: %w", len(p), err)
	}
	return nil
}
