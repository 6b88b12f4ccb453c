package game

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/fileio"
)

// Save writes the item record: position, id, used, touched, delay and unknown,
// in that order.
func (i *Item) Save(w *fileio.Writer) error {
	if err := w.WriteFloat32(i.X); err != nil {
		return fmt.Errorf("saving x: %w", err)
	}
	if err := w.WriteFloat32(i.Y); err != nil {
		return fmt.Errorf("saving y: %w", err)
	}
	if err := w.WriteString(i.id); err != nil {
		return fmt.Errorf("saving id: %w", err)
	}
	if err := w.WriteBool(i.used); err != nil {
		return fmt.Errorf("saving used: %w", err)
	}
	if err := w.WriteBool(i.touched); err != nil {
		return fmt.Errorf("saving touched: %w", err)
	}
	if err := w.WriteFloat32(i.delay); err != nil {
		return fmt.Errorf("saving delay: %w", err)
	}
	if err := w.WriteBool(i.unknown); err != nil {
		return fmt.Errorf("saving unknown: %w", err)
	}
	return nil
}

// Load reads a record written by Save. The item becomes the saved kind before
// the remaining state is applied.
func (i *Item) Load(r *fileio.Reader) error {
	x, err := r.ReadFloat32()
	if err != nil {
		return fmt.Errorf("loading x: %w", err)
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return fmt.Errorf("loading y: %w", err)
	}
	i.X, i.Y = x, y

	id, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("loading id: %w", err)
	}
	if err := i.ConvertTo(id); err != nil {
		return fmt.Errorf("loading item: %w", err)
	}

	if i.used, err = r.ReadBool(); err != nil {
		return fmt.Errorf("loading used: %w", err)
	}
	if i.touched, err = r.ReadBool(); err != nil {
		return fmt.Errorf("loading touched: %w", err)
	}
	if i.delay, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("loading delay: %w", err)
	}
	if i.unknown, err = r.ReadBool(); err != nil {
		return fmt.Errorf("loading unknown: %w", err)
	}

	i.CheckMasked()
	return nil
}
