package storage

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/pixil98/go-rogue/internal"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

type validatingSelectable interface {
	ValidatingSpec
	Selector() string
}

// SelectableStorer renders the records of a store as a numbered menu.
type SelectableStorer[T validatingSelectable] struct {
	Storer[T]

	options []option[T]
	output  []string
}

type option[T validatingSelectable] struct {
	id  string
	val T
}

func NewSelectableStorer[T validatingSelectable](st Storer[T]) *SelectableStorer[T] {
	s := &SelectableStorer[T]{Storer: st}

	for id, val := range s.GetAll() {
		s.options = append(s.options, option[T]{id: id, val: val})
	}
	slices.SortFunc(s.options, func(a, b option[T]) int {
		if c := cmp.Compare(a.val.Selector(), b.val.Selector()); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	s.build()

	return s
}

// build lays the options out column first, left to right.
func (s *SelectableStorer[T]) build() {
	if len(s.options) == 0 {
		s.output = nil
		return
	}

	// Width of "nn. <val>  "
	colWidth := 1
	for _, v := range s.options {
		colWidth = max(colWidth, len(v.val.Selector())+7)
	}

	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max(len(s.options)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, v.val.Selector())
	}

	s.output = rows
}

// Prompt writes the menu to rw and blocks until a valid selection is entered.
// It returns the selected record id.
func (s *SelectableStorer[T]) Prompt(rw io.ReadWriter, prompt string) (string, error) {
	if len(s.options) == 0 {
		return "", fmt.Errorf("nothing to select")
	}

	if _, err := fmt.Fprintf(rw, "%s\n", prompt); err != nil {
		return "", err
	}

	for _, str := range s.output {
		if len(str) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(rw, "%s\n", str); err != nil {
			return "", err
		}
	}

	selection, err := internal.Prompt(rw, "Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

// Select returns the id for a 1-based menu position, or "" when out of range.
func (s *SelectableStorer[T]) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1].id
}
