package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 40

var titleCaser = cases.Title(language.English)

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return WrapTo(text, DefaultWidth)
}

// WrapTo word-wraps text to width columns.
func WrapTo(text string, width int) string {
	return wordwrap.String(text, width)
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Title uppercases the first letter of every word, for item display names.
func Title(s string) string {
	return titleCaser.String(s)
}
