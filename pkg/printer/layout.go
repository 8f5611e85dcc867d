package printer

import (
	"strings"
	"unicode/utf8"
)

// Center left-pads s so it sits in the middle of width columns. The pad is
// floor((width-len)/2) and never negative; no trailing padding is added.
func Center(s string, width int) string {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// Divider returns a full-width line of char.
func Divider(char rune, width int) string {
	return strings.Repeat(string(char), width)
}

// KeyValue puts key on the left and value on the right of a width-column
// line, keeping at least one space between them.
// Example: "Subtotal                  100.00"
func KeyValue(key, value string, width int) string {
	spaces := width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	return key + strings.Repeat(" ", spaces) + value
}

// Truncate shortens s to max runes, ending in "..." when it had to cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// PadRight pads s with spaces to width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// PadLeft right-justifies s in width runes.
func PadLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
