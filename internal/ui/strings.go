package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate shortens value to at most limit terminal cells. Wide runes such
// as CJK count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= runewidth.StringWidth(ellipsis) {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

// truncateMiddle keeps the head and the tail of value, which suits URLs
// whose host and last path segment matter most.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}

	keep := limit - runewidth.StringWidth(ellipsis)
	head := runewidth.Truncate(value, keep-keep/2, "")
	tail := tailWidth(value, keep/2)
	return head + ellipsis + tail
}

// tailWidth returns the longest suffix of value that fits in width cells.
func tailWidth(value string, width int) string {
	runes := []rune(value)
	used := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return string(runes[i:])
}

// fit truncates value to width cells and pads it with spaces to exactly
// width cells.
func fit(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(truncate(value, width), width)
}

// singleLine collapses control characters so a stored title cannot break
// the row layout.
func singleLine(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, value)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
