package search

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs = newPinyinArgs()

func newPinyinArgs() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Normal
	a.Heteronym = false
	// Keep non-Han runes as they are.
	a.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}

// Normalize returns s with Han characters replaced by their first tone-less
// pinyin reading, lowercased, with no separators.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	if !hasHan(s) {
		return strings.ToLower(s)
	}
	return strings.ToLower(strings.Join(pinyin.LazyPinyin(s, pinyinArgs), ""))
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
