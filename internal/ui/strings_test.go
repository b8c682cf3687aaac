package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateCountsCells(t *testing.T) {
	if got := truncate("  hello  ", 10); got != "hello" {
		t.Fatalf("truncate = %q, want hello", got)
	}
	got := truncate("百度一下你就知道", 7)
	if w := runewidth.StringWidth(got); w > 7 {
		t.Fatalf("truncate(CJK) = %q is %d cells, want <= 7", got, w)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate limit 0 = %q, want empty", got)
	}
}

func TestTruncateMiddleKeepsBothEnds(t *testing.T) {
	url := "https://example.com/a/very/long/path/index.html"
	got := truncateMiddle(url, 24)
	if w := runewidth.StringWidth(got); w > 24 {
		t.Fatalf("truncateMiddle = %q is %d cells", got, w)
	}
	if got[:8] != "https://" {
		t.Fatalf("head lost: %q", got)
	}
	if got[len(got)-4:] != "html" {
		t.Fatalf("tail lost: %q", got)
	}
	if got := truncateMiddle("short", 24); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestFitPadsToWidth(t *testing.T) {
	for _, in := range []string{"", "ab", "新闻标题", "a much longer value than the column"} {
		if w := runewidth.StringWidth(fit(in, 9)); w != 9 {
			t.Fatalf("fit(%q, 9) is %d cells", in, w)
		}
	}
}

func TestSingleLine(t *testing.T) {
	if got := singleLine("a\tb\nc\x01"); got != "a b c" {
		t.Fatalf("singleLine = %q", got)
	}
}
