package search

import (
	"testing"

	"github.com/five82/trawl/internal/browser"
)

type entry = browser.FlatEntry

func TestRankPutsFuzzyHitsFirst(t *testing.T) {
	items := []entry{
		{ID: "1", Title: "Calendar", URL: "https://cal.test"},
		{ID: "2", Title: "Go Documentation", URL: "https://go.dev/doc"},
		{ID: "3", Title: "Groceries", URL: "https://shop.test"},
	}
	got := Rank("godoc", items, func(e entry) string { return e.Title + " " + e.URL })
	if len(got) != 3 {
		t.Fatalf("expected all items kept, got %d", len(got))
	}
	if got[0].ID != "2" {
		t.Fatalf("expected Go Documentation first, got %+v", got)
	}
	if got[1].ID != "1" || got[2].ID != "3" {
		t.Fatalf("expected non-hits in original order, got %s %s", got[1].ID, got[2].ID)
	}
}

func TestRankMatchesPinyin(t *testing.T) {
	items := []entry{
		{ID: "1", Title: "Weather"},
		{ID: "2", Title: "新闻"},
	}
	got := Rank("xw", items, func(e entry) string { return e.Title })
	if got[0].ID != "2" {
		t.Fatalf("expected pinyin title ranked first, got %+v", got)
	}
}

func TestRankEmptyQueryCopies(t *testing.T) {
	items := []entry{{ID: "1"}, {ID: "2"}}
	got := Rank("", items, func(e entry) string { return e.Title })
	if len(got) != 2 || got[0].ID != "1" {
		t.Fatalf("unexpected order %+v", got)
	}
	got[0].ID = "x"
	if items[0].ID != "1" {
		t.Fatal("rank result aliases its input")
	}
}

func TestParseRankMode(t *testing.T) {
	if m, err := ParseRankMode(""); err != nil || m != RankNone {
		t.Fatalf("ParseRankMode(\"\") = %v, %v", m, err)
	}
	if m, err := ParseRankMode(" Fuzzy "); err != nil || m != RankFuzzy {
		t.Fatalf("ParseRankMode(fuzzy) = %v, %v", m, err)
	}
	if _, err := ParseRankMode("best"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
