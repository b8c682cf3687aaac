package browser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFirefoxPlaces(t *testing.T, profileDir string) {
	t.Helper()
	db := openTestSQLite(t, filepath.Join(profileDir, "places.sqlite"))
	execSQL(t, db,
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url TEXT, title TEXT, visit_count INTEGER DEFAULT 0, hidden INTEGER DEFAULT 0, frecency INTEGER DEFAULT -1, last_visit_date INTEGER)`,
		`CREATE TABLE moz_bookmarks (id INTEGER PRIMARY KEY, type INTEGER, fk INTEGER DEFAULT NULL, parent INTEGER, position INTEGER, title TEXT, guid TEXT)`,

		`INSERT INTO moz_places (id, url, title, visit_count, frecency, last_visit_date) VALUES
			(10, 'https://mail.example.com/', 'Email', 3, 100, 1700000100000000),
			(11, 'https://news.example.com/', '新闻', 5, 900, 1700000050000000),
			(12, 'https://go.dev/', 'Go', 1, 500, 1700000200000000),
			(13, 'https://never.example.com/', 'Never visited', 0, 2000, NULL)`,

		`INSERT INTO moz_bookmarks (id, type, fk, parent, position, title, guid) VALUES
			(1, 2, NULL, 0, 0, '', 'root________'),
			(2, 2, NULL, 1, 0, 'menu', 'menu________'),
			(3, 2, NULL, 1, 1, 'toolbar', 'toolbar_____'),
			(4, 2, NULL, 1, 2, 'tags', 'tags________'),
			(20, 1, 10, 3, 0, 'Email', 'bm-email'),
			(21, 3, NULL, 3, 1, NULL, 'bm-sep'),
			(22, 2, NULL, 3, 2, 'Work', 'bm-work'),
			(23, 1, 11, 22, 0, '新闻', 'bm-news'),
			(24, 2, NULL, 4, 0, 'golang', 'tag-go'),
			(25, 1, 12, 24, 0, NULL, 'tag-go-ref')`,
	)
}

func TestFirefoxBookmarkTree(t *testing.T) {
	dir := t.TempDir()
	writeFirefoxPlaces(t, dir)
	f := NewFirefox(dir, nil)

	forest, err := f.BookmarkTree(context.Background())
	if err != nil {
		t.Fatalf("BookmarkTree returned error: %v", err)
	}
	if len(forest) != 1 || forest[0].ID != "1" {
		t.Fatalf("expected single root, got %+v", forest)
	}
	roots := forest[0].Children
	if len(roots) != 2 {
		t.Fatalf("expected menu and toolbar (tags dropped), got %+v", roots)
	}
	menu, toolbar := roots[0], roots[1]
	if !menu.IsFolder() || len(menu.Children) != 0 {
		t.Fatalf("expected empty menu folder, got %+v", menu)
	}
	if len(toolbar.Children) != 2 {
		t.Fatalf("expected separator dropped, got %+v", toolbar.Children)
	}
	if toolbar.Children[0].URL != "https://mail.example.com/" || toolbar.Children[0].IsFolder() {
		t.Fatalf("unexpected first toolbar child %+v", toolbar.Children[0])
	}
	work := toolbar.Children[1]
	if !work.IsFolder() || work.Children[0].Title != "新闻" {
		t.Fatalf("unexpected Work folder %+v", work)
	}
}

func TestBuildFirefoxForestBreaksCycles(t *testing.T) {
	rows := []firefoxBookmarkRow{
		{id: 5, parent: 6, kind: firefoxTypeFolder, title: "a"},
		{id: 6, parent: 5, kind: firefoxTypeFolder, title: "b"},
	}
	forest := buildFirefoxForest(rows)
	if len(forest) != 0 {
		t.Fatalf("expected unreachable cycle to be dropped, got %+v", forest)
	}
}

func TestFirefoxSearchHistory(t *testing.T) {
	dir := t.TempDir()
	writeFirefoxPlaces(t, dir)
	f := NewFirefox(dir, nil)

	got, err := f.SearchHistory(context.Background(), HistoryQuery{})
	if err != nil {
		t.Fatalf("SearchHistory returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected unvisited place excluded, got %d", len(got))
	}
	if got[0].Title != "新闻" || got[1].Title != "Go" || got[2].Title != "Email" {
		t.Fatalf("expected frecency order, got %q %q %q", got[0].Title, got[1].Title, got[2].Title)
	}
	if got[0].LastVisit.Unix() != 1_700_000_050 {
		t.Fatalf("unexpected last visit %v", got[0].LastVisit)
	}
}

func TestFirefoxCookies(t *testing.T) {
	dir := t.TempDir()
	db := openTestSQLite(t, filepath.Join(dir, "cookies.sqlite"))
	execSQL(t, db,
		`CREATE TABLE moz_cookies (id INTEGER PRIMARY KEY, name TEXT, value TEXT, host TEXT, path TEXT, expiry INTEGER, isSecure INTEGER, isHttpOnly INTEGER)`,
		`INSERT INTO moz_cookies (name, value, host, path, expiry, isSecure, isHttpOnly) VALUES
			('sid', 'abc', '.example.com', '/', 1800000000, 1, 1),
			('pref', 'dark', 'news.example.com', '', 1800000000123, 0, 0),
			('', 'skip', 'example.com', '/', 0, 0, 0)`,
	)

	cookies, err := NewFirefox(dir, nil).Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies returned error: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("expected nameless cookie skipped, got %d", len(cookies))
	}
	if c := cookies[0]; c.Domain != "example.com" || c.Name != "sid" || !c.Secure || !c.HTTPOnly || c.Expires.Unix() != 1_800_000_000 {
		t.Fatalf("unexpected first cookie %+v", c)
	}
	if c := cookies[1]; c.Path != "/" || c.Expires.UnixMilli() != 1_800_000_000_123 {
		t.Fatalf("expected millisecond expiry and default path, got %+v", c)
	}
}

func TestFirefoxMissingStore(t *testing.T) {
	f := NewFirefox(filepath.Join(t.TempDir(), "gone"), nil)
	_, err := f.Cookies(context.Background())
	if kind, ok := KindOf(err); !ok || kind != KindUnavailable {
		t.Fatalf("kind = %v, %v; want unavailable (%v)", kind, ok, err)
	}
}

func TestFirefoxProfileFromINI(t *testing.T) {
	root := t.TempDir()
	ini := `[General]
StartWithLastProfile=1

[Profile1]
Name=work
IsRelative=1
Path=Profiles/abcd.work

[Profile0]
Name=default-release
IsRelative=1
Path=Profiles/wxyz.default-release
Default=1

[Install4F96D1932A9F858E]
Default=Profiles/wxyz.default-release
Locked=1
`
	if err := os.WriteFile(filepath.Join(root, "profiles.ini"), []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		want string
		path string
		ok   bool
	}{
		{"", filepath.Join(root, "Profiles", "wxyz.default-release"), true},
		{"work", filepath.Join(root, "Profiles", "abcd.work"), true},
		{"abcd.work", filepath.Join(root, "Profiles", "abcd.work"), true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		got, ok, err := firefoxProfileFromINI(root, tt.want)
		if err != nil {
			t.Fatalf("firefoxProfileFromINI(%q) returned error: %v", tt.want, err)
		}
		if ok != tt.ok || got != tt.path {
			t.Fatalf("firefoxProfileFromINI(%q) = %q, %v; want %q, %v", tt.want, got, ok, tt.path, tt.ok)
		}
	}
}

func TestFirefoxExpiry(t *testing.T) {
	if _, ok := firefoxExpiry(0); ok {
		t.Fatal("expected zero expiry to be a session cookie")
	}
	sec, _ := firefoxExpiry(1_800_000_000)
	ms, _ := firefoxExpiry(1_800_000_000_000)
	if !sec.Equal(ms) {
		t.Fatalf("expected seconds and millis to agree: %v vs %v", sec, ms)
	}
}
