package browser

import (
	"context"
	"strings"
	"time"
)

// Source names one of the host stores trawl reads from.
type Source string

const (
	SourceBookmarks Source = "bookmarks"
	SourceHistory   Source = "history"
	SourceCookies   Source = "cookies"
)

// Sources lists every source in tab order.
func Sources() []Source {
	return []Source{SourceBookmarks, SourceHistory, SourceCookies}
}

// TreeNode is one node of the bookmark forest. A node is a folder when
// Children is non-nil, even if it holds no entries.
type TreeNode struct {
	ID       string
	Title    string
	URL      string
	Children []TreeNode
}

// IsFolder reports whether the node is a folder rather than a bookmark.
func (n TreeNode) IsFolder() bool {
	return n.Children != nil
}

// FlatEntry is a bookmark projected out of the tree.
type FlatEntry struct {
	ID    string
	Title string
	URL   string
}

// HistoryEntry is a single visited page from the history store.
type HistoryEntry struct {
	ID         string
	Title      string
	URL        string
	VisitCount int
	LastVisit  time.Time
}

// Cookie is a cookie record as the browser stores it. Encrypted is set when
// the stored value could not be decrypted; Value is empty in that case.
type Cookie struct {
	Domain    string
	Name      string
	Value     string
	Path      string
	Secure    bool
	HTTPOnly  bool
	Expires   *time.Time
	Encrypted bool
}

// HistoryQuery configures SearchHistory.
type HistoryQuery struct {
	Text       string
	MaxResults int
	// ScanLimit caps how many rows are read from the store, newest or most
	// relevant first, while filling MaxResults.
	ScanLimit int
	// Match selects entries. When nil a literal substring of Text on the
	// title or URL is used.
	Match func(title, url string) bool
}

const (
	DefaultHistoryResults = 50
	DefaultHistoryScan    = 5000
)

func (q HistoryQuery) withDefaults() HistoryQuery {
	if q.MaxResults <= 0 {
		q.MaxResults = DefaultHistoryResults
	}
	if q.ScanLimit <= 0 {
		q.ScanLimit = DefaultHistoryScan
	}
	if q.ScanLimit < q.MaxResults {
		q.ScanLimit = q.MaxResults
	}
	return q
}

// Host is the read-only view of a browser profile.
type Host interface {
	// Name identifies the browser, e.g. "chrome" or "firefox".
	Name() string
	BookmarkTree(ctx context.Context) ([]TreeNode, error)
	SearchHistory(ctx context.Context, query HistoryQuery) ([]HistoryEntry, error)
	Cookies(ctx context.Context) ([]Cookie, error)
	// StorePaths lists the files backing each source.
	StorePaths() map[Source][]string
}

func (q HistoryQuery) matcher() func(title, url string) bool {
	if q.Match != nil {
		return q.Match
	}
	if q.Text == "" {
		return func(string, string) bool { return true }
	}
	text := q.Text
	return func(title, url string) bool {
		return strings.Contains(title, text) || strings.Contains(url, text)
	}
}
