package browser

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/logging"
)

// Firefox reads a Firefox profile directory.
type Firefox struct {
	profileDir string
	log        logrus.FieldLogger
}

var _ Host = (*Firefox)(nil)

// NewFirefox returns a host reading profileDir.
func NewFirefox(profileDir string, log logrus.FieldLogger) *Firefox {
	return &Firefox{
		profileDir: profileDir,
		log:        logging.OrDiscard(log).WithField("browser", "firefox"),
	}
}

func (f *Firefox) Name() string { return "firefox" }

// ProfileDir returns the profile directory the host reads.
func (f *Firefox) ProfileDir() string { return f.profileDir }

func (f *Firefox) placesPath() string { return filepath.Join(f.profileDir, "places.sqlite") }

func (f *Firefox) cookiesPath() string { return filepath.Join(f.profileDir, "cookies.sqlite") }

func (f *Firefox) StorePaths() map[Source][]string {
	return map[Source][]string{
		SourceBookmarks: {f.placesPath()},
		SourceHistory:   {f.placesPath()},
		SourceCookies:   {f.cookiesPath()},
	}
}

const (
	firefoxTypeBookmark  = 1
	firefoxTypeFolder    = 2
	firefoxTypeSeparator = 3

	firefoxTagsRootGUID = "tags________"
)

const firefoxBookmarksQuery = `SELECT b.id, b.parent, b.type, COALESCE(b.title, ''), COALESCE(b.guid, ''), COALESCE(p.url, '')
FROM moz_bookmarks b
LEFT JOIN moz_places p ON p.id = b.fk
ORDER BY b.parent, b.position`

type firefoxBookmarkRow struct {
	id     int64
	parent int64
	kind   int64
	title  string
	guid   string
	url    string
}

func (f *Firefox) BookmarkTree(ctx context.Context) ([]TreeNode, error) {
	var rows []firefoxBookmarkRow
	err := withSnapshot(ctx, f.placesPath(), func(db *sql.DB) error {
		var err error
		rows, err = firefoxReadBookmarkRows(ctx, db)
		return err
	})
	if err != nil {
		return nil, fail(SourceBookmarks, err)
	}
	return buildFirefoxForest(rows), nil
}

func firefoxReadBookmarkRows(ctx context.Context, db *sql.DB) ([]firefoxBookmarkRow, error) {
	rows, err := db.QueryContext(ctx, firefoxBookmarksQuery)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []firefoxBookmarkRow
	for rows.Next() {
		var r firefoxBookmarkRow
		if err := rows.Scan(&r.id, &r.parent, &r.kind, &r.title, &r.guid, &r.url); err != nil {
			return nil, fmt.Errorf("scan bookmarks: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	return out, nil
}

// buildFirefoxForest rebuilds the tree from rows ordered by parent and
// position. Separators and the tags root are dropped, and a row is never
// visited twice so a corrupt parent cycle cannot recurse forever.
func buildFirefoxForest(rows []firefoxBookmarkRow) []TreeNode {
	children := make(map[int64][]firefoxBookmarkRow)
	known := make(map[int64]bool, len(rows))
	for _, r := range rows {
		known[r.id] = true
	}
	var roots []firefoxBookmarkRow
	for _, r := range rows {
		if r.parent == 0 || !known[r.parent] {
			roots = append(roots, r)
			continue
		}
		children[r.parent] = append(children[r.parent], r)
	}

	visited := make(map[int64]bool, len(rows))
	var build func(r firefoxBookmarkRow) (TreeNode, bool)
	build = func(r firefoxBookmarkRow) (TreeNode, bool) {
		if visited[r.id] || r.kind == firefoxTypeSeparator || r.guid == firefoxTagsRootGUID {
			return TreeNode{}, false
		}
		visited[r.id] = true

		node := TreeNode{ID: strconv.FormatInt(r.id, 10), Title: r.title}
		if r.kind != firefoxTypeFolder {
			node.URL = r.url
			return node, true
		}
		node.Children = make([]TreeNode, 0, len(children[r.id]))
		for _, child := range children[r.id] {
			if n, ok := build(child); ok {
				node.Children = append(node.Children, n)
			}
		}
		return node, true
	}

	forest := make([]TreeNode, 0, len(roots))
	for _, r := range roots {
		if n, ok := build(r); ok {
			forest = append(forest, n)
		}
	}
	return forest
}

const firefoxHistoryQuery = `SELECT id, url, title, visit_count, last_visit_date
FROM moz_places
WHERE hidden = 0 AND visit_count > 0
ORDER BY frecency DESC, last_visit_date DESC
LIMIT ?`

func (f *Firefox) SearchHistory(ctx context.Context, query HistoryQuery) ([]HistoryEntry, error) {
	query = query.withDefaults()
	var out []HistoryEntry
	err := withSnapshot(ctx, f.placesPath(), func(db *sql.DB) error {
		var err error
		out, err = scanHistory(ctx, db, firefoxHistoryQuery, query, func(micros int64) time.Time {
			if micros <= 0 {
				return time.Time{}
			}
			return time.UnixMicro(micros).UTC()
		})
		return err
	})
	if err != nil {
		return nil, fail(SourceHistory, err)
	}
	return out, nil
}

const firefoxCookiesQuery = `SELECT host, name, value, path, expiry, isSecure, isHttpOnly
FROM moz_cookies
ORDER BY host, name`

func (f *Firefox) Cookies(ctx context.Context) ([]Cookie, error) {
	var out []Cookie
	err := withSnapshot(ctx, f.cookiesPath(), func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, firefoxCookiesQuery)
		if err != nil {
			return fmt.Errorf("query cookies: %w", err)
		}
		defer func() { _ = rows.Close() }()

		out = make([]Cookie, 0)
		for rows.Next() {
			var host, name string
			var value, path sql.NullString
			var expiry, secure, httpOnly sql.NullInt64
			if err := rows.Scan(&host, &name, &value, &path, &expiry, &secure, &httpOnly); err != nil {
				return fmt.Errorf("scan cookies: %w", err)
			}
			if host == "" || name == "" {
				continue
			}
			cookie := Cookie{
				Domain:   strings.TrimPrefix(host, "."),
				Name:     name,
				Value:    value.String,
				Path:     path.String,
				Secure:   secure.Valid && secure.Int64 == 1,
				HTTPOnly: httpOnly.Valid && httpOnly.Int64 == 1,
			}
			if cookie.Path == "" {
				cookie.Path = "/"
			}
			if t, ok := firefoxExpiry(expiry.Int64); ok {
				cookie.Expires = &t
			}
			out = append(out, cookie)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("read cookies: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fail(SourceCookies, err)
	}
	return out, nil
}

// firefoxExpiry accepts seconds, or milliseconds as newer versions write.
func firefoxExpiry(v int64) (time.Time, bool) {
	if v <= 0 {
		return time.Time{}, false
	}
	if v > 1e11 {
		return time.UnixMilli(v).UTC(), true
	}
	return time.Unix(v, 0).UTC(), true
}

// resolveFirefoxProfile maps a profile argument to a profile directory. It
// accepts an existing directory or a profile name or directory basename
// from profiles.ini. Empty picks the install default, then the profile
// marked Default=1, then the first listed.
func resolveFirefoxProfile(profile string) (string, error) {
	profile = strings.TrimSpace(profile)
	if profile != "" && dirExists(profile) {
		return profile, nil
	}

	for _, root := range firefoxRoots() {
		dir, ok, err := firefoxProfileFromINI(root, profile)
		if err != nil {
			return "", err
		}
		if ok {
			return dir, nil
		}
	}
	if profile != "" {
		return "", &FetchError{Source: SourceBookmarks, Kind: KindUnavailable, Err: fmt.Errorf("firefox profile %q not found: %w", profile, os.ErrNotExist)}
	}
	return "", &FetchError{Source: SourceBookmarks, Kind: KindUnavailable, Err: fmt.Errorf("no firefox profile found: %w", os.ErrNotExist)}
}

func firefoxProfileFromINI(root, want string) (string, bool, error) {
	iniPath := filepath.Join(root, "profiles.ini")
	if !fileExists(iniPath) {
		return "", false, nil
	}
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return "", false, fmt.Errorf("parse %s: %w", iniPath, err)
	}

	resolve := func(sec *ini.Section) string {
		p := filepath.FromSlash(sec.Key("Path").String())
		if p == "" {
			return ""
		}
		if sec.Key("IsRelative").String() == "1" || !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		return p
	}

	var installDefault, markedDefault, first string
	for _, name := range cfg.SectionStrings() {
		sec := cfg.Section(name)
		switch {
		case strings.HasPrefix(name, "Install"):
			if installDefault == "" {
				if p := sec.Key("Default").String(); p != "" {
					installDefault = filepath.FromSlash(p)
					if !filepath.IsAbs(installDefault) {
						installDefault = filepath.Join(root, installDefault)
					}
				}
			}
		case strings.HasPrefix(name, "Profile"):
			dir := resolve(sec)
			if dir == "" {
				continue
			}
			if want != "" {
				if sec.Key("Name").String() == want || filepath.Base(dir) == want {
					return dir, true, nil
				}
				continue
			}
			if first == "" {
				first = dir
			}
			if markedDefault == "" && sec.Key("Default").String() == "1" {
				markedDefault = dir
			}
		}
	}
	if want != "" {
		return "", false, nil
	}
	for _, dir := range []string{installDefault, markedDefault, first} {
		if dir != "" {
			return dir, true, nil
		}
	}
	return "", false, nil
}
