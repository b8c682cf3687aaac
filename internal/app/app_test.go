package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/config"
	"github.com/five82/trawl/internal/logging"
)

const bookmarksJSON = `{
  "roots": {
    "bookmark_bar": {"id": "1", "name": "Bookmarks bar", "type": "folder", "children": [
      {"id": "2", "name": "News", "type": "url", "url": "https://news.test"},
      {"id": "3", "name": "Work", "type": "folder", "children": [
        {"id": "4", "name": "Email", "type": "url", "url": "https://mail.test"}
      ]}
    ]},
    "other": {"id": "5", "name": "Other", "type": "folder", "children": []}
  }
}`

// writeProfile creates a Chromium profile dir holding a Bookmarks file and a
// config pointing at it.
func writeProfile(t *testing.T) (configPath string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)

	profile := filepath.Join(root, "profile")
	if err := os.MkdirAll(profile, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(profile, "Bookmarks"), []byte(bookmarksJSON), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	configPath = filepath.Join(root, "config.toml")
	body := "browser = \"chromium\"\nprofile = \"" + filepath.ToSlash(profile) + "\"\nlog_file = \"" +
		filepath.ToSlash(filepath.Join(root, "trawl.log")) + "\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return configPath
}

func TestPrintBookmarks(t *testing.T) {
	cfgPath := writeProfile(t)

	var out bytes.Buffer
	if err := Print(context.Background(), Options{ConfigPath: cfgPath}, browser.SourceBookmarks, "mail", &out); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if got, want := out.String(), "Email\thttps://mail.test\n"; got != want {
		t.Fatalf("Print = %q, want %q", got, want)
	}
}

func TestPrintMissingStoreIsTypedError(t *testing.T) {
	cfgPath := writeProfile(t)

	var out bytes.Buffer
	err := Print(context.Background(), Options{ConfigPath: cfgPath}, browser.SourceHistory, "", &out)
	if err == nil {
		t.Fatalf("Print returned nil error for missing History")
	}
	var fe *browser.FetchError
	if !errors.As(err, &fe) || fe.Source != browser.SourceHistory {
		t.Fatalf("Print error = %v, want history FetchError", err)
	}
	if out.Len() != 0 {
		t.Fatalf("Print wrote %q on failure", out.String())
	}
}

func TestSetupAppliesOverrides(t *testing.T) {
	cfgPath := writeProfile(t)

	env, err := Setup(context.Background(), Options{ConfigPath: cfgPath, Browser: " Firefox ", Popup: true})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer func() { _ = env.Close() }()

	if env.Config.Browser != "firefox" || env.Host.Name() != "firefox" {
		t.Fatalf("browser override not applied: %q / %q", env.Config.Browser, env.Host.Name())
	}
	if env.Config.Layout != config.LayoutPopup {
		t.Fatalf("Layout = %q, want popup", env.Config.Layout)
	}
}

func TestSetupRejectsUnknownBrowser(t *testing.T) {
	cfgPath := writeProfile(t)
	if _, err := Setup(context.Background(), Options{ConfigPath: cfgPath, Browser: "netscape"}); err == nil {
		t.Fatalf("Setup returned nil error for unknown browser")
	}
}

func TestWriteHistoryAndCookies(t *testing.T) {
	var out bytes.Buffer
	visited := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	writeHistory(&out, []browser.HistoryEntry{
		{Title: "Go\tdocs", URL: "https://go.dev", VisitCount: 3, LastVisit: visited},
		{Title: "Never", URL: "https://never.test"},
	})
	want := "Go docs\thttps://go.dev\t3\t2024-03-01T12:00:00Z\nNever\thttps://never.test\t0\t\n"
	if out.String() != want {
		t.Fatalf("writeHistory = %q, want %q", out.String(), want)
	}

	out.Reset()
	writeCookies(&out, []browser.Cookie{
		{Domain: "example.com", Name: "sid", Value: "v", Path: "/", Secure: true, HTTPOnly: true, Expires: &visited},
		{Domain: "go.dev", Name: "enc", Path: "/", Encrypted: true},
	})
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("writeCookies lines = %d", len(lines))
	}
	if lines[0] != "example.com\tsid\tv\t/\tsecure,httponly\t2024-03-01T12:00:00Z" {
		t.Fatalf("cookie line = %q", lines[0])
	}
	if lines[1] != "go.dev\tenc\t(encrypted)\t/\t\tsession" {
		t.Fatalf("encrypted cookie line = %q", lines[1])
	}
}

type pathsOnlyHost struct {
	browser.Host
	paths map[browser.Source][]string
}

func (h pathsOnlyHost) StorePaths() map[browser.Source][]string { return h.paths }

func TestStartWatcherDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Bookmarks")
	if err := os.WriteFile(file, []byte("{}"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	events, stop := startWatcher(pathsOnlyHost{paths: map[browser.Source][]string{browser.SourceBookmarks: {file}}}, logging.Discard())
	defer stop()

	if err := os.WriteFile(file, []byte(`{"roots":{}}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	select {
	case src := <-events:
		if src != browser.SourceBookmarks {
			t.Fatalf("event = %s, want bookmarks", src)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change event")
	}
}

func TestPrintLogTailsConfiguredFile(t *testing.T) {
	cfgPath := writeProfile(t)
	env, err := Setup(context.Background(), Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	env.Log.Warn("first warning")
	env.Log.Debug("noise")
	if err := env.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var out bytes.Buffer
	if err := PrintLog(Options{ConfigPath: cfgPath}, 10, "warn", &out); err != nil {
		t.Fatalf("PrintLog returned error: %v", err)
	}
	if !strings.Contains(out.String(), "first warning") || strings.Contains(out.String(), "noise") {
		t.Fatalf("PrintLog = %q", out.String())
	}
	if strings.Contains(out.String(), "trawl started") {
		t.Fatalf("info line passed a warn filter: %q", out.String())
	}
}
