package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/config"
	"github.com/five82/trawl/internal/logging"
	"github.com/five82/trawl/internal/logtail"
)

// Print writes the results for query on source to w as tab-separated lines.
// A failed fetch is returned as an error rather than printed as an empty
// result.
func Print(ctx context.Context, opts Options, source browser.Source, query string, w io.Writer) error {
	env, err := Setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	out := bufio.NewWriter(w)
	switch source {
	case browser.SourceBookmarks:
		r := env.Engine.Bookmarks(ctx, query)
		if r.Err != nil {
			return r.Err
		}
		writeBookmarks(out, r.Items)
	case browser.SourceHistory:
		r := env.Engine.History(ctx, query)
		if r.Err != nil {
			return r.Err
		}
		writeHistory(out, r.Items)
	case browser.SourceCookies:
		r := env.Engine.Cookies(ctx, query)
		if r.Err != nil {
			return r.Err
		}
		writeCookies(out, r.Items)
	default:
		return fmt.Errorf("unknown source %q", source)
	}
	return out.Flush()
}

func writeBookmarks(w io.Writer, entries []browser.FlatEntry) {
	for _, e := range entries {
		writeRow(w, e.Title, e.URL)
	}
}

func writeHistory(w io.Writer, entries []browser.HistoryEntry) {
	for _, e := range entries {
		last := ""
		if !e.LastVisit.IsZero() {
			last = e.LastVisit.UTC().Format(time.RFC3339)
		}
		writeRow(w, e.Title, e.URL, strconv.Itoa(e.VisitCount), last)
	}
}

func writeCookies(w io.Writer, cookies []browser.Cookie) {
	for _, c := range cookies {
		value := c.Value
		if c.Encrypted {
			value = "(encrypted)"
		}
		expires := "session"
		if c.Expires != nil {
			expires = c.Expires.UTC().Format(time.RFC3339)
		}
		writeRow(w, c.Domain, c.Name, value, c.Path, flags(c), expires)
	}
}

func flags(c browser.Cookie) string {
	var f []string
	if c.Secure {
		f = append(f, "secure")
	}
	if c.HTTPOnly {
		f = append(f, "httponly")
	}
	return strings.Join(f, ",")
}

var fieldReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func writeRow(w io.Writer, fields ...string) {
	for i, f := range fields {
		fields[i] = fieldReplacer.Replace(f)
	}
	fmt.Fprintln(w, strings.Join(fields, "\t"))
}

// PrintLog writes the last n lines of trawl's log at or above level to w.
func PrintLog(opts Options, n int, level string, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	minLevel, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	lines, err := logtail.Read(cfg.LogFile, n, minLevel)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return out.Flush()
}
