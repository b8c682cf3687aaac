package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
)

func TestClassify(t *testing.T) {
	var syntaxErr error
	if err := json.Unmarshal([]byte("{"), &struct{}{}); err != nil {
		syntaxErr = err
	}

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: os.ErrPermission}, KindPermissionDenied},
		{"not exist", fmt.Errorf("read bookmarks: %w", &fs.PathError{Op: "open", Path: "/x", Err: os.ErrNotExist}), KindUnavailable},
		{"deadline", fmt.Errorf("query history: %w", context.DeadlineExceeded), KindTimeout},
		{"json", fmt.Errorf("decode bookmarks: %w", syntaxErr), KindMalformed},
		{"locked", errors.New("database is locked (5) (SQLITE_BUSY)"), KindUnavailable},
		{"not a database", errors.New("file is not a database (26)"), KindMalformed},
		{"no such table", errors.New("SQL logic error: no such table: urls (1)"), KindMalformed},
		{"other", errors.New("something odd"), KindUnavailable},
	}

	for _, tt := range tests {
		if got := classify(tt.err); got != tt.want {
			t.Fatalf("%s: classify = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAsFetchErrorKeepsExisting(t *testing.T) {
	inner := &FetchError{Source: SourceCookies, Kind: KindMalformed, Err: errors.New("bad")}
	got := AsFetchError(SourceHistory, fmt.Errorf("wrapped: %w", inner))
	if got != inner {
		t.Fatalf("expected existing FetchError to be returned, got %#v", got)
	}
	if AsFetchError(SourceHistory, nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestKindOf(t *testing.T) {
	err := fail(SourceHistory, context.DeadlineExceeded)
	kind, ok := KindOf(fmt.Errorf("engine: %w", err))
	if !ok || kind != KindTimeout {
		t.Fatalf("KindOf = %v, %v; want timeout, true", kind, ok)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected FetchError to unwrap to the cause")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("expected plain error to carry no kind")
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{Source: SourceCookies, Kind: KindPermissionDenied, Err: errors.New("open Cookies")}
	if got, want := err.Error(), "cookies: permission denied: open Cookies"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
