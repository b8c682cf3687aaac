// Package app is the composition root for trawl.
//
// # Overview
//
// This package wires together configuration, logging, the browser host, the
// finder engine, the store watcher and the UI. Every entry point (the TUI
// and the print subcommands) goes through Setup, so flags and config are
// applied the same way everywhere.
//
// # Architecture
//
// Setup follows a fixed order:
//
//  1. Load ~/.config/trawl/config.toml (or --config) and apply flag overrides
//  2. Open the log file; the terminal belongs to the TUI
//  3. Resolve the browser profile and build a browser.Host
//  4. Build the finder.Engine with the configured limits, timeout and cache
//
// Run then loads preferences, starts the store watcher when `watch = true`
// and hands everything to ui.Run, which blocks until the user quits or the
// context is cancelled. Print and PrintLog write tab-separated results or
// log lines to a writer and return.
//
// # Components
//
//   - app.go: Options, Env, Setup and Run
//   - watcher.go: background store watcher feeding the UI
//   - print.go: non-interactive output for `trawl bookmarks|history|cookies|log`
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()    Read trawl config
//	       ├─────> logging.New()    Open log file
//	       ├─────> browser.Open()   Resolve profile stores
//	       ├─────> finder.New()     Cache + timeouts over the host
//	       ├─────> startWatcher()   fsnotify on store directories
//	       └─────> ui.Run()         Start TUI (blocks)
//
// # Error Handling
//
// Setup failures are returned wrapped ("load config: ...", "open browser
// profile: ..."), and cmd/trawl prints them as `trawl: <err>` with exit code
// 1. Fetch failures inside the TUI are shown on the status line instead. In
// the print subcommands a fetch failure is returned as the *browser.FetchError
// so a script never mistakes an unreadable store for an empty result.
//
// A watcher that cannot start is logged and live reload is turned off; the
// UI still refreshes on ctrl+r.
package app
