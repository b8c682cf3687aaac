// Package ui is trawl's terminal interface, built on Bubble Tea.
//
// # Architecture Overview
//
// A single Model owns one text input, three tabs (Bookmarks, History,
// Cookies) and, per tab, a pane holding a state.Store, a window.Virtualizer
// and the selection. The input is always focused and its value is the live
// query: every change issues a request for the active tab only. Other tabs
// catch up when they are shown.
//
// # Package Structure
//
//   - model.go: Model, Options, Update and key handling, Run
//   - fetch.go: messages and the commands that talk to the finder engine
//   - pane.go: per-tab store, windowing and selection
//   - render.go: header, result list, cookie table, status line and command bar
//   - help.go: help overlay
//   - keys.go: key bindings (bubbles/key)
//   - theme.go: color themes and Lipgloss styles
//   - style_helpers.go: BgStyle for backgrounds across styled segments
//   - strings.go: cell-width aware truncation (go-runewidth)
//
// # Data Flow
//
// A request first consults the engine's cache. A fresh hit is shown in the
// same Update; a stale hit is shown and revalidated; a miss marks the store
// pending and keeps the previous results visible until the answer arrives.
// Answers for a query that is no longer wanted are dropped by the store, so
// a slow keystroke cannot overwrite a newer one.
//
// When the watcher reports that a browser store changed, the engine's cache
// for that source is invalidated and, if the tab is active, the current
// query is asked again.
//
// # Rendering
//
// Bookmark and history rows are two lines (title, then URL). Cookie rows are
// one line in a Domain / Name / Value table. Only the rows the virtualizer
// returns are formatted, so a 10,000 cookie profile costs the same to draw as
// a ten cookie one. Widths are measured in terminal cells, so CJK titles
// truncate without breaking the layout.
//
// # Status Line
//
// The status line shows the result count, a spinner while a request is
// pending, the time of the last update and, when the last fetch failed, its
// kind: "Permission denied", "Store unavailable", "Timed out" or
// "Unreadable store". Results from before the failure stay on screen.
//
// # Layouts
//
// LayoutFull uses the alternate screen and the whole terminal. LayoutPopup
// renders inline in a box of at most 80x24 cells.
//
// # Key Bindings
//
// Printable keys edit the query, so navigation uses arrows, page keys and
// control chords: up/down or ctrl+p/ctrl+n, pgup/pgdown, home/end, enter to
// open the selection, tab/shift+tab or alt+1..3 to switch tabs, ctrl+r to
// reload, ctrl+t to cycle the theme, esc to clear the query (or quit when it
// is empty) and ctrl+c to quit. "?" opens help while the query is empty.
//
// Theme and tab are saved to the prefs file on theme change and on quit.
package ui
