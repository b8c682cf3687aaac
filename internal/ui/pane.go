package ui

import (
	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/state"
	"github.com/five82/trawl/internal/window"
)

// pane is the per-tab view state: the result store, the windowing over its
// items and the selection.
type pane[T any] struct {
	source  browser.Source
	store   *state.Store[T]
	win     *window.Virtualizer
	rowSize int

	// snap is the store snapshot taken at the last sync. View reads only
	// this, so rendering never copies the result slice.
	snap     state.Snapshot[T]
	shown    string
	selected int

	// requested is the query last sent to the engine. fresh is cleared when
	// the cache for source is invalidated.
	requested string
	fresh     bool
}

// tabPane is the type-independent part of a pane the key handlers use.
type tabPane interface {
	sync(viewport int)
	count() int
	move(delta int)
	moveTo(i int)
	page() int
	invalidate()
}

func newPane[T any](source browser.Source, rowSize, overscan int) *pane[T] {
	return &pane[T]{
		source:  source,
		store:   &state.Store[T]{},
		rowSize: rowSize,
		win: window.New(window.Options{
			EstimateSize: func(int) int { return rowSize },
			Overscan:     overscan,
		}),
	}
}

func (p *pane[T]) sync(viewport int) {
	p.snap = p.store.Snapshot()
	if p.snap.Query != p.shown {
		p.shown = p.snap.Query
		p.selected = 0
		p.win.ScrollTo(0)
	}
	p.win.SetCount(len(p.snap.Items))
	p.win.SetViewportSize(viewport)
	p.moveTo(p.selected)
}

func (p *pane[T]) count() int { return len(p.snap.Items) }

func (p *pane[T]) move(delta int) { p.moveTo(p.selected + delta) }

func (p *pane[T]) moveTo(i int) {
	n := p.count()
	if n == 0 {
		p.selected = 0
		p.win.ScrollTo(0)
		return
	}
	p.selected = min(max(i, 0), n-1)
	p.win.ScrollToIndex(p.selected)
}

// page is the number of rows that fit in the viewport.
func (p *pane[T]) page() int {
	return max(p.win.ViewportSize()/p.rowSize, 1)
}

func (p *pane[T]) invalidate() { p.fresh = false }

// current returns the selected item.
func (p *pane[T]) current() (T, bool) {
	var zero T
	if p.selected < 0 || p.selected >= p.count() {
		return zero, false
	}
	return p.snap.Items[p.selected], true
}
