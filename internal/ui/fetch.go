package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/finder"
)

// Messages

type resultMsg[T any] struct {
	result finder.Result[T]
}

type storeChangedMsg browser.Source

type watchClosedMsg struct{}

type openedMsg struct {
	url string
	err error
}

// Commands

// request asks the engine for the current query on src. A query already
// answered for src is not asked again unless force is set or the cache
// was invalidated. A cache hit is shown at once; a stale one is shown and
// revalidated.
func (m Model) request(src browser.Source, force bool) tea.Cmd {
	if m.engine == nil {
		return nil
	}
	switch src {
	case browser.SourceHistory:
		return requestPane(m, m.history, force, m.engine.CachedHistory, m.engine.History)
	case browser.SourceCookies:
		return requestPane(m, m.cookies, force, m.engine.CachedCookies, m.engine.Cookies)
	default:
		return requestPane(m, m.bookmarks, force, m.engine.CachedBookmarks, m.engine.Bookmarks)
	}
}

func requestPane[T any](
	m Model,
	p *pane[T],
	force bool,
	cached func(string) (finder.Result[T], bool),
	fetch func(context.Context, string) finder.Result[T],
) tea.Cmd {
	q := m.query
	if !force && p.fresh && p.requested == q {
		return nil
	}
	p.requested, p.fresh = q, true

	p.store.Request(q)
	if r, ok := cached(q); ok {
		if !r.Stale {
			p.store.Update(q, r.Items, nil)
			p.sync(m.listHeight(p.source))
			return nil
		}
		p.store.Seed(q, r.Items)
	}
	p.sync(m.listHeight(p.source))

	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg[T]{result: fetch(ctx, q)}
	}
}

// applyResult stores r if it answers the query the pane is waiting on. A
// failed query is asked again the next time the pane requests it.
func applyResult[T any](m Model, p *pane[T], r finder.Result[T]) {
	var err error
	if r.Err != nil {
		err = r.Err
	}
	if !p.store.Update(r.Query, r.Items, err) {
		m.log.WithFields(logrus.Fields{"source": p.source, "query": r.Query}).Debug("dropped superseded result")
		return
	}
	if err != nil && r.Query == p.requested {
		p.fresh = false
	}
	p.sync(m.listHeight(p.source))
}

// waitForChange blocks until the watcher reports a store change.
func (m Model) waitForChange() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		src, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return storeChangedMsg(src)
	}
}
