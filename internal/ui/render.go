package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/state"
)

const noResults = "No results."

var tabLabels = map[browser.Source]string{
	browser.SourceBookmarks: "Bookmarks",
	browser.SourceHistory:   "History",
	browser.SourceCookies:   "Cookies",
}

// renderMain renders header, input, results, status line and command bar.
func (m Model) renderMain() string {
	width, _ := m.size()
	src := m.source()

	var body string
	switch src {
	case browser.SourceHistory:
		body = renderList(m, m.history, width, m.historyLines)
	case browser.SourceCookies:
		body = m.renderCookies(width)
	default:
		body = renderList(m, m.bookmarks, width, m.bookmarkLines)
	}

	return strings.Join([]string{
		m.renderHeader(width),
		m.renderInput(width),
		body,
		m.renderStatus(width),
		m.renderCommandBar(width),
	}, "\n")
}

func (m Model) renderHeader(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("trawl", styles.Logo)}
	if m.engine != nil {
		parts = append(parts, bg.Render(m.engine.Host().Name(), styles.MutedText))
	}
	for i, src := range m.tabs {
		label := tabLabels[src]
		if i == m.active {
			parts = append(parts, styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return bg.FillLine(bg.Join(parts, " "), width)
}

func (m Model) renderInput(width int) string {
	m.input.Width = max(width-lipgloss.Width(m.input.Prompt)-1, 1)
	return NewBgStyle(m.theme.Background).FillLine(m.input.View(), width)
}

// renderList draws the windowed rows of p. Rows in the overscan margin are
// materialized too and then clipped to the viewport.
func renderList[T any](m Model, p *pane[T], width int, lines func(item T, width int, selected bool) []string) string {
	height := p.win.ViewportSize()
	bg := NewBgStyle(m.theme.SurfaceAlt)

	if text := placeholder(statusFrom(p.snap)); text != "" {
		styles := m.theme.Styles()
		msg := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(text),
			lipgloss.WithWhitespaceBackground(bg.bg))
		return msg
	}

	items := p.win.Items()
	if len(items) == 0 {
		return blankLines(bg, width, height)
	}

	first := items[0].Start
	var buf []string
	for _, it := range items {
		rows := lines(p.snap.Items[it.Index], width, it.Index == p.selected)
		for len(rows) < it.Size {
			rows = append(rows, "")
		}
		buf = append(buf, rows[:it.Size]...)
	}
	return clip(bg, buf, p.win.ScrollOffset()-first, width, height)
}

// clip returns height lines of buf starting at from, padded with blanks.
func clip(bg BgStyle, buf []string, from, width, height int) string {
	out := make([]string, 0, height)
	for i := 0; i < height; i++ {
		j := from + i
		line := ""
		if j >= 0 && j < len(buf) {
			line = buf[j]
		}
		out = append(out, bg.FillLine(line, width))
	}
	return strings.Join(out, "\n")
}

func blankLines(bg BgStyle, width, height int) string {
	return clip(bg, nil, 0, width, height)
}

// placeholder returns the text shown instead of rows, if any.
func placeholder(st status) string {
	switch {
	case st.count > 0:
		return ""
	case !st.hasItems && st.pending:
		return "Loading..."
	default:
		return noResults
	}
}

func (m Model) bookmarkLines(e browser.FlatEntry, width int, selected bool) []string {
	return m.entryLines(e.Title, e.URL, "", width, selected)
}

func (m Model) historyLines(e browser.HistoryEntry, width int, selected bool) []string {
	var meta []string
	if e.VisitCount > 0 {
		meta = append(meta, fmt.Sprintf("%d %s", e.VisitCount, plural(e.VisitCount, "visit", "visits")))
	}
	if !e.LastVisit.IsZero() {
		meta = append(meta, e.LastVisit.Local().Format("2006-01-02 15:04"))
	}
	return m.entryLines(e.Title, e.URL, strings.Join(meta, " · "), width, selected)
}

// entryLines formats a two line row: the title, then the URL with meta
// right after it.
func (m Model) entryLines(title, url, meta string, width int, selected bool) []string {
	title = singleLine(strings.TrimSpace(title))
	if title == "" {
		title = url
	}
	marker := "  "
	if selected {
		marker = "▌ "
	}
	inner := max(width-2, 1)

	second := url
	metaWidth := 0
	if meta != "" {
		metaWidth = lipgloss.Width(meta) + 3
	}
	if metaWidth > 0 && inner-metaWidth >= 16 {
		second = truncateMiddle(url, inner-metaWidth) + " · " + meta
	} else {
		second = truncateMiddle(url, inner)
	}

	if selected {
		sel := m.theme.Styles().Selected.Width(width)
		return []string{
			sel.Render(marker + fit(title, inner)),
			sel.Render("  " + fit(second, inner)),
		}
	}
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	return []string{
		styles.Text.Render(marker + truncate(title, inner)),
		styles.FaintText.Render("  " + second),
	}
}

// cookieColumns splits width into the domain, name and value columns.
func cookieColumns(width int) (domain, name, value int) {
	inner := max(width-4, 3) // marker and two column gaps
	domain = inner * 30 / 100
	name = inner * 25 / 100
	value = inner - domain - name
	return domain, name, value
}

func (m Model) renderCookies(width int) string {
	p := m.cookies
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	dw, nw, vw := cookieColumns(width)
	header := bg.FillLine(styles.TableHeader.Render("  "+fit("Domain", dw)+" "+fit("Name", nw)+" "+fit("Value", vw)), width)
	return header + "\n" + renderList(m, p, width, func(c browser.Cookie, width int, selected bool) []string {
		value := singleLine(c.Value)
		valueStyle := styles.Text
		if c.Encrypted {
			value = "(encrypted)"
			valueStyle = styles.FaintText
		}
		marker := "  "
		if selected {
			marker = "▌ "
		}
		cells := marker + fit(c.Domain, dw) + " " + fit(c.Name, nw) + " "
		if selected {
			return []string{styles.Selected.Width(width).Render(cells + fit(value, vw))}
		}
		return []string{styles.Text.Render(cells) + valueStyle.Render(fit(value, vw))}
	})
}

// renderStatus shows the result count, a pending indicator, the last
// update time and, next to whatever results are still shown, the typed
// failure of the last fetch.
func (m Model) renderStatus(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	st := m.statusOf(m.source())

	parts := []string{bg.Render(fmt.Sprintf("%d %s", st.count, plural(st.count, "result", "results")), styles.Text)}
	if st.pending {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}
	if st.err != nil {
		text := errorText(st.err)
		if st.hasItems {
			text += ", showing previous results"
		}
		parts = append(parts, bg.Render(text, styles.DangerText))
	} else if st.stale {
		parts = append(parts, bg.Render("cached", styles.WarningText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, width/2), styles.WarningText))
	}
	if !st.updated.IsZero() {
		parts = append(parts, bg.Render("updated "+st.updated.Format("15:04:05"), styles.FaintText))
	}
	return bg.FillLine(" "+bg.Join(parts, "  "), width)
}

func (m Model) renderCommandBar(width int) string {
	bg := NewBgStyle(m.theme.Surface)
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	h := m.help
	h.Width = width
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	return bg.FillLine(" "+h.View(m.keys)+bg.Spaces(2)+bg.Render(m.theme.Name, styles.FaintText), width)
}

// errorText names a fetch failure the way the status line shows it.
func errorText(err error) string {
	kind, ok := browser.KindOf(err)
	if !ok {
		return "Error: " + err.Error()
	}
	switch kind {
	case browser.KindPermissionDenied:
		return "Permission denied"
	case browser.KindTimeout:
		return "Timed out"
	case browser.KindMalformed:
		return "Unreadable store"
	default:
		return "Store unavailable"
	}
}

type status struct {
	count    int
	pending  bool
	hasItems bool
	stale    bool
	err      error
	updated  time.Time
}

func (m Model) statusOf(src browser.Source) status {
	switch src {
	case browser.SourceHistory:
		return statusFrom(m.history.snap)
	case browser.SourceCookies:
		return statusFrom(m.cookies.snap)
	default:
		return statusFrom(m.bookmarks.snap)
	}
}

func statusFrom[T any](s state.Snapshot[T]) status {
	return status{
		count:    len(s.Items),
		pending:  s.Pending,
		hasItems: s.HasItems,
		stale:    s.Stale,
		err:      s.LastError,
		updated:  s.LastUpdated,
	}
}
