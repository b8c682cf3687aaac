package browser

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

const chromiumHistoryQuery = `SELECT id, url, title, visit_count, last_visit_time
FROM urls
WHERE hidden = 0
ORDER BY last_visit_time DESC
LIMIT ?`

func (c *Chromium) SearchHistory(ctx context.Context, query HistoryQuery) ([]HistoryEntry, error) {
	query = query.withDefaults()
	var out []HistoryEntry
	err := withSnapshot(ctx, c.historyPath(), func(db *sql.DB) error {
		var err error
		out, err = scanHistory(ctx, db, chromiumHistoryQuery, query, func(v int64) time.Time {
			t, _ := chromiumTime(v)
			return t
		})
		return err
	})
	if err != nil {
		return nil, fail(SourceHistory, err)
	}
	return out, nil
}

// scanHistory reads rows of (id, url, title, visit_count, last_visit) in
// host order and keeps the first MaxResults accepted by the query matcher.
func scanHistory(ctx context.Context, db *sql.DB, stmt string, query HistoryQuery, toTime func(int64) time.Time) ([]HistoryEntry, error) {
	rows, err := db.QueryContext(ctx, stmt, query.ScanLimit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	match := query.matcher()
	out := make([]HistoryEntry, 0)
	for rows.Next() {
		var (
			id     int64
			url    string
			title  sql.NullString
			visits sql.NullInt64
			last   sql.NullInt64
		)
		if err := rows.Scan(&id, &url, &title, &visits, &last); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if !match(title.String, url) {
			continue
		}
		entry := HistoryEntry{
			ID:         strconv.FormatInt(id, 10),
			Title:      title.String,
			URL:        url,
			VisitCount: int(visits.Int64),
		}
		if last.Valid {
			entry.LastVisit = toTime(last.Int64)
		}
		out = append(out, entry)
		if len(out) >= query.MaxResults {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
