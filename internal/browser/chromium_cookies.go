package browser

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const chromiumCookiesQuery = `SELECT host_key, name, path, value, encrypted_value, expires_utc, is_secure, is_httponly
FROM cookies
ORDER BY host_key, name`

type chromiumCookieRow struct {
	hostKey        string
	name           string
	path           string
	value          string
	encryptedValue []byte
	expiresUTC     int64
	isSecure       bool
	isHTTPOnly     bool
}

func (c *Chromium) Cookies(ctx context.Context) ([]Cookie, error) {
	var out []Cookie
	err := withSnapshot(ctx, c.cookiesPath(), func(db *sql.DB) error {
		metaVersion := chromiumMetaVersion(ctx, db)
		rows, err := chromiumReadCookieRows(ctx, db)
		if err != nil {
			return err
		}

		var decrypt chromiumDecryptFunc
		needsKey := false
		for _, row := range rows {
			if row.value == "" && len(row.encryptedValue) > 0 {
				needsKey = true
				break
			}
		}
		if needsKey {
			decrypt = c.decryptor(ctx)
		}

		out = make([]Cookie, 0, len(rows))
		undecrypted := 0
		for _, row := range rows {
			cookie, ok := chromiumRowToCookie(row, metaVersion, decrypt)
			if !ok {
				continue
			}
			if cookie.Encrypted {
				undecrypted++
			}
			out = append(out, cookie)
		}
		if undecrypted > 0 {
			c.log.WithField("count", undecrypted).Debug("cookies left encrypted")
		}
		return nil
	})
	if err != nil {
		return nil, fail(SourceCookies, err)
	}
	return out, nil
}

func chromiumMetaVersion(ctx context.Context, db *sql.DB) int64 {
	var value string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&value); err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func chromiumReadCookieRows(ctx context.Context, db *sql.DB) ([]chromiumCookieRow, error) {
	rows, err := db.QueryContext(ctx, chromiumCookiesQuery)
	if err != nil {
		return nil, fmt.Errorf("query cookies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []chromiumCookieRow
	for rows.Next() {
		var r chromiumCookieRow
		var value sql.NullString
		var expires, secure, httpOnly sql.NullInt64
		if err := rows.Scan(&r.hostKey, &r.name, &r.path, &value, &r.encryptedValue, &expires, &secure, &httpOnly); err != nil {
			return nil, fmt.Errorf("scan cookies: %w", err)
		}
		r.value = value.String
		r.expiresUTC = expires.Int64
		r.isSecure = secure.Valid && secure.Int64 == 1
		r.isHTTPOnly = httpOnly.Valid && httpOnly.Int64 == 1
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}
	return out, nil
}

// chromiumRowToCookie keeps cookies whose value cannot be decrypted and
// marks them Encrypted instead of dropping them.
func chromiumRowToCookie(row chromiumCookieRow, metaVersion int64, decrypt chromiumDecryptFunc) (Cookie, bool) {
	if row.name == "" || row.hostKey == "" {
		return Cookie{}, false
	}

	cookie := Cookie{
		Domain:   strings.TrimPrefix(row.hostKey, "."),
		Name:     row.name,
		Value:    row.value,
		Path:     row.path,
		Secure:   row.isSecure,
		HTTPOnly: row.isHTTPOnly,
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	if t, ok := chromiumTime(row.expiresUTC); ok {
		cookie.Expires = &t
	}

	if cookie.Value == "" && len(row.encryptedValue) > 0 {
		cookie.Encrypted = true
		if decrypt != nil {
			if plain, ok := decrypt(row.encryptedValue, metaVersion); ok {
				if decoded, ok := chromiumDecodeCookieValue(plain); ok {
					cookie.Value = decoded
					cookie.Encrypted = false
				}
			}
		}
	}
	return cookie, true
}
