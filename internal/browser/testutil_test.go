package browser

import (
	"crypto/aes"
	"crypto/cipher"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func execSQL(t *testing.T, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func pkcs7Pad(t *testing.T, b []byte) []byte {
	t.Helper()
	paddingLen := aes.BlockSize - (len(b) % aes.BlockSize)
	out := make([]byte, 0, len(b)+paddingLen)
	out = append(out, b...)
	for i := 0; i < paddingLen; i++ {
		out = append(out, byte(paddingLen))
	}
	return out
}

func encryptAESCBCForTest(t *testing.T, prefix string, key []byte, plaintext []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	padded := pkcs7Pad(t, plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, []byte(chromiumAESCBCIV)).CryptBlocks(ciphertext, padded)
	return append([]byte(prefix), ciphertext...)
}

// chromiumMicros converts unix seconds to Chromium's 1601-based micros.
func chromiumMicros(unixSeconds int64) int64 {
	return unixSeconds*1_000_000 + chromiumEpochDiffMicros
}

func newTestChromium(t *testing.T, profileDir string) *Chromium {
	t.Helper()
	c, err := NewChromium("chrome", profileDir, nil)
	if err != nil {
		t.Fatalf("NewChromium returned error: %v", err)
	}
	return c
}

func writeChromiumHistory(t *testing.T, profileDir string) {
	t.Helper()
	db := openTestSQLite(t, filepath.Join(profileDir, "History"))
	execSQL(t, db,
		`CREATE TABLE urls (id INTEGER PRIMARY KEY, url TEXT NOT NULL, title TEXT NOT NULL DEFAULT '', visit_count INTEGER NOT NULL DEFAULT 0, typed_count INTEGER NOT NULL DEFAULT 0, last_visit_time INTEGER NOT NULL, hidden INTEGER NOT NULL DEFAULT 0)`,
	)
	rows := []struct {
		id     int
		url    string
		title  string
		visits int
		last   int64
		hidden int
	}{
		{1, "https://go.dev/doc/", "Documentation", 4, chromiumMicros(1_700_000_100), 0},
		{2, "https://news.example.com/", "新闻", 9, chromiumMicros(1_700_000_300), 0},
		{3, "https://mail.example.com/inbox", "Email", 2, chromiumMicros(1_700_000_200), 0},
		{4, "https://hidden.example.com/", "Documentation draft", 1, chromiumMicros(1_700_000_400), 1},
	}
	for _, r := range rows {
		if _, err := db.Exec(`INSERT INTO urls (id, url, title, visit_count, last_visit_time, hidden) VALUES (?, ?, ?, ?, ?, ?)`,
			r.id, r.url, r.title, r.visits, r.last, r.hidden); err != nil {
			t.Fatalf("insert url: %v", err)
		}
	}
}
