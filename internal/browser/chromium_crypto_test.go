package browser

import (
	"bytes"
	"testing"
)

func TestChromiumDecryptAESCBCStripsHashPrefix(t *testing.T) {
	key := chromiumDeriveAESCBCKey("pw", chromiumAESCBCIterationsLinux)
	plain := append(bytes.Repeat([]byte{0xAA}, 32), []byte("hello")...)
	enc := encryptAESCBCForTest(t, "v10", key, plain)

	got, err := chromiumDecryptAESCBC(enc, key, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("want %q got %q", "hello", string(got))
	}

	old, err := chromiumDecryptAESCBC(encryptAESCBCForTest(t, "v10", key, []byte("hello")), key, 23, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(old) != "hello" {
		t.Fatalf("want %q got %q", "hello", string(old))
	}
}

func TestChromiumDecryptAESCBCRejectsBadInput(t *testing.T) {
	key := chromiumDeriveAESCBCKey("pw", chromiumAESCBCIterationsLinux)
	if _, err := chromiumDecryptAESCBC(nil, key, 0, false); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := chromiumDecryptAESCBC([]byte("v10abc"), key, 0, false); err == nil {
		t.Fatal("expected error for partial block")
	}
	if _, err := chromiumDecryptAESCBC([]byte("plaintext"), key, 0, false); err == nil {
		t.Fatal("expected error for missing prefix")
	}
	got, err := chromiumDecryptAESCBC([]byte("plaintext"), key, 0, true)
	if err != nil || string(got) != "plaintext" {
		t.Fatalf("expected plaintext passthrough, got %q, %v", got, err)
	}
}

func TestCBCDecryptorTriesKeysInOrder(t *testing.T) {
	wrong := chromiumDeriveAESCBCKey("wrong", chromiumAESCBCIterationsLinux)
	right := chromiumDeriveAESCBCKey("", chromiumAESCBCIterationsLinux)
	decrypt := cbcDecryptor(map[string][][]byte{"v11": {wrong, right}}, false)

	enc := encryptAESCBCForTest(t, "v11", right, []byte("value-123"))
	got, ok := decrypt(enc, 0)
	if !ok || string(got) != "value-123" {
		t.Fatalf("decrypt = %q, %v", got, ok)
	}
	if _, ok := decrypt(encryptAESCBCForTest(t, "v10", right, []byte("x")), 0); ok {
		t.Fatal("expected unknown version prefix to fail")
	}
}

func TestChromiumDecodeCookieValueStripsLeadingControlChars(t *testing.T) {
	val, ok := chromiumDecodeCookieValue([]byte{0x01, 0x02, 'o', 'k'})
	if !ok || val != "ok" {
		t.Fatalf("want %q got %q (%v)", "ok", val, ok)
	}
	if _, ok := chromiumDecodeCookieValue([]byte{0xff, 0xfe}); ok {
		t.Fatal("expected invalid utf8 to be rejected")
	}
}

func TestRemovePKCS7Padding(t *testing.T) {
	if _, err := removePKCS7Padding([]byte{1, 2, 3, 0}); err == nil {
		t.Fatal("expected zero padding to fail")
	}
	if _, err := removePKCS7Padding([]byte{1, 3, 2, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := removePKCS7Padding([]byte{1, 3, 1, 2}); err == nil {
		t.Fatal("expected mismatched padding bytes to fail")
	}
}
