package browser

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1" //nolint:gosec // Chromium derives its legacy cookie key with PBKDF2-SHA1.
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	chromiumAESCBCSalt            = "saltysalt"
	chromiumAESCBCIV              = "                " // 16 spaces
	chromiumAESCBCIterationsLinux = 1
	chromiumAESCBCIterationsMacOS = 1003
	chromiumAESCBCKeyLen          = 16

	// Cookies DB meta versions from 24 on prefix the plaintext with a
	// SHA256 of the host key.
	chromiumHashPrefixVersion = 24
	chromiumHashPrefixLen     = 32
)

type chromiumDecryptFunc func(encrypted []byte, metaVersion int64) ([]byte, bool)

func chromiumDeriveAESCBCKey(password string, iterations int) []byte {
	return pbkdf2.Key([]byte(password), []byte(chromiumAESCBCSalt), iterations, chromiumAESCBCKeyLen, sha1.New)
}

func chromiumDecryptAESCBC(encrypted []byte, key []byte, metaVersion int64, unknownPrefixIsPlaintext bool) ([]byte, error) {
	if len(encrypted) == 0 {
		return nil, errors.New("empty encrypted value")
	}
	if !hasChromiumVersionPrefix(encrypted) {
		if !unknownPrefixIsPlaintext {
			return nil, errors.New("missing v## prefix")
		}
		return bytes.Clone(encrypted), nil
	}

	ciphertext := encrypted[3:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("cipher input not full blocks")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, []byte(chromiumAESCBCIV)).CryptBlocks(out, ciphertext)

	out, err = removePKCS7Padding(out)
	if err != nil {
		return nil, err
	}
	if metaVersion >= chromiumHashPrefixVersion && len(out) >= chromiumHashPrefixLen {
		out = out[chromiumHashPrefixLen:]
	}
	return out, nil
}

func hasChromiumVersionPrefix(b []byte) bool {
	if len(b) < 3 || b[0] != 'v' {
		return false
	}
	return isDigit(b[1]) && isDigit(b[2])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func removePKCS7Padding(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return b, nil
	}
	n := int(b[len(b)-1])
	if n <= 0 || n > aes.BlockSize || n > len(b) {
		return nil, fmt.Errorf("invalid padding length: %d", n)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("invalid padding bytes")
		}
	}
	return b[:len(b)-n], nil
}

func chromiumDecodeCookieValue(b []byte) (string, bool) {
	i := 0
	for i < len(b) && b[i] < 0x20 {
		i++
	}
	b = b[i:]
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// cbcDecryptor tries each key in order for the given version prefix.
func cbcDecryptor(keys map[string][][]byte, unknownPrefixIsPlaintext bool) chromiumDecryptFunc {
	return func(encrypted []byte, metaVersion int64) ([]byte, bool) {
		if len(encrypted) < 3 {
			return nil, false
		}
		candidates, ok := keys[string(encrypted[:3])]
		if !ok {
			if !unknownPrefixIsPlaintext || hasChromiumVersionPrefix(encrypted) {
				return nil, false
			}
			return bytes.Clone(encrypted), true
		}
		for _, key := range candidates {
			if plain, err := chromiumDecryptAESCBC(encrypted, key, metaVersion, false); err == nil {
				return plain, true
			}
		}
		return nil, false
	}
}
