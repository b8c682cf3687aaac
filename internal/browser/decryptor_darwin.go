//go:build darwin

package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func chromiumDecryptor(ctx context.Context, vendor chromiumVendor) (chromiumDecryptFunc, []string) {
	password := strings.TrimSpace(os.Getenv(envKeySafeStoragePassword(vendor)))
	if password == "" {
		pw, err := macosKeychainPassword(ctx, vendor.safeStorageService, vendor.safeStorageAccount)
		if err != nil {
			return nil, []string{fmt.Sprintf("%s: keychain read failed: %v", vendor.label, err)}
		}
		password = strings.TrimSpace(pw)
	}
	if password == "" {
		return nil, []string{fmt.Sprintf("%s: keychain returned an empty password", vendor.label)}
	}

	key := chromiumDeriveAESCBCKey(password, chromiumAESCBCIterationsMacOS)
	return cbcDecryptor(map[string][][]byte{
		"v10": {key},
	}, true), nil
}

func macosKeychainPassword(ctx context.Context, service, account string) (string, error) {
	stdout, _, err := execCapture(ctx, "security", []string{
		"find-generic-password",
		"-w",
		"-a", account,
		"-s", service,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout), nil
}
