//go:build linux

package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

type linuxKeyringBackend string

const (
	linuxKeyringGnome   linuxKeyringBackend = "gnome"
	linuxKeyringKWallet linuxKeyringBackend = "kwallet"
	linuxKeyringBasic   linuxKeyringBackend = "basic"
)

func chromiumDecryptor(ctx context.Context, vendor chromiumVendor) (chromiumDecryptFunc, []string) {
	password, warnings := linuxSafeStoragePassword(ctx, vendor)

	v10Key := chromiumDeriveAESCBCKey("peanuts", chromiumAESCBCIterationsLinux)
	emptyKey := chromiumDeriveAESCBCKey("", chromiumAESCBCIterationsLinux)
	v11Key := chromiumDeriveAESCBCKey(password, chromiumAESCBCIterationsLinux)

	return cbcDecryptor(map[string][][]byte{
		"v10": {v10Key, emptyKey},
		"v11": {v11Key, emptyKey},
	}, false), warnings
}

func linuxSafeStoragePassword(ctx context.Context, vendor chromiumVendor) (string, []string) {
	if override := strings.TrimSpace(os.Getenv(envKeySafeStoragePassword(vendor))); override != "" {
		return override, nil
	}

	backend := parseLinuxKeyringBackend()
	if backend == "" {
		backend = chooseLinuxKeyringBackend()
	}

	switch backend {
	case linuxKeyringBasic:
		return "", nil
	case linuxKeyringGnome:
		if pw, err := keyring.Get(vendor.safeStorageService, vendor.safeStorageAccount); err == nil && strings.TrimSpace(pw) != "" {
			return strings.TrimSpace(pw), nil
		}
		pw, err := linuxSecretToolLookup(ctx, vendor.safeStorageService, vendor.safeStorageAccount)
		if err == nil && pw != "" {
			return pw, nil
		}
		return "", []string{fmt.Sprintf("%s: keyring lookup failed; v11 cookies stay encrypted", vendor.label)}
	case linuxKeyringKWallet:
		pw, err := linuxKWalletLookup(ctx, vendor.safeStorageService, vendor.safeStorageAccount)
		if err == nil && pw != "" {
			return pw, nil
		}
		return "", []string{fmt.Sprintf("%s: kwallet lookup failed; v11 cookies stay encrypted", vendor.label)}
	default:
		return "", []string{fmt.Sprintf("unknown linux keyring backend %q", backend)}
	}
}

func parseLinuxKeyringBackend() linuxKeyringBackend {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TRAWL_LINUX_KEYRING"))) {
	case "gnome":
		return linuxKeyringGnome
	case "kwallet":
		return linuxKeyringKWallet
	case "basic":
		return linuxKeyringBasic
	default:
		return ""
	}
}

func chooseLinuxKeyringBackend() linuxKeyringBackend {
	for _, p := range strings.Split(strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP")), ":") {
		if strings.TrimSpace(p) == "kde" {
			return linuxKeyringKWallet
		}
	}
	if os.Getenv("KDE_FULL_SESSION") != "" {
		return linuxKeyringKWallet
	}
	return linuxKeyringGnome
}

func linuxSecretToolLookup(ctx context.Context, service, account string) (string, error) {
	stdout, _, err := execCapture(ctx, "secret-tool", []string{"lookup", "service", service, "account", account})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout), nil
}

func linuxKWalletLookup(ctx context.Context, service, account string) (string, error) {
	wallet := "kdewallet"
	folder := account + " Keys"
	stdout, _, err := execCapture(ctx, "kwallet-query", []string{"--read-password", service, "--folder", folder, wallet})
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(stdout)
	if strings.HasPrefix(strings.ToLower(out), "failed to read") {
		return "", fmt.Errorf("kwallet-query: %s", out)
	}
	return out, nil
}
