//go:build darwin

package browser

import (
	"os"
	"path/filepath"
)

func chromiumUserDataDirs(vendor chromiumVendor) []string {
	base := applicationSupport()
	if base == "" {
		return nil
	}

	switch vendor.name {
	case "chrome":
		return []string{filepath.Join(base, "Google", "Chrome")}
	case "chromium":
		return []string{filepath.Join(base, "Chromium")}
	case "edge":
		return []string{filepath.Join(base, "Microsoft Edge")}
	case "brave":
		return []string{filepath.Join(base, "BraveSoftware", "Brave-Browser")}
	case "vivaldi":
		return []string{filepath.Join(base, "Vivaldi")}
	default:
		return nil
	}
}

func firefoxRoots() []string {
	base := applicationSupport()
	if base == "" {
		return nil
	}
	return []string{filepath.Join(base, "Firefox")}
}

func applicationSupport() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Application Support")
}
