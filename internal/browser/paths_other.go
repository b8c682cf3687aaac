//go:build !darwin && !linux

package browser

import (
	"os"
	"path/filepath"
)

func chromiumUserDataDirs(vendor chromiumVendor) []string {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		return nil
	}

	switch vendor.name {
	case "chrome":
		return []string{filepath.Join(base, "Google", "Chrome", "User Data")}
	case "chromium":
		return []string{filepath.Join(base, "Chromium", "User Data")}
	case "edge":
		return []string{filepath.Join(base, "Microsoft", "Edge", "User Data")}
	case "brave":
		return []string{filepath.Join(base, "BraveSoftware", "Brave-Browser", "User Data")}
	case "vivaldi":
		return []string{filepath.Join(base, "Vivaldi", "User Data")}
	default:
		return nil
	}
}

func firefoxRoots() []string {
	base := os.Getenv("APPDATA")
	if base == "" {
		return nil
	}
	return []string{filepath.Join(base, "Mozilla", "Firefox")}
}
