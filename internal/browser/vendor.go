package browser

import "strings"

type chromiumVendor struct {
	name  string
	label string

	// "Safe Storage" secret identifier.
	safeStorageService string
	safeStorageAccount string
}

var chromiumVendors = map[string]chromiumVendor{
	"chrome":   {name: "chrome", label: "Chrome", safeStorageService: "Chrome Safe Storage", safeStorageAccount: "Chrome"},
	"chromium": {name: "chromium", label: "Chromium", safeStorageService: "Chromium Safe Storage", safeStorageAccount: "Chromium"},
	"edge":     {name: "edge", label: "Microsoft Edge", safeStorageService: "Microsoft Edge Safe Storage", safeStorageAccount: "Microsoft Edge"},
	"brave":    {name: "brave", label: "Brave", safeStorageService: "Brave Safe Storage", safeStorageAccount: "Brave"},
	"vivaldi":  {name: "vivaldi", label: "Vivaldi", safeStorageService: "Vivaldi Safe Storage", safeStorageAccount: "Vivaldi"},
}

// Browsers lists the browser names accepted by Open.
func Browsers() []string {
	return []string{"chrome", "chromium", "edge", "brave", "vivaldi", "firefox"}
}

func envKeySafeStoragePassword(vendor chromiumVendor) string {
	return "TRAWL_" + strings.ToUpper(vendor.name) + "_SAFE_STORAGE_PASSWORD"
}
