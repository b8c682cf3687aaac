package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Open resolves the named browser's profile and returns a Host reading it.
// Only an unknown browser name or a broken profiles.ini is an error here; a
// missing profile surfaces later as an Unavailable fetch error.
func Open(ctx context.Context, name, profile string, log logrus.FieldLogger) (Host, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "chrome"
	}

	if name == "firefox" {
		dir, err := resolveFirefoxProfile(profile)
		if err != nil {
			var fe *FetchError
			if !errors.As(err, &fe) {
				return nil, err
			}
			// Keep going with a path that does not exist so every read reports
			// the same typed failure.
			dir = strings.TrimSpace(profile)
			if dir == "" {
				dir = "firefox-profile-not-found"
			}
		}
		return NewFirefox(dir, log), nil
	}

	vendor, ok := chromiumVendors[name]
	if !ok {
		return nil, fmt.Errorf("unsupported browser %q (want one of %s)", name, strings.Join(Browsers(), ", "))
	}
	return NewChromium(vendor.name, resolveChromiumProfile(vendor, profile), log)
}

// OpenURL hands rawURL to the platform opener.
func OpenURL(ctx context.Context, rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("open url: %q has no scheme", rawURL)
	}
	name, args, err := openerCommand(runtime.GOOS, u.String())
	if err != nil {
		return err
	}
	if _, _, err := execCapture(ctx, name, args); err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	return nil
}

func openerCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{target}, nil
	default:
		return "", nil, fmt.Errorf("open url: unsupported platform %s", goos)
	}
}
