package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/logging"
)

// Chromium reads a Chromium-family profile directory.
type Chromium struct {
	vendor     chromiumVendor
	profileDir string
	log        logrus.FieldLogger

	mu            sync.Mutex
	decrypt       chromiumDecryptFunc
	decryptLoaded bool
}

var _ Host = (*Chromium)(nil)

// NewChromium returns a host for the named vendor reading profileDir.
func NewChromium(name, profileDir string, log logrus.FieldLogger) (*Chromium, error) {
	vendor, ok := chromiumVendors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
	return &Chromium{
		vendor:     vendor,
		profileDir: profileDir,
		log:        logging.OrDiscard(log).WithField("browser", vendor.name),
	}, nil
}

func (c *Chromium) Name() string { return c.vendor.name }

// ProfileDir returns the profile directory the host reads.
func (c *Chromium) ProfileDir() string { return c.profileDir }

func (c *Chromium) bookmarksPath() string { return filepath.Join(c.profileDir, "Bookmarks") }

func (c *Chromium) historyPath() string { return filepath.Join(c.profileDir, "History") }

func (c *Chromium) cookiesPath() string {
	network := filepath.Join(c.profileDir, "Network", "Cookies")
	if fileExists(network) {
		return network
	}
	legacy := filepath.Join(c.profileDir, "Cookies")
	if fileExists(legacy) {
		return legacy
	}
	return network
}

func (c *Chromium) StorePaths() map[Source][]string {
	return map[Source][]string{
		SourceBookmarks: {c.bookmarksPath()},
		SourceHistory:   {c.historyPath()},
		SourceCookies:   {c.cookiesPath()},
	}
}

// decryptor resolves the Safe Storage password once per host. A lookup
// cut short by ctx is retried on the next call.
func (c *Chromium) decryptor(ctx context.Context) chromiumDecryptFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.decryptLoaded {
		return c.decrypt
	}
	fn, warnings := chromiumDecryptor(ctx, c.vendor)
	for _, w := range warnings {
		c.log.Warn(w)
	}
	if ctx.Err() == nil {
		c.decrypt = fn
		c.decryptLoaded = true
	}
	return fn
}

// resolveChromiumProfile maps a profile argument to a profile directory.
// It accepts an existing directory, a profile directory name such as
// "Profile 1", or a display name from Local State. Empty means Default.
// When nothing matches, the first candidate is returned so reads fail with
// a not-exist error.
func resolveChromiumProfile(vendor chromiumVendor, profile string) string {
	profile = strings.TrimSpace(profile)
	if profile != "" && dirExists(profile) {
		return profile
	}
	if profile == "" {
		profile = "Default"
	}

	roots := chromiumUserDataDirs(vendor)
	for _, root := range roots {
		if dir := filepath.Join(root, profile); dirExists(dir) {
			return dir
		}
		if name, ok := chromiumProfileByName(root, profile); ok {
			return filepath.Join(root, name)
		}
	}
	if len(roots) == 0 {
		return profile
	}
	return filepath.Join(roots[0], profile)
}

func chromiumProfileByName(userDataDir, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(userDataDir, "Local State"))
	if err != nil {
		return "", false
	}
	var localState struct {
		Profile struct {
			InfoCache map[string]struct {
				Name string `json:"name"`
			} `json:"info_cache"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(data, &localState); err != nil {
		return "", false
	}
	for dir, info := range localState.Profile.InfoCache {
		if strings.EqualFold(info.Name, name) {
			return dir, true
		}
	}
	return "", false
}

// Chromium stores times as microseconds since 1601-01-01 UTC.
const chromiumEpochDiffMicros = int64(11644473600000000)

func chromiumTime(micros int64) (time.Time, bool) {
	unixMicros := micros - chromiumEpochDiffMicros
	if micros == 0 || unixMicros <= 0 {
		return time.Time{}, false
	}
	return time.UnixMicro(unixMicros).UTC(), true
}
