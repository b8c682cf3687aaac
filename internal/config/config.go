package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/search"
)

// Layout selects how the TUI occupies the terminal.
type Layout string

const (
	LayoutFull  Layout = "full"
	LayoutPopup Layout = "popup"
)

// Config holds trawl's settings after defaults and validation.
type Config struct {
	Path          string
	Browser       string
	Profile       string
	Layout        Layout
	CaseSensitive bool
	Rank          search.RankMode
	HistoryLimit  int
	HistoryScan   int
	FetchTimeout  time.Duration
	CacheSize     int
	CacheTTL      time.Duration
	Overscan      int
	Watch         bool
	LogFile       string
	LogLevel      string
}

const (
	defaultConfigPath   = "~/.config/trawl/config.toml"
	defaultLogFile      = "~/.local/state/trawl/trawl.log"
	defaultBrowser      = "chrome"
	defaultHistoryLimit = 50
	defaultHistoryScan  = 5000
	defaultFetchTimeout = 3 * time.Second
	defaultCacheSize    = 128
	defaultCacheTTL     = 30 * time.Second
	defaultOverscan     = 3
	defaultLogLevel     = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Browser:       defaultBrowser,
		Layout:        LayoutFull,
		CaseSensitive: true,
		Rank:          search.RankNone,
		HistoryLimit:  defaultHistoryLimit,
		HistoryScan:   defaultHistoryScan,
		FetchTimeout:  defaultFetchTimeout,
		CacheSize:     defaultCacheSize,
		CacheTTL:      defaultCacheTTL,
		Overscan:      defaultOverscan,
		Watch:         true,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      defaultLogLevel,
	}
}

type rawConfig struct {
	Browser       string `toml:"browser"`
	Profile       string `toml:"profile"`
	Layout        string `toml:"layout"`
	CaseSensitive *bool  `toml:"case_sensitive"`
	Rank          string `toml:"rank"`
	HistoryLimit  int    `toml:"history_limit"`
	HistoryScan   int    `toml:"history_scan"`
	FetchTimeout  string `toml:"fetch_timeout"`
	CacheSize     int    `toml:"cache_size"`
	CacheTTL      string `toml:"cache_ttl"`
	Overscan      *int   `toml:"overscan"`
	Watch         *bool  `toml:"watch"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
}

// Load locates and parses the trawl config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", resolved, err)
	}
	return cfg, nil
}

func (c *Config) apply(raw rawConfig) error {
	if v := strings.ToLower(strings.TrimSpace(raw.Browser)); v != "" {
		if !slices.Contains(browser.Browsers(), v) {
			return fmt.Errorf("browser: unsupported value %q", raw.Browser)
		}
		c.Browser = v
	}

	if v := strings.TrimSpace(raw.Profile); v != "" {
		if strings.HasPrefix(v, "~") {
			v = mustExpand(v)
		}
		c.Profile = v
	}

	layout, err := ParseLayout(raw.Layout)
	if err != nil {
		return err
	}
	c.Layout = layout

	if raw.CaseSensitive != nil {
		c.CaseSensitive = *raw.CaseSensitive
	}

	rank, err := search.ParseRankMode(raw.Rank)
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	c.Rank = rank

	if raw.HistoryLimit < 0 || raw.HistoryScan < 0 || raw.CacheSize < 0 {
		return fmt.Errorf("history_limit, history_scan and cache_size must not be negative")
	}
	if raw.HistoryLimit > 0 {
		c.HistoryLimit = raw.HistoryLimit
	}
	if raw.HistoryScan > 0 {
		c.HistoryScan = raw.HistoryScan
	}
	if c.HistoryScan < c.HistoryLimit {
		c.HistoryScan = c.HistoryLimit
	}
	if raw.CacheSize > 0 {
		c.CacheSize = raw.CacheSize
	}

	if c.FetchTimeout, err = parseDuration("fetch_timeout", raw.FetchTimeout, defaultFetchTimeout); err != nil {
		return err
	}
	if c.CacheTTL, err = parseDuration("cache_ttl", raw.CacheTTL, defaultCacheTTL); err != nil {
		return err
	}

	if raw.Overscan != nil {
		if *raw.Overscan < 0 {
			return fmt.Errorf("overscan: must not be negative")
		}
		c.Overscan = *raw.Overscan
	}
	if raw.Watch != nil {
		c.Watch = *raw.Watch
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		c.LogLevel = v
	}
	return nil
}

// ParseLayout accepts "full", "popup" or empty (full).
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutFull:
		return LayoutFull, nil
	case LayoutPopup:
		return LayoutPopup, nil
	default:
		return LayoutFull, fmt.Errorf("layout: unsupported value %q", s)
	}
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive", key)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
