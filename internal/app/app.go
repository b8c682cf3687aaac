package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/config"
	"github.com/five82/trawl/internal/finder"
	"github.com/five82/trawl/internal/logging"
	"github.com/five82/trawl/internal/prefs"
	"github.com/five82/trawl/internal/search"
	"github.com/five82/trawl/internal/ui"
)

// Options configure a trawl run. Non-empty fields override the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/trawl/prefs.toml
	Browser    string
	Profile    string
	Popup      bool
}

// Env is everything a run needs, built from config and flags.
type Env struct {
	Config config.Config
	Log    *logrus.Logger
	Host   browser.Host
	Engine *finder.Engine

	closeLog func() error
}

// Setup loads config, opens the log and the browser profile, and builds the
// finder engine.
func Setup(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	env := &Env{Config: cfg, Log: logger, closeLog: closeLog}
	env.Host, err = browser.Open(ctx, cfg.Browser, cfg.Profile, logger)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("open browser profile: %w", err)
	}

	env.Engine, err = finder.New(env.Host, finder.Options{
		HistoryLimit: cfg.HistoryLimit,
		HistoryScan:  cfg.HistoryScan,
		FetchTimeout: cfg.FetchTimeout,
		Match:        search.Options{IgnoreCase: !cfg.CaseSensitive},
		Rank:         cfg.Rank,
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
		Logger:       logger,
	})
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init finder: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"browser": env.Host.Name(),
		"config":  cfg.Path,
		"layout":  cfg.Layout,
	}).Info("trawl started")
	return env, nil
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	if e == nil || e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

func applyOverrides(cfg *config.Config, opts Options) {
	if v := strings.ToLower(strings.TrimSpace(opts.Browser)); v != "" {
		cfg.Browser = v
	}
	if v := strings.TrimSpace(opts.Profile); v != "" {
		cfg.Profile = v
	}
	if opts.Popup {
		cfg.Layout = config.LayoutPopup
	}
}

// Run boots the trawl TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	var events <-chan browser.Source
	if env.Config.Watch {
		var stop func()
		events, stop = startWatcher(env.Host, env.Log)
		defer stop()
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Engine:    env.Engine,
		Events:    events,
		Layout:    env.Config.Layout,
		Overscan:  env.Config.Overscan,
		ThemeName: userPrefs.Theme,
		LastTab:   userPrefs.LastTab,
		PrefsPath: prefsPath,
		Logger:    env.Log,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		env.Log.WithError(err).Error("ui exited")
	}
	return err
}
