package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/pages"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/session"
	"github.com/five82/tally/internal/ui"
)

// Options configure the Tally application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/tally/prefs.toml
	RefreshEvery int    // seconds; overrides refresh_seconds when positive
}

// Run boots the Tally TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.RefreshEvery) * time.Second
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	sess, err := session.FromToken(cfg.Token)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if err := sess.Validate(time.Now()); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	client, err := backoffice.NewClient(backoffice.Options{
		BaseURL: cfg.APIURL,
		Token:   sess.Token,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("init backoffice client: %w", err)
	}

	hub := ui.NewHub()
	listers := pages.All(client, pages.Deps{
		Session:  sess,
		Logger:   logger,
		PageSize: cfg.PageSize,
		Context:  ctx,
		Notify:   hub.Notify,
	})
	defer func() {
		for _, l := range listers {
			l.Close()
		}
	}()

	StartPoller(ctx, cfg.RefreshInterval, func(ctx context.Context) error {
		page := hub.Active()
		if page == nil {
			return nil
		}
		return page.Refresh(ctx)
	}, hub.Notify, logger)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load preferences failed, using defaults", "error", err)
	}

	logger.Info("starting",
		"api", client.BaseURL(),
		"user", sess.UserID,
		"organization", sess.OrganizationID,
		"role", sess.Role,
		"refresh", cfg.RefreshInterval,
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Pages:     listers,
		Hub:       hub,
		Session:   sess,
		APIURL:    client.BaseURL(),
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		LastTab:   userPrefs.LastTab,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("ui exited", "error", err)
		return err
	}
	logger.Info("stopped")
	return nil
}
