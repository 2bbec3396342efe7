package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/sandeepkv93/studyviking/internal/applog"
	"github.com/sandeepkv93/studyviking/internal/config"
	"github.com/sandeepkv93/studyviking/internal/guide"
	"github.com/sandeepkv93/studyviking/internal/storage"
	"github.com/sandeepkv93/studyviking/internal/update"
	"github.com/sandeepkv93/studyviking/internal/widgets"
)

// app holds everything a command needs, opened in dependency order.
type app struct {
	cfg     config.Config
	logger  hclog.Logger
	store   *storage.ProfileStore
	closers []io.Closer
}

func setup() (*app, error) {
	home, _ := os.UserHomeDir()
	if err := config.LoadDotEnv(".env", filepath.Join(home, ".studyviking.env")); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg = config.FromEnv(cfg)
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logger, logCloser, err := applog.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	var repo storage.Repository
	if ephemeral {
		repo = storage.NewMemoryRepository()
	} else {
		sqlite, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, sqlite)
		repo = sqlite
	}
	a.store = storage.NewProfileStore(repo, logger)
	logger.Info("starting", "version", version, "db", cfg.DBPath, "ephemeral", ephemeral)
	return a, nil
}

func (a *app) deps() update.Deps {
	completer := guide.NewHTTPCompleter(a.cfg.Guide.BaseURL, a.cfg.Guide.APIKey, a.cfg.Guide.Model, a.cfg.Guide.Timeout())
	if a.cfg.Guide.APIKey == "" {
		a.logger.Warn("no api key configured, guide and chat will use fallbacks")
	}
	d := update.Deps{
		Store: a.store,
		Guide: guide.NewClient(completer, guide.Options{
			Temperature:  a.cfg.Guide.Temperature,
			HistoryLimit: a.cfg.Guide.HistoryLimit,
		}, a.logger),
		Logger: a.logger,
		Batch:  a.cfg.GenerateBatch,
	}
	if !a.cfg.Weather.Disabled {
		d.Weather = widgets.NewWeatherClient(a.cfg.Weather.BaseURL, a.cfg.Weather.Timeout())
	}
	return d
}

// Close releases resources in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
