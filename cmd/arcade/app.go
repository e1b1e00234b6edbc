package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/config"
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/platform/web"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

// newLogger builds the application logger. Programs that own the terminal log
// to the configured file so output never corrupts the screen.
func newLogger(prefix string, toFile bool) (*log.Logger, func()) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		out = io.Discard
		if path, err := config.ExpandHome(appConfig.TUI.LogFile); err == nil && path != "" {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
				if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); openErr == nil {
					out = f
					closeFn = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(appConfig.TUI.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, closeFn
}

// openStore opens the results database. Failures are reported and the
// caller continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("could not open results database", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the shell to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = appConfig.TUI.TickRate
	return cfg
}

func sortingTimings() sorting.Timings {
	c := appConfig.Sorting
	return sorting.Timings{
		CountdownSteps:    c.CountdownSteps,
		CountdownInterval: c.CountdownInterval,
		TickInterval:      c.TickInterval,
		CompletionDelay:   c.CompletionDelay,
		FeedbackWindow:    c.FeedbackWindow,
	}
}

func hostConfig() web.HostConfig {
	cfg := web.DefaultHostConfig()
	cfg.TickInterval = appConfig.Web.TickInterval
	cfg.Bridge = bridge.Config{
		SettleDelay:             appConfig.Bridge.SettleDelay,
		DefaultScorePerQuestion: appConfig.Bridge.ScorePerQuestion,
	}
	return cfg
}

func serverConfig(address string) web.ServerConfig {
	cfg := web.DefaultServerConfig()
	cfg.Address = address
	if dir, err := config.ExpandHome(appConfig.Web.RuntimeDir); err == nil {
		cfg.RuntimeDir = dir
	}
	if appConfig.Web.OutboxSize > 0 {
		cfg.OutboxSize = appConfig.Web.OutboxSize
	}
	if appConfig.Web.MaxMessageSize > 0 {
		cfg.MaxMessageSize = appConfig.Web.MaxMessageSize
	}
	return cfg
}

// hostURL turns a listen address into the URL a local browser opens.
func hostURL(address string) string {
	host := address
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host + "/"
}

// loadSortingGames loads the sorting content directory. A missing directory
// means no content.
func loadSortingGames() ([]*content.SortingDetail, error) {
	dir, err := config.ExpandHome(appConfig.Content.SortingDir)
	if err != nil {
		return nil, err
	}
	games, err := content.LoadSortingDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return games, err
}

func loadMazeGames() ([]*content.MazeChaseDetail, error) {
	dir, err := config.ExpandHome(appConfig.Content.MazeDir)
	if err != nil {
		return nil, err
	}
	games, err := content.LoadMazeDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return games, err
}

// isFile reports whether arg names an existing descriptor file.
func isFile(arg string) bool {
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

// findSorting resolves a content ID or a descriptor path. An unknown ID gives
// nil so the shell can show its "not found" screen.
func findSorting(arg string) (*content.SortingDetail, error) {
	if isFile(arg) {
		return content.LoadSorting(arg)
	}
	games, err := loadSortingGames()
	if err != nil {
		return nil, err
	}
	return findByID(games, arg, func(d *content.SortingDetail) string { return d.ID }), nil
}

func findMaze(arg string) (*content.MazeChaseDetail, error) {
	if isFile(arg) {
		return content.LoadMaze(arg)
	}
	games, err := loadMazeGames()
	if err != nil {
		return nil, err
	}
	return findByID(games, arg, func(d *content.MazeChaseDetail) string { return d.ID }), nil
}
