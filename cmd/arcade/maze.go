package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/platform/tui"
	"github.com/vovakirdan/edu-arcade/internal/platform/web"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

var flagMazeWeb string

var mazeCmd = &cobra.Command{
	Use:   "maze <content-id|file>",
	Short: "Host a Maze Chase game",
	Long: `Serve a Maze Chase game to the browser and keep score in the terminal.

The game engine export is served from the runtime directory (web.runtime_dir).
Open the printed URL in a browser; the terminal shows readiness and score.

Controls:
  F          - Toggle fullscreen
  Q/Esc      - Stop hosting

Examples:
  arcade maze capitals
  arcade maze ./content/maze/rivers.yaml --web :9090`,
	Args: cobra.ExactArgs(1),
	RunE: runMazeCmd,
}

func init() {
	mazeCmd.Flags().StringVar(&flagMazeWeb, "web", "", "Web host address (empty = from config)")
}

func runMazeCmd(_ *cobra.Command, args []string) error {
	detail, err := findMaze(args[0])
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("maze", true)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address := appConfig.Web.Address
	if flagMazeWeb != "" {
		address = flagMazeWeb
	}
	return playMaze(ctx, detail, store, address, runtimeConfig(), logger)
}

// playMaze runs the web host and the terminal status screen until the user
// quits. Completed games are saved by the host.
func playMaze(ctx context.Context, detail *content.MazeChaseDetail, store *storage.Store, address string, cfg core.RuntimeConfig, logger *log.Logger) error {
	if detail == nil {
		return tui.RunMaze(nil, nil, "", cfg, logger)
	}

	data := bridge.NewGameData(detail)
	host := web.NewHost(hostConfig(), data, logger)
	if store != nil {
		host.SetResultSaver(store)
	}

	srvCfg := serverConfig(address)
	server := web.NewServer(srvCfg, host, mazePage(detail, data), logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hostDone := make(chan error, 1)
	go func() {
		hostDone <- host.Run(ctx)
	}()

	serverDone := make(chan error, 1)
	go func() {
		err := server.ListenAndServe(ctx)
		if err != nil {
			logger.Error("web host failed", "error", err)
			cancel()
		}
		serverDone <- err
	}()

	url := hostURL(srvCfg.Address)
	logger.Info("maze game hosted", "content", detail.ID, "url", url)

	uiErr := tui.RunMaze(detail, host, url, cfg, logger)
	cancel()
	serverErr := <-serverDone
	<-hostDone

	if uiErr != nil {
		return fmt.Errorf("error running game: %w", uiErr)
	}
	return serverErr
}

// mazePage describes the game on the host page.
func mazePage(detail *content.MazeChaseDetail, data *bridge.GameData) web.PageInfo {
	points := data.ScorePerQuestion
	if points <= 0 {
		points = appConfig.Bridge.ScorePerQuestion
	}
	return web.PageInfo{
		Title:            detail.Name,
		Description:      detail.Description,
		ScorePerQuestion: points,
	}
}
