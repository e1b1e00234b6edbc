package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/config"
	"github.com/vovakirdan/edu-arcade/internal/platform/tui"
	"github.com/vovakirdan/edu-arcade/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeWeb    string
	flagServeMaze   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play Speed Sorting.

Each SSH connection gets their own session with a game picker menu.
Results are stored per-server (all users share the same scoreboard).

With --maze, a Maze Chase game is also hosted on the web address.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --maze capitals --web :8080

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (empty = from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (0 = from config)")
	serveCmd.Flags().StringVar(&flagServeWeb, "web", "", "Web host address for --maze (empty = from config)")
	serveCmd.Flags().StringVar(&flagServeMaze, "maze", "", "Maze Chase content to host on the web")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger("arcade", false)
	defer closeLog()

	games, err := loadSortingGames()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = appConfig.SSH.Address
	cfg.IdleTimeout = appConfig.SSH.IdleTimeout
	cfg.TickRate = appConfig.TUI.TickRate
	cfg.Timings = sortingTimings()
	if cfg.HostKeyPath, err = config.ExpandHome(appConfig.SSH.HostKeyPath); err != nil {
		return err
	}
	if cfg.DBPath, err = config.ExpandHome(appConfig.Storage.Path); err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(cfg, games, logger.WithPrefix("arcade-ssh"))
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 3)
	running := 1
	go func() {
		errs <- server.ListenAndServe(ctx)
	}()

	if flagServeMaze != "" {
		n, err := startMazeHost(ctx, logger, errs)
		if err != nil {
			stop()
			<-errs
			return err
		}
		running += n
	}

	fmt.Printf("Starting arcade SSH server on %s (%d sorting games)\n", cfg.Address, len(games))
	fmt.Println("Press Ctrl+C to stop")

	var firstErr error
	for ; running > 0; running-- {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}

// startMazeHost serves the --maze game next to the SSH server. It returns the
// number of goroutines that report to errs.
func startMazeHost(ctx context.Context, logger *log.Logger, errs chan<- error) (int, error) {
	detail, err := findMaze(flagServeMaze)
	if err != nil {
		return 0, err
	}
	if detail == nil {
		return 0, fmt.Errorf("unknown maze content %q", flagServeMaze)
	}

	address := appConfig.Web.Address
	if flagServeWeb != "" {
		address = flagServeWeb
	}

	webLogger := logger.WithPrefix("arcade-web")
	data := bridge.NewGameData(detail)
	host := web.NewHost(hostConfig(), data, webLogger)
	store := openStore(webLogger)
	if store != nil {
		host.SetResultSaver(store)
	}
	server := web.NewServer(serverConfig(address), host, mazePage(detail, data), webLogger)

	go func() {
		err := host.Run(ctx)
		if store != nil {
			store.Close()
		}
		errs <- err
	}()
	go func() {
		errs <- server.ListenAndServe(ctx)
	}()

	fmt.Printf("Hosting %s at %s\n", detail.Name, hostURL(address))
	return 2, nil
}
