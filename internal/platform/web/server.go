// Package web serves the browser page that embeds the game runtime and relays
// its messages to the Bridge over a WebSocket.
package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
)

//go:embed assets/host.html
var assets embed.FS

var hostPage = template.Must(template.ParseFS(assets, "assets/host.html"))

// ServerConfig holds configuration for the web host.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// RuntimeDir is the directory of the exported runtime, served under /game/.
	RuntimeDir string

	// OutboxSize bounds queued outbound messages per connection.
	OutboxSize int

	// MaxMessageSize bounds inbound frames in bytes.
	MaxMessageSize int64

	// WriteTimeout bounds each outbound frame write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:         ":8080",
		RuntimeDir:      "./runtime",
		OutboxSize:      16,
		MaxMessageSize:  64 << 10,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// PageInfo is shown in the host page header.
type PageInfo struct {
	Title            string
	Description      string
	ScorePerQuestion int
}

// Server is the HTTP side of the runtime relay.
type Server struct {
	config   ServerConfig
	host     *Host
	page     PageInfo
	token    string
	router   *chi.Mux
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer creates the router for one host. A fresh page token is minted;
// only WebSocket connections presenting it are attached to the bridge.
func NewServer(cfg ServerConfig, host *Host, page PageInfo, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if page.Title == "" {
		page.Title = "Maze Chase Game"
	}
	if page.ScorePerQuestion <= 0 {
		page.ScorePerQuestion = host.config.Bridge.DefaultScorePerQuestion
	}

	s := &Server{
		config: cfg,
		host:   host,
		page:   page,
		token:  uuid.NewString(),
		router: chi.NewRouter(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/", s.handlePage)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.router.Get("/ws", s.handleWebSocket)

	if cfg.RuntimeDir != "" {
		if _, err := os.Stat(cfg.RuntimeDir); err != nil {
			logger.Warn("runtime directory not available", "dir", cfg.RuntimeDir, "error", err)
		}
		s.router.Handle("/game/*", http.StripPrefix("/game/", http.FileServer(http.Dir(cfg.RuntimeDir))))
	}

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() http.Handler { return s.router }

// Token returns the page token trusted connections must present.
func (s *Server) Token() string { return s.token }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("web: cannot listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web host", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web host")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		PageInfo
		Token string
	}{s.page, s.token}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := hostPage.Execute(w, data); err != nil {
		s.logger.Error("cannot render host page", "error", err)
	}
}

// handleWebSocket relays one runtime connection. Every connection gets its own
// channel ID; only one presenting the page token is attached to the bridge.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	trusted := subtle.ConstantTimeCompare([]byte(r.URL.Query().Get("token")), []byte(s.token)) == 1

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	ch := bridge.NewQueueChannel(bridge.NewChannelID(), s.config.OutboxSize)
	s.logger.Info("runtime connected", "channel", ch.ID(), "trusted", trusted, "remote", r.RemoteAddr)

	if trusted {
		if !s.host.attach(ch) {
			conn.Close()
			return
		}
		go s.writeLoop(conn, ch)
	}

	s.readLoop(conn, ch.ID())

	ch.Close()
	if trusted {
		s.host.disconnect(ch.ID())
	} else {
		conn.Close()
	}
	s.logger.Info("runtime disconnected", "channel", ch.ID())
}

// readLoop forwards frames until the connection fails or the host stops.
func (s *Server) readLoop(conn *websocket.Conn, id bridge.ChannelID) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read error", "channel", id, "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if !s.host.deliver(id, data) {
			return
		}
	}
}

// writeLoop is the only writer on conn. It closes conn when the channel closes.
func (s *Server) writeLoop(conn *websocket.Conn, ch *bridge.QueueChannel) {
	defer conn.Close()
	for {
		select {
		case msg := <-ch.Outbox():
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Debug("websocket write error", "channel", ch.ID(), "error", err)
				return
			}
		case <-ch.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		}
	}
}

// requestLogger logs each request with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
