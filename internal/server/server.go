package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tubescript/internal/config"
	"tubescript/internal/logging"
	"tubescript/internal/messages"
	"tubescript/internal/services"
)

const maxRequestBytes = 64 << 10

// ErrAlreadyRunning reports that another server holds the lock.
var ErrAlreadyRunning = errors.New("another tubescript server is already running")

// Health is the body of GET /api/health.
type Health struct {
	Status        string  `json:"status"`
	Strategy      string  `json:"strategy"`
	PID           int     `json:"pid"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Server serves the HTTP API.
type Server struct {
	bind     string
	token    string
	strategy string
	handler  *messages.Handler
	logger   *slog.Logger

	lockPath string
	lock     *flock.Flock

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
	started  time.Time
}

// New builds a server bound to cfg.Paths.APIBind.
func New(cfg *config.Config, handler *messages.Handler, strategy string, logger *slog.Logger) (*Server, error) {
	if cfg == nil || handler == nil {
		return nil, errors.New("server requires config and message handler")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, services.Wrap(services.ErrConfiguration, "server", "new", "paths.api_bind is empty", nil)
	}
	lockPath := cfg.LockPath()
	return &Server{
		bind:     bind,
		token:    cfg.Paths.APIToken,
		strategy: strategy,
		handler:  handler,
		logger:   logging.NewComponentLogger(logger, "api-server"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Routes returns the HTTP handler with authentication applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/messages", s.handleMessages)
	mux.HandleFunc("/api/health", s.handleHealth)
	return authMiddleware(s.token, mux)
}

// Start acquires the instance lock and begins serving. The server shuts
// down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return errors.New("server already started")
	}

	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, s.lockPath)
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.started = time.Now()
	s.server = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// transcript requests may wait on interactive consent
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String(logging.FieldStrategy, s.strategy),
		logging.Bool("token_required", s.token != ""),
	)
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and releases the lock. It is safe to call more
// than once.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()
	if server == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
	s.logger.Info("api server stopped")
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}
	if len(body) > maxRequestBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var req messages.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, messages.Failure("invalid message: "+err.Error()))
		return
	}
	ctx := r.Context()
	if req.RequestID == "" {
		if rid := strings.TrimSpace(r.Header.Get("X-Request-ID")); rid != "" {
			req.RequestID = rid
		}
	}
	if req.RequestID == "" {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	writeJSON(w, http.StatusOK, s.handler.Handle(ctx, req))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	health := Health{Status: "ok", Strategy: s.strategy, PID: os.Getpid()}
	if !started.IsZero() {
		health.UptimeSeconds = time.Since(started).Seconds()
	}
	writeJSON(w, http.StatusOK, health)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
