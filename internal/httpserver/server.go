// internal/httpserver/server.go
//
// HTTP server wiring for the vault game.
// Responsibilities:
//   - Router + middleware (access log, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", POST /game/new.
//   - Session endpoints under /game/{id} (session token required):
//     view, letter, clear, submit, reset, speak, delete.
//   - Event streams: SSE at /game/{id}/events, WebSocket at /game/{id}/ws.
//
// Notes:
//   - Calls on one session are serialized with striped mutexes; the game core
//     itself is single-threaded.
//   - Streaming routes are mounted outside the request timeout.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vaultcrack/internal/events"
	"github.com/robalobadob/vaultcrack/internal/game"
	"github.com/robalobadob/vaultcrack/internal/store"
)

const lockStripes = 64

// Options configures a Server.
type Options struct {
	Store        store.Store
	Hub          *events.Hub
	Random       game.WordSource // mode "random"
	Daily        game.WordSource // mode "daily"; nil disables it
	MaxAttempts  int
	TokenSecret  []byte
	TokenTTL     time.Duration
	CookieName   string
	ClientOrigin string
	Secure       bool // production cookies
}

// Server bundles the router, the session store and the event hub.
type Server struct {
	r     *chi.Mux
	opts  Options
	store store.Store
	hub   *events.Hub
	locks [lockStripes]sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Hub == nil {
		opts.Hub = events.NewHub()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = "vault_token"
	}
	s := &Server{r: chi.NewRouter(), opts: opts, store: opts.Store, hub: opts.Hub}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)       // one line per request
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"service":"vaultcrack","endpoints":["/health","POST /game/new","/game/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.store.Len()})
	})

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)
		r.Post("/game/new", s.handleNewGame)
	})

	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireSession)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(10 * time.Second))
			r.Use(jsonContentType)
			r.Get("/", s.handleView)
			r.Delete("/", s.handleDelete)
			r.Post("/letter", s.handleLetter)
			r.Post("/clear", s.handleCommand("clear"))
			r.Post("/submit", s.handleCommand("submit"))
			r.Post("/reset", s.handleCommand("reset"))
			r.Get("/speak", s.handleSpeak)
		})

		r.Get("/events", s.handleEvents)
		r.Get("/ws", s.handleWS)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// lockFor returns the mutex stripe guarding a session ID.
func (s *Server) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

// withSession runs fn with exclusive access to the session.
func (s *Server) withSession(ctx context.Context, id string, fn func(*game.Session) error) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return fn(sess)
}

// newSession creates a session from the source named by mode and stores it.
func (s *Server) newSession(ctx context.Context, mode string) (*game.Session, error) {
	var src game.WordSource
	switch mode {
	case "", "random":
		src = s.opts.Random
	case "daily":
		src = s.opts.Daily
	}
	if src == nil {
		return nil, errUnknownMode
	}

	sess := game.NewSession(uuid.NewString(), src, s.opts.MaxAttempts)
	sess.OnEvent(s.hub.Listener())
	sess.OnEvent(logOutcome)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	log.Info().Str("gameId", sess.ID()).Str("mode", mode).Int("length", sess.WordLength()).Msg("session created")
	return sess, nil
}

// logOutcome records round results; it never sees the word.
func logOutcome(e game.Event) {
	switch e.Kind {
	case game.EventWon:
		log.Info().Str("gameId", e.SessionID).Int("attemptsLeft", e.AttemptsLeft).Msg("vault cracked")
	case game.EventRoundLost:
		log.Info().Str("gameId", e.SessionID).Msg("alarm triggered")
	case game.EventReset:
		log.Debug().Str("gameId", e.SessionID).Msg("round reset")
	}
}

// dropSession removes a session and ends its streams.
func (s *Server) dropSession(ctx context.Context, id string) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Close(id)
	return nil
}

// Sweep drops sessions idle longer than idle and returns how many went.
func (s *Server) Sweep(ctx context.Context, idle time.Duration) int {
	ids := s.store.Sweep(ctx, idle)
	for _, id := range ids {
		s.hub.Close(id)
	}
	if len(ids) > 0 {
		log.Info().Int("count", len(ids)).Int("remaining", s.store.Len()).Msg("swept idle sessions")
	}
	return len(ids)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (s *Server) RunSweeper(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(ctx, idle)
		}
	}
}

var (
	errUnknownMode    = errors.New("unknown mode")
	errUnknownCommand = errors.New("unknown command")
)

// errorStatus maps domain errors onto HTTP status + JSON error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrInvalidLetter):
		return http.StatusBadRequest, "invalid_letter"
	case errors.Is(err, game.ErrRoundOver):
		return http.StatusConflict, "round_over"
	case errors.Is(err, game.ErrAwaitingClear):
		return http.StatusConflict, "awaiting_clear"
	case errors.Is(err, errUnknownMode):
		return http.StatusBadRequest, "unknown_mode"
	case errors.Is(err, errUnknownCommand):
		return http.StatusBadRequest, "unknown_command"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(w http.ResponseWriter, status int, code string) {
	http.Error(w, `{"error":"`+code+`"}`, status)
}

func writeErr(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, code)
}
