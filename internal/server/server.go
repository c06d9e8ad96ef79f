package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/signin/internal/config"
	"github.com/nfrund/signin/internal/events"
	"github.com/nfrund/signin/internal/handlers"
	"github.com/nfrund/signin/internal/login"
	"github.com/nfrund/signin/internal/middleware"
	"github.com/nfrund/signin/internal/pubsub"
	"github.com/nfrund/signin/internal/rendering"
	"github.com/nfrund/signin/internal/storage"
)

// Forms untouched for this long are dropped from memory.
const (
	formIdleTimeout = 24 * time.Hour
	pruneInterval   = 10 * time.Minute
)

// requiredAssets are referenced by the sign-in page.
var requiredAssets = []string{"logo.svg", "success.svg", "signin.css"}

// Options overrides parts of the server wiring, mainly for tests.
type Options struct {
	// Operation replaces the simulated authentication call.
	Operation login.Operation
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E            *echo.Echo
	Cfg          config.Provider
	forms        *login.Sessions
	bus          *pubsub.Bus
	assets       *storage.Assets
	loginHandler *handlers.LoginHandler

	// stop cancels the background audit subscriber and pruner.
	stop context.CancelFunc
}

// New wires the echo instance, the form registry and the event bus.
func New(cfg config.Provider, opts Options) (*Server, error) {
	op := opts.Operation
	if op == nil {
		op = login.DelayedOperation{Delay: cfg.GetLoginDelay(), Fail: cfg.GetSimulateFailure()}
	}

	assets, err := storage.Open(cfg.GetStaticDir())
	if err != nil {
		return nil, err
	}
	for _, name := range requiredAssets {
		if !assets.Exists(name) {
			slog.Warn("Static asset missing", "name", name, "static_dir", cfg.GetStaticDir())
		}
	}

	ctx, stop := context.WithCancel(context.Background())

	bus := pubsub.NewBus()
	if err := events.NewAudit(slog.Default()).Start(ctx, bus); err != nil {
		stop()
		_ = bus.Close()
		return nil, err
	}

	forms := login.NewSessions(op)
	loginHandler := handlers.NewLoginHandler(forms, events.NewPublisher(bus))

	e := echo.New()
	e.HideBanner = true
	e.Renderer = rendering.New()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(formIdleTimeout / time.Second),
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	s := &Server{
		E:            e,
		Cfg:          cfg,
		forms:        forms,
		bus:          bus,
		assets:       assets,
		loginHandler: loginHandler,
		stop:         stop,
	}
	go s.pruneForms(ctx)
	return s, nil
}

// Forms is a getter for the form registry, useful for testing.
func (s *Server) Forms() *login.Sessions {
	return s.forms
}

func (s *Server) pruneForms(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.forms.Prune(now, formIdleTimeout); n > 0 {
				slog.Info("Pruned idle sign-in forms", "count", n, "remaining", s.forms.Len())
			}
		}
	}
}

// Close stops background work and the event bus.
func (s *Server) Close() error {
	s.stop()
	return s.bus.Close()
}
