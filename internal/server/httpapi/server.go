// Package httpapi serves the REST API of the accounts server on top of
// julienschmidt/httprouter.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/julienschmidt/httprouter"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Create(ctx context.Context, input models.UserInput) (*models.User, error)
	ReadOneByID(ctx context.Context, id string) (*models.User, error)
	ReadOneByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, patch models.UserPatch) (*models.User, error)
}

type AuthService interface {
	GetAuthenticatedUser(ctx context.Context, email, password string) (*models.User, error)
}

type SessionService interface {
	Create(ctx context.Context, userID string) (*models.Session, error)
	FindOneValidByToken(ctx context.Context, token string) (*models.Session, error)
}

type StatusService interface {
	Get(ctx context.Context) (*models.Status, error)
}

type MigrationService interface {
	Pending(ctx context.Context) ([]models.Migration, error)
	Up(ctx context.Context) ([]models.Migration, error)
}

// Services bundles what the handlers depend on.
type Services struct {
	Users      UserService
	Auth       AuthService
	Sessions   SessionService
	Status     StatusService
	Migrations MigrationService
}

type Server struct {
	address       string
	logger        logging.Logger
	svc           Services
	sessionTTL    time.Duration
	secureCookies bool
}

// NewServer builds the API server. sessionTTL becomes the session cookie
// Max-Age; secureCookies marks the cookie Secure.
func NewServer(a string, l logging.Logger, svc Services, sessionTTL time.Duration, secureCookies bool) *Server {
	return &Server{
		address:       a,
		logger:        l.With("module", "http_server"),
		svc:           svc,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

// Handler returns the routed API with request logging applied.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.POST("/api/v1/users", s.createUser)
	router.GET("/api/v1/users/:username", s.getUser)
	router.PATCH("/api/v1/users/:username", s.patchUser)
	router.POST("/api/v1/sessions", s.createSession)
	router.GET("/api/v1/user", s.currentUser)
	router.GET("/api/v1/status", s.getStatus)
	router.GET("/api/v1/migrations", s.listMigrations)
	router.POST("/api/v1/migrations", s.runMigrations)

	router.HandleMethodNotAllowed = true
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, common.NewMethodNotAllowedError())
	})
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, common.NewNotFoundError("", ""))
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		s.writeError(w, r, fmt.Errorf("panic: %v", v))
	}

	return s.logRequests(router)
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
