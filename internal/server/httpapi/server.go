package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/surveyforge/authcore/internal/logging"
	"github.com/surveyforge/authcore/internal/server/auth"
	"github.com/surveyforge/authcore/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	auth    *services.AuthService
	guard   *Guard
	logger  logging.Logger
}

func NewHTTPServer(address string, authService *services.AuthService, codec *auth.TokenCodec, logger logging.Logger) *HTTPServer {
	return &HTTPServer{
		address: address,
		auth:    authService,
		guard:   NewGuard(codec),
		logger:  logger.With("module", "http_server"),
	}
}

// Handler builds the route table. Everything under /auth is public except
// the profile route, which goes through the access token guard.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signUp", s.signUp)
	mux.HandleFunc("POST /auth/login", s.login)
	mux.HandleFunc("POST /auth/refreshToken", s.refresh)
	mux.HandleFunc("POST /auth/verifyEmail", s.verifyEmail)
	mux.HandleFunc("POST /auth/resendVerificationEmail", s.resendVerification)
	mux.HandleFunc("POST /auth/forgotPassword", s.forgotPassword)
	mux.HandleFunc("POST /auth/resetPassword", s.resetPassword)

	mux.Handle("GET /auth/profile", s.guard.Authenticate(http.HandlerFunc(s.profile)))

	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
