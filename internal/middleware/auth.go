package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
)

// accessDenied is the only body ever returned for a failed authentication.
const accessDenied = "Access Denied"

// UserFinder looks up a user by email address. It must return
// repository.ErrUserNotFound when no user matches.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// CredentialVerifier checks a candidate password against a stored hash.
type CredentialVerifier interface {
	Verify(candidate, storedHash string) bool
	VerifyDummy(candidate string) bool
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Users    UserFinder
	Verifier CredentialVerifier
	Metrics  metrics.Recorder

	// Realm is advertised in the WWW-Authenticate header.
	Realm string

	// MinDuration pads every attempt to at least this long. Zero disables padding.
	MinDuration time.Duration
}

// Auth returns a middleware that authenticates requests with HTTP Basic
// credentials (email address and password). On success the user is attached
// to the request context; every failure gets the same 401 response.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	challenge := fmt.Sprintf(`Basic realm=%q, charset="UTF-8"`, cfg.Realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			user, reason, err := authenticate(r, cfg)

			cfg.Metrics.ObserveAuthDuration(time.Since(start))
			pad(r.Context(), start, cfg.MinDuration)

			if err != nil {
				cfg.Logger.Error("database error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}

			if user == nil {
				cfg.Metrics.IncAuthFailure(reason)
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				w.Header().Set("WWW-Authenticate", challenge)
				writeError(w, http.StatusUnauthorized, accessDenied)
				return
			}

			cfg.Metrics.IncAuthSuccess()
			cfg.Logger.Debug("authentication successful",
				slog.Int64("user_id", user.ID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithIdentity(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate resolves the request's credentials to a user. A nil user with
// a nil error means the credentials were rejected for reason.
func authenticate(r *http.Request, cfg AuthConfig) (*model.User, string, error) {
	email, password, ok := r.BasicAuth()
	if !ok || email == "" {
		return nil, metrics.AuthReasonMissingCredentials, nil
	}

	user, err := cfg.Users.GetUserByEmail(r.Context(), email)
	if errors.Is(err, repository.ErrUserNotFound) {
		cfg.Verifier.VerifyDummy(password)
		return nil, metrics.AuthReasonUnknownIdentity, nil
	}
	if err != nil {
		return nil, "", err
	}

	if !cfg.Verifier.Verify(password, user.PasswordHash) {
		return nil, metrics.AuthReasonBadSecret, nil
	}

	return user, "", nil
}

// pad sleeps until minDuration has elapsed since start or ctx is done.
func pad(ctx context.Context, start time.Time, minDuration time.Duration) {
	remaining := minDuration - time.Since(start)
	if remaining <= 0 {
		return
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
