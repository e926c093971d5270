package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
)

type stubUsers struct {
	users map[string]*model.User
	err   error
	calls int
}

func (s *stubUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

// plainVerifier compares hashes of the form "hashed:<password>".
type plainVerifier struct {
	dummyCalls int
}

func (v *plainVerifier) Verify(candidate, storedHash string) bool {
	return storedHash == "hashed:"+candidate
}

func (v *plainVerifier) VerifyDummy(string) bool {
	v.dummyCalls++
	return false
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthFixture() (*stubUsers, *plainVerifier, *metrics.InMemoryRecorder, AuthConfig) {
	users := &stubUsers{users: map[string]*model.User{
		"a@b.com": {ID: 1, EmailAddress: "a@b.com", PasswordHash: "hashed:x"},
	}}
	verifier := &plainVerifier{}
	recorder := metrics.NewInMemory()
	return users, verifier, recorder, AuthConfig{
		Logger:   discardLogger(),
		Users:    users,
		Verifier: verifier,
		Metrics:  recorder,
		Realm:    "coursekeep",
	}
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := auth.MustIdentityFromContext(r.Context())
		_, _ = io.WriteString(w, user.EmailAddress)
	})
}

func TestAuth_Success(t *testing.T) {
	t.Parallel()

	_, _, recorder, cfg := newAuthFixture()
	handler := Auth(cfg)(identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.SetBasicAuth("a@b.com", "x")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.com", rec.Body.String())
	assert.Equal(t, uint64(1), recorder.Snapshot().AuthSuccess)
}

func TestAuth_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		reason string
	}{
		{name: "no header", setup: func(*http.Request) {}, reason: metrics.AuthReasonMissingCredentials},
		{name: "not basic", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, reason: metrics.AuthReasonMissingCredentials},
		{name: "malformed base64", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic !!!") }, reason: metrics.AuthReasonMissingCredentials},
		{name: "unknown identity", setup: func(r *http.Request) { r.SetBasicAuth("nobody@b.com", "x") }, reason: metrics.AuthReasonUnknownIdentity},
		{name: "bad secret", setup: func(r *http.Request) { r.SetBasicAuth("a@b.com", "wrong") }, reason: metrics.AuthReasonBadSecret},
	}

	var bodies []string
	for _, tt := range tests {
		_, _, recorder, cfg := newAuthFixture()
		called := false
		handler := Auth(cfg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		tt.setup(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called, tt.name)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.name)
		assert.Equal(t, `Basic realm="coursekeep", charset="UTF-8"`, rec.Header().Get("WWW-Authenticate"), tt.name)
		assert.Equal(t, uint64(1), recorder.Snapshot().AuthFailures[tt.reason], tt.name)
		bodies = append(bodies, rec.Body.String())
	}

	for _, body := range bodies {
		assert.JSONEq(t, `{"error":"Access Denied"}`, body)
	}
}

func TestAuth_UnknownIdentityRunsDummyVerification(t *testing.T) {
	t.Parallel()

	users, verifier, _, cfg := newAuthFixture()
	handler := Auth(cfg)(identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.SetBasicAuth("nobody@b.com", "x")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, users.calls, "exactly one lookup")
	assert.Equal(t, 1, verifier.dummyCalls)
}

func TestAuth_DatabaseErrorIsInternal(t *testing.T) {
	t.Parallel()

	users, _, recorder, cfg := newAuthFixture()
	users.err = errors.New("connection refused")
	handler := Auth(cfg)(identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.SetBasicAuth("a@b.com", "x")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, uint64(0), recorder.Snapshot().AuthSuccess)
}

func TestAuth_MinDurationPadsFailures(t *testing.T) {
	t.Parallel()

	_, _, _, cfg := newAuthFixture()
	cfg.MinDuration = 30 * time.Millisecond
	handler := Auth(cfg)(identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	start := time.Now()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
