// Package app assembles the Courses API from its injected dependencies.
package app

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/coursekeep/coursekeep/internal/config"
	"github.com/coursekeep/coursekeep/internal/handler"
	"github.com/coursekeep/coursekeep/internal/handler/dto"
	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/middleware"
	"github.com/coursekeep/coursekeep/internal/service"
)

// Store is everything the API needs from persistence.
// *repository.Repository satisfies it.
type Store interface {
	service.UserStore
	service.CourseStore
	middleware.UserFinder
	handler.HealthChecker
}

// Credentials hashes new passwords and verifies presented ones.
// *auth.Passwords satisfies it.
type Credentials interface {
	service.PasswordHasher
	middleware.CredentialVerifier
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Config      *config.Config
	Logger      *slog.Logger
	Store       Store
	Credentials Credentials

	// Metrics is optional. When it also implements metrics.Snapshotter
	// its counters are served on /metrics.
	Metrics metrics.Recorder
}

// App holds the wired services and handlers. Nothing is global, so several
// Apps can coexist in one process.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     Store
	creds     Credentials
	recorder  metrics.Recorder
	validator *middleware.Validator

	users   *service.UserService
	courses *service.CourseService
}

// New validates deps and builds an App.
func New(deps Deps) (*App, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("app: config is required")
	case deps.Store == nil:
		return nil, errors.New("app: store is required")
	case deps.Credentials == nil:
		return nil, errors.New("app: credentials are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := deps.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return &App{
		cfg:       deps.Config,
		logger:    logger,
		store:     deps.Store,
		creds:     deps.Credentials,
		recorder:  recorder,
		validator: middleware.NewValidator(),
		users:     service.NewUserService(deps.Store, deps.Credentials, recorder),
		courses:   service.NewCourseService(deps.Store, recorder),
	}, nil
}

// Router returns the HTTP handler for the whole API.
//
// Per-route middleware runs validate, then authenticate, then the handler,
// which authorizes through the service before executing. The first stage
// to fail writes the response.
func (a *App) Router() http.Handler {
	h := handler.New()
	healthHandler := handler.NewHealthHandler(a.store, a.logger)
	userHandler := handler.NewUserHandler(a.users, a.logger)
	courseHandler := handler.NewCourseHandler(a.courses, a.logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: a.cfg.IsDevelopment()}))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = a.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(a.cfg.MaxRequestBodySize))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Welcome)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	if snap, ok := a.recorder.(metrics.Snapshotter); ok {
		r.Get("/metrics", handler.NewMetricsHandler(snap).Metrics)
	}

	authenticate := middleware.Auth(middleware.AuthConfig{
		Logger:      a.logger,
		Users:       a.store,
		Verifier:    a.creds,
		Metrics:     a.recorder,
		Realm:       a.cfg.AuthRealm,
		MinDuration: a.cfg.AuthMinDuration,
	})
	validateUser := middleware.Validate[dto.CreateUserRequest](a.validator)
	validateCourse := middleware.Validate[dto.CourseRequest](a.validator)

	r.Route("/users", func(r chi.Router) {
		r.With(authenticate).Get("/", userHandler.ListSelf)
		r.With(validateUser).Post("/", userHandler.Create)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", courseHandler.List)
		r.With(validateCourse, authenticate).Post("/", courseHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", courseHandler.Get)
			r.With(validateCourse, authenticate).Put("/", courseHandler.Update)
			r.With(authenticate).Delete("/", courseHandler.Delete)
		})
	})

	return r
}
