package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/handler/dto"
	"github.com/coursekeep/coursekeep/internal/service"
)

const (
	// duplicateEmailMessage is reported when registration reuses an email address.
	duplicateEmailMessage  = "Email address already in use."
	passwordTooLongMessage = `Please provide a password of at most 72 bytes for "password"`
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListSelf handles GET /users. Only the authenticated user is returned.
func (h *UserHandler) ListSelf(w http.ResponseWriter, r *http.Request) {
	requester := auth.MustIdentityFromContext(r.Context())

	profiles, err := h.svc.ListSelf(r.Context(), requester)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserListResponse{User: profiles})
}

// Create handles POST /users. The body has already been validated.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Request body must be a valid JSON object")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		writeErrors(w, http.StatusBadRequest, duplicateEmailMessage)
	case errors.Is(err, service.ErrPasswordTooLong):
		writeErrors(w, http.StatusBadRequest, passwordTooLongMessage)
	default:
		h.logger.Error("internal_error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
