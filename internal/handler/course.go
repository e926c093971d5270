package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/handler/dto"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/service"
)

const (
	courseNotFoundMessage = "Course not found"
	forbiddenMessage      = "You may only change courses you own"
)

// CourseHandler handles HTTP requests for course operations.
type CourseHandler struct {
	svc    *service.CourseService
	logger *slog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(svc *service.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.ListCourses(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if courses == nil {
		courses = []*model.Course{}
	}
	writeJSON(w, http.StatusOK, dto.CourseListResponse{Courses: courses})
}

// Get handles GET /courses/{id}. A missing course is reported as 400.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, courseNotFoundMessage)
		return
	}

	course, err := h.svc.GetCourse(r.Context(), id)
	if errors.Is(err, service.ErrCourseNotFound) {
		writeError(w, http.StatusBadRequest, courseNotFoundMessage)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CourseResponse{Course: course})
}

// Create handles POST /courses. The authenticated user becomes the owner.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := auth.MustIdentityFromContext(r.Context())

	var req dto.CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Request body must be a valid JSON object")
		return
	}

	course, err := h.svc.CreateCourse(r.Context(), owner, service.CreateCourseInput{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("course_created",
		"course_id", course.ID,
		"user_id", owner.ID,
	)

	w.Header().Set("Location", "/courses/"+strconv.FormatInt(course.ID, 10))
	w.WriteHeader(http.StatusCreated)
}

// Update handles PUT /courses/{id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	requester := auth.MustIdentityFromContext(r.Context())

	id, ok := courseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, courseNotFoundMessage)
		return
	}

	var req dto.CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Request body must be a valid JSON object")
		return
	}

	if _, err := h.svc.UpdateCourse(r.Context(), requester, id, req.Changes()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("course_updated",
		"course_id", id,
		"user_id", requester.ID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /courses/{id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester := auth.MustIdentityFromContext(r.Context())

	id, ok := courseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, courseNotFoundMessage)
		return
	}

	if err := h.svc.DeleteCourse(r.Context(), requester, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("course_deleted",
		"course_id", id,
		"user_id", requester.ID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *CourseHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		writeError(w, http.StatusNotFound, courseNotFoundMessage)
	case errors.Is(err, service.ErrForbidden):
		h.logger.Warn("course_ownership_denied",
			"user_id", auth.UserIDFromContext(r.Context()),
			"path", r.URL.Path,
		)
		writeError(w, http.StatusForbidden, forbiddenMessage)
	default:
		h.logger.Error("internal_error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// courseID parses the {id} URL parameter. Anything that is not a positive
// integer cannot name a course.
func courseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
