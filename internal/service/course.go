package service

import (
	"context"
	"errors"

	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
)

// CourseService handles course business logic. Mutations run
// lookup → ownership check → write and stop at the first failing stage.
type CourseService struct {
	store   CourseStore
	metrics metrics.Recorder
}

// NewCourseService creates a new CourseService.
func NewCourseService(store CourseStore, recorder metrics.Recorder) *CourseService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CourseService{
		store:   store,
		metrics: recorder,
	}
}

// CreateCourseInput defines input for creating a course.
type CreateCourseInput struct {
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// ListCourses returns every course.
func (s *CourseService) ListCourses(ctx context.Context) ([]*model.Course, error) {
	return s.store.ListCourses(ctx)
}

// GetCourse returns a single course or ErrCourseNotFound.
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return course, nil
}

// CreateCourse stores a new course owned by owner.
func (s *CourseService) CreateCourse(ctx context.Context, owner *model.User, input CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		UserID:          owner.ID,
		Title:           input.Title,
		Description:     input.Description,
		EstimatedTime:   input.EstimatedTime,
		MaterialsNeeded: input.MaterialsNeeded,
	}

	if err := s.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	s.metrics.IncCourseCreated()
	return course, nil
}

// UpdateCourse applies changes to the course if requester owns it.
func (s *CourseService) UpdateCourse(ctx context.Context, requester *model.User, id int64, changes model.CourseChanges) (*model.Course, error) {
	course, err := s.authorize(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	changes.Apply(course)

	if err := s.store.UpdateCourse(ctx, course); err != nil {
		return nil, mapStoreError(err)
	}

	s.metrics.IncCourseUpdated()
	return course, nil
}

// DeleteCourse removes the course if requester owns it.
func (s *CourseService) DeleteCourse(ctx context.Context, requester *model.User, id int64) error {
	if _, err := s.authorize(ctx, requester, id); err != nil {
		return err
	}

	if err := s.store.DeleteCourse(ctx, id, requester.ID); err != nil {
		return mapStoreError(err)
	}

	s.metrics.IncCourseDeleted()
	return nil
}

// authorize loads the course and checks ownership. Existence is always
// checked before ownership.
func (s *CourseService) authorize(ctx context.Context, requester *model.User, id int64) (*model.Course, error) {
	course, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if !course.OwnedBy(requester.ID) {
		s.metrics.IncOwnershipDenied()
		return nil, ErrForbidden
	}

	return course, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrCourseNotFound) {
		return ErrCourseNotFound
	}
	return err
}
