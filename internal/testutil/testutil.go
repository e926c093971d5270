// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
)

// MemoryStore is an in-memory stand-in for the PostgreSQL repository.
// It enforces the same constraints as the schema: unique email addresses
// and a course owner that must exist. Records are copied on the way in and
// out so callers never share memory with the store.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[int64]model.User
	courses      map[int64]model.Course
	nextUserID   int64
	nextCourseID int64

	// PingErr is returned by Ping when set.
	PingErr error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[int64]model.User),
		courses: make(map[int64]model.Course),
	}
}

// Ping reports PingErr.
func (s *MemoryStore) Ping(context.Context) error {
	return s.PingErr
}

// CreateUser stores user and assigns its ID.
func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.EmailAddress == user.EmailAddress {
			return repository.ErrEmailExists
		}
	}

	s.nextUserID++
	now := time.Now().UTC()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

// GetUserByEmail returns the user with the given email address.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.EmailAddress == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// FindUsers returns users matching filter ordered by ID.
func (s *MemoryStore) FindUsers(_ context.Context, filter repository.UserFilter) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, 0, 1)
	for _, u := range s.users {
		if filter.ID != 0 && u.ID != filter.ID {
			continue
		}
		found := u
		users = append(users, &found)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UserCount returns the number of stored users.
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// CreateCourse stores course and assigns its ID.
func (s *MemoryStore) CreateCourse(_ context.Context, course *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[course.UserID]; !ok {
		return repository.ErrOwnerNotFound
	}

	s.nextCourseID++
	now := time.Now().UTC()
	course.ID = s.nextCourseID
	course.CreatedAt = now
	course.UpdatedAt = now
	s.courses[course.ID] = cloneCourse(*course)
	return nil
}

// GetCourseByID returns the course with the given ID.
func (s *MemoryStore) GetCourseByID(_ context.Context, id int64) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, repository.ErrCourseNotFound
	}
	found := cloneCourse(c)
	return &found, nil
}

// ListCourses returns every course ordered by ID.
func (s *MemoryStore) ListCourses(context.Context) ([]*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses := make([]*model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		found := cloneCourse(c)
		courses = append(courses, &found)
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// UpdateCourse overwrites the editable fields of a course owned by course.UserID.
func (s *MemoryStore) UpdateCourse(_ context.Context, course *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.courses[course.ID]
	if !ok || stored.UserID != course.UserID {
		return repository.ErrCourseNotFound
	}

	stored.Title = course.Title
	stored.Description = course.Description
	stored.EstimatedTime = course.EstimatedTime
	stored.MaterialsNeeded = course.MaterialsNeeded
	stored.UpdatedAt = time.Now().UTC()
	s.courses[course.ID] = cloneCourse(stored)
	course.UpdatedAt = stored.UpdatedAt
	return nil
}

// DeleteCourse removes the course if it is owned by ownerID.
func (s *MemoryStore) DeleteCourse(_ context.Context, id, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.courses[id]
	if !ok || stored.UserID != ownerID {
		return repository.ErrCourseNotFound
	}
	delete(s.courses, id)
	return nil
}

func cloneCourse(c model.Course) model.Course {
	c.EstimatedTime = cloneString(c.EstimatedTime)
	c.MaterialsNeeded = cloneString(c.MaterialsNeeded)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
