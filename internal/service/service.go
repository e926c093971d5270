// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"

	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
)

//go:generate mockgen -destination=mocks/store_mock.go -package=mocks . UserStore,CourseStore,PasswordHasher

// Service errors.
var (
	ErrDuplicateEmail  = errors.New("email address already in use")
	ErrPasswordTooLong = errors.New("password is too long for the configured hasher")
	ErrCourseNotFound  = errors.New("course not found")
	ErrForbidden       = errors.New("course is owned by another user")
)

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUsers(ctx context.Context, filter repository.UserFilter) ([]*model.User, error)
}

// CourseStore persists courses.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	GetCourseByID(ctx context.Context, id int64) (*model.Course, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
	UpdateCourse(ctx context.Context, course *model.Course) error
	DeleteCourse(ctx context.Context, id, ownerID int64) error
}

// PasswordHasher turns a plaintext password into a salted one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
