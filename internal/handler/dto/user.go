// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/coursekeep/coursekeep/internal/model"

// CreateUserRequest represents the request body for registering a user.
// Field order is the order validation messages are reported in.
type CreateUserRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

// UserListResponse wraps the authenticated user's own record.
type UserListResponse struct {
	User []model.UserProfile `json:"user"`
}
