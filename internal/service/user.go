package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
)

// UserService handles registration and self lookup.
type UserService struct {
	store   UserStore
	hasher  PasswordHasher
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, hasher PasswordHasher, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		hasher:  hasher,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

// Register hashes the password and stores a new user.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		EmailAddress: input.EmailAddress,
		PasswordHash: hash,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.metrics.IncUserCreated()
	return user, nil
}

// ListSelf returns the users matching the requester's own identity.
func (s *UserService) ListSelf(ctx context.Context, requester *model.User) ([]model.UserProfile, error) {
	users, err := s.store.FindUsers(ctx, repository.UserFilter{ID: requester.ID})
	if err != nil {
		return nil, err
	}

	profiles := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}
