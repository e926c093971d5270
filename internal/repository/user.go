package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/coursekeep/coursekeep/internal/model"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email_address", "password", "created_at", "updated_at",
}

// UserFilter narrows FindUsers. A zero ID lists every user.
type UserFilter struct {
	ID int64
}

// CreateUser inserts a new user and fills in its generated ID and timestamps.
// The password field must already hold a hash.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := r.sb.
		Insert("users").
		Columns("first_name", "last_name", "email_address", "password").
		Values(user.FirstName, user.LastName, user.EmailAddress, user.PasswordHash).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user, including the password hash, by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query, args, err := r.sb.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"email_address": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// FindUsers lists users matching the filter ordered by ID.
func (r *Repository) FindUsers(ctx context.Context, filter UserFilter) ([]*model.User, error) {
	builder := r.sb.Select(userColumns...).From("users").OrderBy("id")
	if filter.ID != 0 {
		builder = builder.Where(sq.Eq{"id": filter.ID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find users query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
