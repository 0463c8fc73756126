package repository

import (
	"context"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// UserRepository defines storage and retrieval of user accounts.
type UserRepository interface {
	// FindByUsername looks a user up by their unique username.
	// Returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID looks a user up by primary key.
	// Returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save creates the user when its ID is zero and updates it otherwise.
	// Returns ErrDuplicateEntry when the username or email is already taken.
	Save(ctx context.Context, user *domain.User) error

	// Delete removes the user; topics, posts and the profile go with it.
	Delete(ctx context.Context, id uint) error
}
