package repository

import (
	"context"
	"time"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// ProfileRepository defines storage of per-user profiles.
type ProfileRepository interface {
	// FindByUserID returns the profile belonging to the given user.
	// Returns ErrProfileNotFound when the user has no profile yet.
	FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error)

	// Save creates or updates the profile. Returns ErrDuplicateEntry when a
	// second profile is created for the same user.
	Save(ctx context.Context, profile *domain.Profile) error

	// UpdateLastSeen sets only the last_seen column for the given user's
	// profile, leaving the rest of the row untouched.
	UpdateLastSeen(ctx context.Context, userID uint, seenAt time.Time) error
}
