package repository

import (
	"context"
	"time"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// StateRepository defines the volatile, cross-request state kept in Redis.
type StateRepository interface {
	// GetTagCloud returns the cached tag cloud. Returns ErrNotFound on a
	// cache miss.
	GetTagCloud(ctx context.Context) ([]domain.TagCloudEntry, error)

	// SetTagCloud stores the tag cloud with the given TTL. A TTL of zero
	// means no expiry.
	SetTagCloud(ctx context.Context, cloud []domain.TagCloudEntry, ttl time.Duration) error

	// AllowLastSeenWrite reports whether the last_seen column for the user
	// should be written now. It returns true at most once per window per
	// user, so every authenticated request does not turn into a DB write.
	AllowLastSeenWrite(ctx context.Context, userID uint, window time.Duration) (bool, error)
}
