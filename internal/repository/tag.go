package repository

import (
	"context"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// TagWithCount pairs a tag with the number of posts carrying it.
type TagWithCount struct {
	domain.Tag
	PostCount int64
}

// TagRepository defines storage, lookup and suggestion of tags.
type TagRepository interface {
	// FindByName looks a tag up by its exact normalized name.
	// Returns ErrTagNotFound when no such tag exists.
	FindByName(ctx context.Context, name string) (*domain.Tag, error)

	// FindBySlug looks a tag up by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*domain.Tag, error)

	// Create inserts a new tag. Returns ErrDuplicateEntry when the name or
	// slug already exists; callers resolving a get-or-create race retry the
	// lookup on that error.
	Create(ctx context.Context, tag *domain.Tag) error

	// ListWithPostCounts returns a window of tags annotated with post
	// counts, ordered by post count descending then name ascending.
	ListWithPostCounts(ctx context.Context, offset, limit int) ([]TagWithCount, error)

	// AllWithPostCounts returns every tag with its post count, for the tag
	// cloud.
	AllWithPostCounts(ctx context.Context) ([]TagWithCount, error)

	// Count returns the total number of tags.
	Count(ctx context.Context) (int64, error)

	// Suggest returns up to limit tag names matching the query by prefix or
	// substring, case-insensitively, in alphabetical order.
	Suggest(ctx context.Context, query string, limit int) ([]string, error)
}
