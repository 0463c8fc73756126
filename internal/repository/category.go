package repository

import (
	"context"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// CategoryWithCount pairs a category with the number of topics filed under it.
type CategoryWithCount struct {
	domain.Category
	TopicCount int64
}

// CategoryRepository defines storage and listing of categories.
type CategoryRepository interface {
	// FindBySlug looks a category up by its unique slug.
	// Returns ErrCategoryNotFound when no such category exists.
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// FindByID looks a category up by primary key.
	FindByID(ctx context.Context, id uint) (*domain.Category, error)

	// Save creates or updates the category. Returns ErrDuplicateEntry when
	// the name or slug collides with an existing category.
	Save(ctx context.Context, category *domain.Category) error

	// ListWithTopicCounts returns a window of categories ordered by name
	// descending, each annotated with its topic count.
	ListWithTopicCounts(ctx context.Context, offset, limit int) ([]CategoryWithCount, error)

	// Count returns the total number of categories.
	Count(ctx context.Context) (int64, error)
}
