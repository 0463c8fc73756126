package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// GormCategoryRepository is the GORM implementation of CategoryRepository.
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCategoryRepository")
	}
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("gorm: find category by slug %q: %w", slug, err)
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("gorm: find category by id %d: %w", id, err)
	}
	return &category, nil
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	err := r.db.WithContext(ctx).Save(category).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save category (id: %d, name: %s): %w", category.ID, category.Name, err)
	}
	return nil
}

// ListWithTopicCounts orders by name descending so the listing stays stable
// regardless of insertion order.
func (r *GormCategoryRepository) ListWithTopicCounts(ctx context.Context, offset, limit int) ([]repository.CategoryWithCount, error) {
	var rows []repository.CategoryWithCount
	err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Select("categories.*, COUNT(topics.id) AS topic_count").
		Joins("LEFT JOIN topics ON topics.category_id = categories.id").
		Group("categories.id").
		Order("categories.name DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list categories with topic counts: %w", err)
	}
	return rows, nil
}

func (r *GormCategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count categories: %w", err)
	}
	return count, nil
}
