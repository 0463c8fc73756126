package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// GormTagRepository is the GORM implementation of TagRepository.
type GormTagRepository struct {
	db *gorm.DB
}

func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTagRepository")
	}
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}
		return nil, fmt.Errorf("gorm: find tag by name %q: %w", name, err)
	}
	return &tag, nil
}

func (r *GormTagRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}
		return nil, fmt.Errorf("gorm: find tag by slug %q: %w", slug, err)
	}
	return &tag, nil
}

func (r *GormTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	err := r.db.WithContext(ctx).Create(tag).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create tag %q: %w", tag.Name, err)
	}
	return nil
}

func (r *GormTagRepository) ListWithPostCounts(ctx context.Context, offset, limit int) ([]repository.TagWithCount, error) {
	var rows []repository.TagWithCount
	err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("post_count DESC, tags.name ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list tags with post counts: %w", err)
	}
	return rows, nil
}

func (r *GormTagRepository) AllWithPostCounts(ctx context.Context) ([]repository.TagWithCount, error) {
	var rows []repository.TagWithCount
	err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list all tags with post counts: %w", err)
	}
	return rows, nil
}

func (r *GormTagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Tag{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count tags: %w", err)
	}
	return count, nil
}

// escapeLike neutralizes LIKE metacharacters so user input only ever matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Suggest matches by prefix or substring; tag names are stored lowercase so
// lowering the query makes the match case-insensitive.
func (r *GormTagRepository) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("name LIKE ?", "%"+escapeLike(query)+"%").
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: suggest tags for %q: %w", query, err)
	}
	return names, nil
}
