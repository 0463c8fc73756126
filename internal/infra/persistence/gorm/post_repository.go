package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// GormPostRepository is the GORM implementation of PostRepository.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	err := r.db.WithContext(ctx).Omit("CreatedBy", "Tags").Save(post).Error
	if err != nil {
		return fmt.Errorf("gorm: save post (id: %d, topic: %d): %w", post.ID, post.TopicID, err)
	}
	return nil
}

func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	// Clear the join rows first; MySQL does not cascade many2many deletes
	// through GORM's association table automatically.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Post{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&domain.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("gorm: delete post %d: %w", id, err)
	}
	return nil
}

// ReplaceTags swaps the post's tag set wholesale. Edits replace the prior
// associations, they never merge.
func (r *GormPostRepository) ReplaceTags(ctx context.Context, post *domain.Post, tags []domain.Tag) error {
	err := r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
	if err != nil {
		return fmt.Errorf("gorm: replace tags on post %d: %w", post.ID, err)
	}
	post.Tags = tags
	return nil
}

func (r *GormPostRepository) ListByTopic(ctx context.Context, topicID uint) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Tags").
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts by topic %d: %w", topicID, err)
	}
	return posts, nil
}

func (r *GormPostRepository) ListByTag(ctx context.Context, tagID uint, offset, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts by tag %d: %w", tagID, err)
	}
	return posts, nil
}

func (r *GormPostRepository) CountByTag(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count posts by tag %d: %w", tagID, err)
	}
	return count, nil
}

func (r *GormPostRepository) ListByAuthor(ctx context.Context, userID uint) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts by author %d: %w", userID, err)
	}
	return posts, nil
}
