package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// GormTopicRepository is the GORM implementation of TopicRepository.
type GormTopicRepository struct {
	db *gorm.DB
}

func NewGormTopicRepository(db *gorm.DB) *GormTopicRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTopicRepository")
	}
	return &GormTopicRepository{db: db}
}

func (r *GormTopicRepository) FindByID(ctx context.Context, id uint) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Category").
		First(&topic, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTopicNotFound
		}
		return nil, fmt.Errorf("gorm: find topic by id %d: %w", id, err)
	}
	return &topic, nil
}

func (r *GormTopicRepository) Save(ctx context.Context, topic *domain.Topic) error {
	err := r.db.WithContext(ctx).Omit("CreatedBy", "Category", "Posts").Save(topic).Error
	if err != nil {
		return fmt.Errorf("gorm: save topic (id: %d, subject: %s): %w", topic.ID, topic.Subject, err)
	}
	return nil
}

// scoped narrows a query to the listing scope: nil category means global.
func scoped(q *gorm.DB, scope repository.TopicScope) *gorm.DB {
	if scope.CategoryID != nil {
		return q.Where("category_id = ?", *scope.CategoryID)
	}
	return q
}

func (r *GormTopicRepository) ListSticky(ctx context.Context, scope repository.TopicScope) ([]domain.Topic, error) {
	var topics []domain.Topic
	q := r.db.WithContext(ctx).Preload("CreatedBy").Where("is_sticky = ?", true)
	err := scoped(q, scope).Order("created_at DESC").Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list sticky topics: %w", err)
	}
	return topics, nil
}

func (r *GormTopicRepository) ListRegular(ctx context.Context, scope repository.TopicScope, offset, limit int) ([]domain.Topic, error) {
	var topics []domain.Topic
	q := r.db.WithContext(ctx).Preload("CreatedBy").Where("is_sticky = ?", false)
	err := scoped(q, scope).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list regular topics: %w", err)
	}
	return topics, nil
}

func (r *GormTopicRepository) CountRegular(ctx context.Context, scope repository.TopicScope) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.Topic{}).Where("is_sticky = ?", false)
	err := scoped(q, scope).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count regular topics: %w", err)
	}
	return count, nil
}

func (r *GormTopicRepository) ListByAuthor(ctx context.Context, userID uint) ([]domain.Topic, error) {
	var topics []domain.Topic
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list topics by author %d: %w", userID, err)
	}
	return topics, nil
}
