package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*domain.Post)
	return post, args.Error(1)
}

func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PostRepository) ReplaceTags(ctx context.Context, post *domain.Post, tags []domain.Tag) error {
	return m.Called(ctx, post, tags).Error(0)
}

func (m *PostRepository) ListByTopic(ctx context.Context, topicID uint) ([]domain.Post, error) {
	args := m.Called(ctx, topicID)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) ListByTag(ctx context.Context, tagID uint, offset, limit int) ([]domain.Post, error) {
	args := m.Called(ctx, tagID, offset, limit)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) CountByTag(ctx context.Context, tagID uint) (int64, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepository) ListByAuthor(ctx context.Context, userID uint) ([]domain.Post, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}
