package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

type TopicRepository struct {
	mock.Mock
}

func (m *TopicRepository) FindByID(ctx context.Context, id uint) (*domain.Topic, error) {
	args := m.Called(ctx, id)
	topic, _ := args.Get(0).(*domain.Topic)
	return topic, args.Error(1)
}

func (m *TopicRepository) Save(ctx context.Context, topic *domain.Topic) error {
	return m.Called(ctx, topic).Error(0)
}

func (m *TopicRepository) ListSticky(ctx context.Context, scope repository.TopicScope) ([]domain.Topic, error) {
	args := m.Called(ctx, scope)
	topics, _ := args.Get(0).([]domain.Topic)
	return topics, args.Error(1)
}

func (m *TopicRepository) ListRegular(ctx context.Context, scope repository.TopicScope, offset, limit int) ([]domain.Topic, error) {
	args := m.Called(ctx, scope, offset, limit)
	topics, _ := args.Get(0).([]domain.Topic)
	return topics, args.Error(1)
}

func (m *TopicRepository) CountRegular(ctx context.Context, scope repository.TopicScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TopicRepository) ListByAuthor(ctx context.Context, userID uint) ([]domain.Topic, error) {
	args := m.Called(ctx, userID)
	topics, _ := args.Get(0).([]domain.Topic)
	return topics, args.Error(1)
}
