package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *CategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) ListWithTopicCounts(ctx context.Context, offset, limit int) ([]repository.CategoryWithCount, error) {
	args := m.Called(ctx, offset, limit)
	list, _ := args.Get(0).([]repository.CategoryWithCount)
	return list, args.Error(1)
}

func (m *CategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
