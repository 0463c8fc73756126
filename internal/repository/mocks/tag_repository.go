package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	tag, _ := args.Get(0).(*domain.Tag)
	return tag, args.Error(1)
}

func (m *TagRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	args := m.Called(ctx, slug)
	tag, _ := args.Get(0).(*domain.Tag)
	return tag, args.Error(1)
}

func (m *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TagRepository) ListWithPostCounts(ctx context.Context, offset, limit int) ([]repository.TagWithCount, error) {
	args := m.Called(ctx, offset, limit)
	list, _ := args.Get(0).([]repository.TagWithCount)
	return list, args.Error(1)
}

func (m *TagRepository) AllWithPostCounts(ctx context.Context) ([]repository.TagWithCount, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]repository.TagWithCount)
	return list, args.Error(1)
}

func (m *TagRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TagRepository) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}
