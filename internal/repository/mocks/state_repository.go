package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

type StateRepository struct {
	mock.Mock
}

func (m *StateRepository) GetTagCloud(ctx context.Context) ([]domain.TagCloudEntry, error) {
	args := m.Called(ctx)
	cloud, _ := args.Get(0).([]domain.TagCloudEntry)
	return cloud, args.Error(1)
}

func (m *StateRepository) SetTagCloud(ctx context.Context, cloud []domain.TagCloudEntry, ttl time.Duration) error {
	return m.Called(ctx, cloud, ttl).Error(0)
}

func (m *StateRepository) AllowLastSeenWrite(ctx context.Context, userID uint, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, window)
	return args.Bool(0), args.Error(1)
}
