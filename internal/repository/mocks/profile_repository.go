package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) UpdateLastSeen(ctx context.Context, userID uint, seenAt time.Time) error {
	return m.Called(ctx, userID, seenAt).Error(0)
}
