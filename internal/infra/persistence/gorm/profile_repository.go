package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// GormProfileRepository is the GORM implementation of ProfileRepository.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	if db == nil {
		panic("database connection cannot be nil for GormProfileRepository")
	}
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}
		return nil, fmt.Errorf("gorm: find profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

func (r *GormProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	err := r.db.WithContext(ctx).Save(profile).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save profile (id: %d, user_id: %d): %w", profile.ID, profile.UserID, err)
	}
	return nil
}

// UpdateLastSeen touches only the last_seen column so concurrent profile
// edits are not clobbered by the per-request middleware write.
func (r *GormProfileRepository) UpdateLastSeen(ctx context.Context, userID uint, seenAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("last_seen", seenAt).Error
	if err != nil {
		return fmt.Errorf("gorm: update last_seen for user %d: %w", userID, err)
	}
	return nil
}
