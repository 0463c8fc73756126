// Package domain defines the data structures (database models) used by the
// application.
package domain

import "time"

// User represents a registered forum member.
type User struct {
	ID          uint      `gorm:"primaryKey"`
	Username    string    `gorm:"type:varchar(191);uniqueIndex:idx_username;not null"`
	Email       string    `gorm:"type:varchar(191);uniqueIndex:idx_email"`
	Password    string    `gorm:"type:text;not null"` // bcrypt hash, never the plain password
	IsStaff     bool      `gorm:"not null;default:false"`
	IsSuperuser bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// Deleting a user removes everything they own.
	Profile *Profile `gorm:"constraint:OnDelete:CASCADE"`
	Topics  []Topic  `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	Posts   []Post   `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
}
