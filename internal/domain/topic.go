package domain

import "time"

// Topic is a discussion thread. Sticky topics are pinned above the regular
// listing in their scope (global index or their category).
type Topic struct {
	ID          uint      `gorm:"primaryKey"`
	Subject     string    `gorm:"type:varchar(255);not null"`
	CreatedByID uint      `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	IsSticky    bool      `gorm:"not null;default:false;index"`
	CategoryID  *uint     `gorm:"index"` // nil when uncategorized or the category was deleted

	CreatedBy User      `gorm:"foreignKey:CreatedByID"`
	Category  *Category `gorm:"foreignKey:CategoryID"`
	Posts     []Post    `gorm:"constraint:OnDelete:CASCADE"`
}
