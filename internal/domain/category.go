package domain

import (
	"time"

	"github.com/gosimple/slug"
)

// Category groups related topics. Name and slug are each globally unique;
// the slug is derived from the name unless set explicitly.
type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(191);uniqueIndex:idx_category_name;not null"`
	Slug        string    `gorm:"type:varchar(191);uniqueIndex:idx_category_slug;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// Deleting a category orphans its topics rather than deleting them.
	Topics []Topic `gorm:"constraint:OnDelete:SET NULL"`
}

// EnsureSlug derives the slug from the name when none was provided.
func (c *Category) EnsureSlug() {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
}
