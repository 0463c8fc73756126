package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// TagNameMaxLength is the longest stored tag name; longer tokens fail
// validation in the owning form, not in the normalizer.
const TagNameMaxLength = 50

// Tag is a keyword shared by many posts. Names are always stored lowercase
// and trimmed; name and slug are each globally unique.
type Tag struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex:idx_tag_name;not null"`
	Slug      string    `gorm:"type:varchar(50);uniqueIndex:idx_tag_slug;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Posts []Post `gorm:"many2many:post_tags"`
}

// Normalize lowercases and trims the name and derives the slug from the
// normalized name when none was provided.
func (t *Tag) Normalize() {
	t.Name = strings.ToLower(strings.TrimSpace(t.Name))
	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}
}
