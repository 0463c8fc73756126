package domain

import "time"

// Post is a message within a topic. UpdatedAt stays nil until the post is
// edited for the first time.
type Post struct {
	ID          uint      `gorm:"primaryKey"`
	Message     string    `gorm:"type:text;not null"`
	TopicID     uint      `gorm:"index;not null"`
	CreatedByID uint      `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`

	CreatedBy User  `gorm:"foreignKey:CreatedByID"`
	Tags      []Tag `gorm:"many2many:post_tags"`
}
