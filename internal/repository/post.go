package repository

import (
	"context"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// PostRepository defines storage and listing of posts.
type PostRepository interface {
	// FindByID looks a post up by primary key, including its author and
	// tags. Returns ErrPostNotFound when no such post exists.
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// Save creates the post when its ID is zero and updates it otherwise.
	// Tag associations are managed through ReplaceTags, not Save.
	Save(ctx context.Context, post *domain.Post) error

	// Delete removes the post and its tag associations.
	Delete(ctx context.Context, id uint) error

	// ReplaceTags clears the post's tag set and associates exactly the
	// given tags. Edits replace, never merge.
	ReplaceTags(ctx context.Context, post *domain.Post, tags []domain.Tag) error

	// ListByTopic returns every post of a topic, oldest first, with tags.
	ListByTopic(ctx context.Context, topicID uint) ([]domain.Post, error)

	// ListByTag returns a window of the posts carrying a tag, newest first.
	ListByTag(ctx context.Context, tagID uint, offset, limit int) ([]domain.Post, error)

	// CountByTag returns the number of posts carrying a tag.
	CountByTag(ctx context.Context, tagID uint) (int64, error)

	// ListByAuthor returns the posts created by a user, newest first.
	ListByAuthor(ctx context.Context, userID uint) ([]domain.Post, error)
}
