package repository

import (
	"context"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// TopicScope narrows topic listings to a category. The zero value (nil
// CategoryID) means the global scope, i.e. topics of every category and
// uncategorized ones.
type TopicScope struct {
	CategoryID *uint
}

// TopicRepository defines storage and listing of discussion topics.
type TopicRepository interface {
	// FindByID looks a topic up by primary key, including its author and
	// category. Returns ErrTopicNotFound when no such topic exists.
	FindByID(ctx context.Context, id uint) (*domain.Topic, error)

	// Save creates the topic when its ID is zero and updates it otherwise.
	Save(ctx context.Context, topic *domain.Topic) error

	// ListSticky returns every sticky topic in scope, newest first. The
	// sticky set is never paginated.
	ListSticky(ctx context.Context, scope TopicScope) ([]domain.Topic, error)

	// ListRegular returns a window of the non-sticky topics in scope,
	// newest first.
	ListRegular(ctx context.Context, scope TopicScope, offset, limit int) ([]domain.Topic, error)

	// CountRegular returns the number of non-sticky topics in scope.
	CountRegular(ctx context.Context, scope TopicScope) (int64, error)

	// ListByAuthor returns the topics created by a user, newest first.
	ListByAuthor(ctx context.Context, userID uint) ([]domain.Topic, error)
}
