package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// PostService owns replies and post editing/deletion.
type PostService struct {
	postRepo   repository.PostRepository
	topicRepo  repository.TopicRepository
	tagService *TagService
}

func NewPostService(postRepo repository.PostRepository, topicRepo repository.TopicRepository, tagService *TagService) *PostService {
	if postRepo == nil || topicRepo == nil || tagService == nil {
		panic("dependencies cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo, topicRepo: topicRepo, tagService: tagService}
}

// guardOwner is the authorization gate for post mutation: only the author
// may edit or delete. Evaluated before any further work, and the deny
// result is the same for edit and delete.
func guardOwner(post *domain.Post, viewer Viewer) error {
	if !viewer.Authenticated || post.CreatedByID != viewer.UserID {
		return ErrForbidden
	}
	return nil
}

// Reply adds a post to an existing topic, with optional tags.
func (s *PostService) Reply(ctx context.Context, userID, topicID uint, message, rawTags string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "topic_id": topicID})

	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message", "message is required")
	}

	if _, err := s.topicRepo.FindByID(ctx, topicID); err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return nil, ErrTopicNotFound
		}
		logCtx.WithError(err).Error("Failed to find topic for reply")
		return nil, ErrInternalServer
	}

	tags, err := s.tagService.ResolveTags(ctx, rawTags)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Message:     message,
		TopicID:     topicID,
		CreatedByID: userID,
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save reply")
		return nil, ErrInternalServer
	}
	if len(tags) > 0 {
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			logCtx.WithError(err).Error("Failed to attach tags to reply")
			return nil, ErrInternalServer
		}
	}

	logCtx.WithField("post_id", post.ID).Info("Reply created successfully")
	return post, nil
}

// Edit updates a post's message and replaces its tag set. Sets UpdatedAt on
// the first and every subsequent edit. Only the author may edit.
func (s *PostService) Edit(ctx context.Context, viewer Viewer, postID uint, message, rawTags string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": viewer.UserID, "post_id": postID})

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to find post for edit")
		return nil, ErrInternalServer
	}

	if err := guardOwner(post, viewer); err != nil {
		logCtx.Warn("Edit denied: viewer is not the author")
		return nil, err
	}

	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message", "message is required")
	}

	tags, err := s.tagService.ResolveTags(ctx, rawTags)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post.Message = message
	post.UpdatedAt = &now
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save edited post")
		return nil, ErrInternalServer
	}
	// The prior tag set is fully replaced, not merged.
	if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
		logCtx.WithError(err).Error("Failed to replace tags on edited post")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post edited successfully")
	return post, nil
}

// Delete removes a post. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, viewer Viewer, postID uint) (topicID uint, err error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": viewer.UserID, "post_id": postID})

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return 0, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to find post for delete")
		return 0, ErrInternalServer
	}

	if err := guardOwner(post, viewer); err != nil {
		logCtx.Warn("Delete denied: viewer is not the author")
		return 0, err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return 0, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to delete post")
		return 0, ErrInternalServer
	}

	logCtx.Info("Post deleted successfully")
	return post.TopicID, nil
}
