package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/pagination"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// TopicsPerPage is the regular-topic page size for the forum index and the
// per-category listing. Sticky topics never count toward it.
const TopicsPerPage = 5

// MaxSubjectLength mirrors the column size of Topic.Subject.
const MaxSubjectLength = 255

// TopicService owns topic listings and topic creation.
type TopicService struct {
	topicRepo    repository.TopicRepository
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagService   *TagService
}

func NewTopicService(topicRepo repository.TopicRepository, postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, tagService *TagService) *TopicService {
	if topicRepo == nil || postRepo == nil || categoryRepo == nil || tagService == nil {
		panic("dependencies cannot be nil for TopicService")
	}
	return &TopicService{
		topicRepo:    topicRepo,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagService:   tagService,
	}
}

// TopicListing is a sticky-first page of topics: the full sticky set on
// every page, then one page of regular topics.
type TopicListing struct {
	Sticky      []domain.Topic
	Regular     []domain.Topic
	Page        pagination.Page
	ElidedRange []string
}

// ForumIndex returns the global topic listing.
func (s *TopicService) ForumIndex(ctx context.Context, pageToken string) (*TopicListing, error) {
	return s.listing(ctx, repository.TopicScope{}, pageToken)
}

// TopicsByCategory returns the listing for one category, resolved by slug.
func (s *TopicService) TopicsByCategory(ctx context.Context, categorySlug, pageToken string) (*domain.Category, *TopicListing, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		logrus.WithError(err).WithField("slug", categorySlug).Error("Failed to find category")
		return nil, nil, ErrInternalServer
	}

	listing, err := s.listing(ctx, repository.TopicScope{CategoryID: &category.ID}, pageToken)
	if err != nil {
		return nil, nil, err
	}
	return category, listing, nil
}

func (s *TopicService) listing(ctx context.Context, scope repository.TopicScope, pageToken string) (*TopicListing, error) {
	sticky, err := s.topicRepo.ListSticky(ctx, scope)
	if err != nil {
		logrus.WithError(err).Error("Failed to list sticky topics")
		return nil, ErrInternalServer
	}

	total, err := s.topicRepo.CountRegular(ctx, scope)
	if err != nil {
		logrus.WithError(err).Error("Failed to count regular topics")
		return nil, ErrInternalServer
	}
	page := pagination.New(int(total), TopicsPerPage).Page(pageToken)

	regular, err := s.topicRepo.ListRegular(ctx, scope, page.Offset, page.Limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list regular topics")
		return nil, ErrInternalServer
	}

	return &TopicListing{
		Sticky:      sticky,
		Regular:     regular,
		Page:        page,
		ElidedRange: page.ElidedRange(),
	}, nil
}

// TopicDetail is a topic together with all of its posts, oldest first.
type TopicDetail struct {
	Topic domain.Topic
	Posts []domain.Post
}

// Detail loads one topic and its posts.
func (s *TopicService) Detail(ctx context.Context, topicID uint) (*TopicDetail, error) {
	topic, err := s.topicRepo.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return nil, ErrTopicNotFound
		}
		logrus.WithError(err).WithField("topic_id", topicID).Error("Failed to find topic")
		return nil, ErrInternalServer
	}

	posts, err := s.postRepo.ListByTopic(ctx, topicID)
	if err != nil {
		logrus.WithError(err).WithField("topic_id", topicID).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	return &TopicDetail{Topic: *topic, Posts: posts}, nil
}

// Create makes a topic and its first post in one operation; tags from the
// raw tags string attach to that first post.
func (s *TopicService) Create(ctx context.Context, userID uint, subject, message string, categoryID *uint, rawTags string) (*domain.Topic, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "subject": subject})

	fields := FieldErrors{}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		fields["subject"] = append(fields["subject"], "subject is required")
	} else if len(subject) > MaxSubjectLength {
		fields["subject"] = append(fields["subject"], "subject is too long")
	}
	if strings.TrimSpace(message) == "" {
		fields["message"] = append(fields["message"], "message is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, NewValidationError("category", "selected category does not exist")
			}
			logCtx.WithError(err).Error("Failed to verify category")
			return nil, ErrInternalServer
		}
	}

	tags, err := s.tagService.ResolveTags(ctx, rawTags)
	if err != nil {
		return nil, err
	}

	topic := &domain.Topic{
		Subject:     subject,
		CreatedByID: userID,
		CategoryID:  categoryID,
	}
	if err := s.topicRepo.Save(ctx, topic); err != nil {
		logCtx.WithError(err).Error("Failed to save new topic")
		return nil, ErrInternalServer
	}

	post := &domain.Post{
		Message:     message,
		TopicID:     topic.ID,
		CreatedByID: userID,
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save first post of topic")
		return nil, ErrInternalServer
	}
	if len(tags) > 0 {
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			logCtx.WithError(err).Error("Failed to attach tags to first post")
			return nil, ErrInternalServer
		}
	}

	logCtx.WithField("topic_id", topic.ID).Info("Topic created successfully")
	return topic, nil
}
