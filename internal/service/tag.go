package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/pagination"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// Listing sizes and limits for the tag flows.
const (
	TagsPerPage        = 20
	PostsByTagPerPage  = 10
	MaxTagSuggestions  = 10
	tagCloudCacheTTL   = 10 * time.Minute
	maxGetOrCreateTries = 3
)

// TagService owns tag normalization, lookup, suggestions and the tag cloud.
type TagService struct {
	tagRepo   repository.TagRepository
	postRepo  repository.PostRepository
	stateRepo repository.StateRepository
}

func NewTagService(tagRepo repository.TagRepository, postRepo repository.PostRepository, stateRepo repository.StateRepository) *TagService {
	if tagRepo == nil || postRepo == nil {
		panic("repositories cannot be nil for TagService")
	}
	return &TagService{tagRepo: tagRepo, postRepo: postRepo, stateRepo: stateRepo}
}

// NormalizeTagNames canonicalizes free-text comma-separated tag input:
// split on commas, trim, drop empties, lowercase, de-duplicate keeping the
// first occurrence. Normalizing already-normalized input is a no-op.
func NormalizeTagNames(raw string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(token))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ResolveTags turns raw tag input into persisted Tag records, creating any
// that do not exist yet. Over-long names surface as a field-level validation
// error on the "tags" field.
func (s *TagService) ResolveTags(ctx context.Context, raw string) ([]domain.Tag, error) {
	names := NormalizeTagNames(raw)
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		if len(name) > domain.TagNameMaxLength {
			return nil, NewValidationError("tags",
				"tag name is too long (maximum "+strconv.Itoa(domain.TagNameMaxLength)+" characters): "+name)
		}
		tag, err := s.getOrCreate(ctx, name)
		if err != nil {
			logrus.WithError(err).WithField("tag", name).Error("Failed to get or create tag")
			return nil, ErrInternalServer
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// getOrCreate resolves one normalized name. A duplicate-entry error from
// Create means another request created the tag between our lookup and
// insert; the retry loop re-runs the lookup instead of failing.
func (s *TagService) getOrCreate(ctx context.Context, name string) (*domain.Tag, error) {
	for attempt := 0; attempt < maxGetOrCreateTries; attempt++ {
		tag, err := s.tagRepo.FindByName(ctx, name)
		if err == nil {
			return tag, nil
		}
		if !errors.Is(err, repository.ErrTagNotFound) {
			return nil, err
		}

		fresh := &domain.Tag{Name: name}
		fresh.Normalize()
		err = s.tagRepo.Create(ctx, fresh)
		if err == nil {
			return fresh, nil
		}
		if !errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, err
		}
		// Lost the race; loop back to the lookup.
	}
	return nil, errors.New("tag get-or-create did not converge")
}

// TagPage is one page of the tag listing with counts and cloud font sizes.
type TagPage struct {
	Tags        []domain.TagCloudEntry
	Page        pagination.Page
	ElidedRange []string
}

// ListTags returns tags ordered by post count descending then name, with a
// font size bucket per tag.
func (s *TagService) ListTags(ctx context.Context, pageToken string) (*TagPage, error) {
	total, err := s.tagRepo.Count(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to count tags")
		return nil, ErrInternalServer
	}
	page := pagination.New(int(total), TagsPerPage).Page(pageToken)

	rows, err := s.tagRepo.ListWithPostCounts(ctx, page.Offset, page.Limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list tags")
		return nil, ErrInternalServer
	}

	minCount, maxCount := countBounds(rows)
	entries := make([]domain.TagCloudEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.TagCloudEntry{
			Name:      row.Name,
			Slug:      row.Slug,
			PostCount: row.PostCount,
			FontSize:  fontSizeFor(row.PostCount, minCount, maxCount),
		})
	}
	return &TagPage{Tags: entries, Page: page, ElidedRange: page.ElidedRange()}, nil
}

// TaggedPosts is one page of the posts carrying a tag.
type TaggedPosts struct {
	Tag         domain.Tag
	Posts       []domain.Post
	Page        pagination.Page
	ElidedRange []string
}

// PostsByTag returns the posts with the given tag, newest first, paginated.
func (s *TagService) PostsByTag(ctx context.Context, tagSlug, pageToken string) (*TaggedPosts, error) {
	tag, err := s.tagRepo.FindBySlug(ctx, tagSlug)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, ErrTagNotFound
		}
		logrus.WithError(err).WithField("slug", tagSlug).Error("Failed to find tag")
		return nil, ErrInternalServer
	}

	total, err := s.postRepo.CountByTag(ctx, tag.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to count posts by tag")
		return nil, ErrInternalServer
	}
	page := pagination.New(int(total), PostsByTagPerPage).Page(pageToken)

	posts, err := s.postRepo.ListByTag(ctx, tag.ID, page.Offset, page.Limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts by tag")
		return nil, ErrInternalServer
	}
	return &TaggedPosts{Tag: *tag, Posts: posts, Page: page, ElidedRange: page.ElidedRange()}, nil
}

// Suggestions returns up to MaxTagSuggestions names matching the query by
// prefix or substring, alphabetically. An empty query yields an empty list.
func (s *TagService) Suggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}, nil
	}
	names, err := s.tagRepo.Suggest(ctx, query, MaxTagSuggestions)
	if err != nil {
		logrus.WithError(err).WithField("query", query).Error("Failed to suggest tags")
		return nil, ErrInternalServer
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// TagCloud returns the cached cloud when available, recomputing on a miss.
func (s *TagService) TagCloud(ctx context.Context) ([]domain.TagCloudEntry, error) {
	if s.stateRepo != nil {
		cloud, err := s.stateRepo.GetTagCloud(ctx)
		if err == nil {
			return cloud, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).Warn("Tag cloud cache read failed, recomputing")
		}
	}
	return s.RefreshTagCloud(ctx)
}

// RefreshTagCloud recomputes the full cloud and stores it in the cache.
// The periodic worker calls this on a schedule.
func (s *TagService) RefreshTagCloud(ctx context.Context) ([]domain.TagCloudEntry, error) {
	rows, err := s.tagRepo.AllWithPostCounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to load tags for cloud")
		return nil, ErrInternalServer
	}

	minCount, maxCount := countBounds(rows)
	cloud := make([]domain.TagCloudEntry, 0, len(rows))
	for _, row := range rows {
		cloud = append(cloud, domain.TagCloudEntry{
			Name:      row.Name,
			Slug:      row.Slug,
			PostCount: row.PostCount,
			FontSize:  fontSizeFor(row.PostCount, minCount, maxCount),
		})
	}

	if s.stateRepo != nil {
		if err := s.stateRepo.SetTagCloud(ctx, cloud, tagCloudCacheTTL); err != nil {
			logrus.WithError(err).Warn("Failed to cache tag cloud")
		}
	}
	return cloud, nil
}

func countBounds(rows []repository.TagWithCount) (min, max int64) {
	for i, row := range rows {
		if i == 0 || row.PostCount < min {
			min = row.PostCount
		}
		if row.PostCount > max {
			max = row.PostCount
		}
	}
	return min, max
}

// fontSizeFor scales a post count linearly into the cloud's font buckets.
func fontSizeFor(count, min, max int64) int {
	if max <= min {
		return domain.TagCloudMinFontSize
	}
	span := int64(domain.TagCloudMaxFontSize - domain.TagCloudMinFontSize)
	size := domain.TagCloudMinFontSize + int((count-min)*span/(max-min))
	return size
}

