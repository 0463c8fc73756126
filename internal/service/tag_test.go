package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository/mocks"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed case and spacing", "Python, FastAPI, testing", []string{"python", "fastapi", "testing"}},
		{"duplicates collapse", "go, Go, GO", []string{"go"}},
		{"empty tokens dropped", ",,a,, ,b,", []string{"a", "b"}},
		{"empty input", "", nil},
		{"whitespace only", "   ,  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.NormalizeTagNames(tt.raw))
		})
	}
}

func TestNormalizeTagNames_Idempotent(t *testing.T) {
	once := service.NormalizeTagNames("Python, FastAPI, testing")
	var joined string
	for i, name := range once {
		if i > 0 {
			joined += ","
		}
		joined += name
	}
	assert.Equal(t, once, service.NormalizeTagNames(joined))
}

func TestTagService_ResolveTags_CreatesMissing(t *testing.T) {
	// Arrange
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)
	ctx := context.Background()

	existing := &domain.Tag{ID: 1, Name: "python", Slug: "python"}
	mockTagRepo.On("FindByName", ctx, "python").Return(existing, nil).Once()
	mockTagRepo.On("FindByName", ctx, "fastapi").Return(nil, repository.ErrTagNotFound).Once()
	mockTagRepo.On("Create", ctx, mock.MatchedBy(func(tag *domain.Tag) bool {
		return tag.Name == "fastapi" && tag.Slug == "fastapi"
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Tag).ID = 2 }).
		Return(nil).Once()

	// Act
	tags, err := tagService.ResolveTags(ctx, "Python, FastAPI")

	// Assert
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, uint(1), tags[0].ID)
	assert.Equal(t, uint(2), tags[1].ID)
	mockTagRepo.AssertExpectations(t)
}

func TestTagService_ResolveTags_GetOrCreateRace(t *testing.T) {
	// Another request inserts the tag between our lookup and insert; the
	// retry must pick up the winner's row instead of failing.
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)
	ctx := context.Background()

	winner := &domain.Tag{ID: 9, Name: "go", Slug: "go"}
	mockTagRepo.On("FindByName", ctx, "go").Return(nil, repository.ErrTagNotFound).Once()
	mockTagRepo.On("Create", ctx, mock.AnythingOfType("*domain.Tag")).
		Return(repository.ErrDuplicateEntry).Once()
	mockTagRepo.On("FindByName", ctx, "go").Return(winner, nil).Once()

	tags, err := tagService.ResolveTags(ctx, "go")

	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, uint(9), tags[0].ID)
	mockTagRepo.AssertExpectations(t)
}

func TestTagService_ResolveTags_NameTooLong(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)

	long := make([]byte, domain.TagNameMaxLength+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := tagService.ResolveTags(context.Background(), string(long))

	require.Error(t, err)
	var vErr *service.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "tags")
	mockTagRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTagService_Suggestions(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)
	ctx := context.Background()

	mockTagRepo.On("Suggest", ctx, "py", service.MaxTagSuggestions).
		Return([]string{"numpy", "pytest", "python"}, nil).Once()

	names, err := tagService.Suggestions(ctx, "  Py ")

	require.NoError(t, err)
	assert.Equal(t, []string{"numpy", "pytest", "python"}, names)
	mockTagRepo.AssertExpectations(t)
}

func TestTagService_Suggestions_EmptyQuery(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)

	names, err := tagService.Suggestions(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, names)
	mockTagRepo.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything, mock.Anything)
}

func TestTagService_RefreshTagCloud_FontSizes(t *testing.T) {
	// Counts 1..10 must map linearly onto font sizes 1..5, and the result
	// must land in the cache with the configured TTL.
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	mockStateRepo := new(mocks.StateRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, mockStateRepo)
	ctx := context.Background()

	rows := []repository.TagWithCount{
		{Tag: domain.Tag{Name: "rare", Slug: "rare"}, PostCount: 1},
		{Tag: domain.Tag{Name: "mid", Slug: "mid"}, PostCount: 5},
		{Tag: domain.Tag{Name: "hot", Slug: "hot"}, PostCount: 10},
	}
	mockTagRepo.On("AllWithPostCounts", ctx).Return(rows, nil).Once()
	mockStateRepo.On("SetTagCloud", ctx, mock.AnythingOfType("[]domain.TagCloudEntry"), mock.AnythingOfType("time.Duration")).
		Return(nil).Once()

	cloud, err := tagService.RefreshTagCloud(ctx)

	require.NoError(t, err)
	require.Len(t, cloud, 3)
	assert.Equal(t, domain.TagCloudMinFontSize, cloud[0].FontSize)
	assert.Equal(t, 2, cloud[1].FontSize)
	assert.Equal(t, domain.TagCloudMaxFontSize, cloud[2].FontSize)
	mockStateRepo.AssertExpectations(t)
}

func TestTagService_RefreshTagCloud_UniformCounts(t *testing.T) {
	// When every tag has the same count there is no spread to scale over.
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)
	ctx := context.Background()

	rows := []repository.TagWithCount{
		{Tag: domain.Tag{Name: "a", Slug: "a"}, PostCount: 3},
		{Tag: domain.Tag{Name: "b", Slug: "b"}, PostCount: 3},
	}
	mockTagRepo.On("AllWithPostCounts", ctx).Return(rows, nil).Once()

	cloud, err := tagService.RefreshTagCloud(ctx)

	require.NoError(t, err)
	for _, entry := range cloud {
		assert.Equal(t, domain.TagCloudMinFontSize, entry.FontSize)
	}
}

func TestTagService_TagCloud_CacheHit(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	mockStateRepo := new(mocks.StateRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, mockStateRepo)
	ctx := context.Background()

	cached := []domain.TagCloudEntry{{Name: "go", Slug: "go", PostCount: 4, FontSize: 3}}
	mockStateRepo.On("GetTagCloud", ctx).Return(cached, nil).Once()

	cloud, err := tagService.TagCloud(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, cloud)
	mockTagRepo.AssertNotCalled(t, "AllWithPostCounts", mock.Anything)
}

func TestTagService_PostsByTag_NotFound(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)
	ctx := context.Background()

	mockTagRepo.On("FindBySlug", ctx, "ghost").Return(nil, repository.ErrTagNotFound).Once()

	_, err := tagService.PostsByTag(ctx, "ghost", "1")

	assert.True(t, errors.Is(err, service.ErrTagNotFound))
}
