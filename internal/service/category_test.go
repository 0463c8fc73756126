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

func TestCategoryService_List(t *testing.T) {
	// Arrange: 23 categories at 10 per page; page 3 is the 3-row remainder.
	mockCategoryRepo := new(mocks.CategoryRepository)
	categoryService := service.NewCategoryService(mockCategoryRepo)
	ctx := context.Background()

	rows := []repository.CategoryWithCount{
		{Category: domain.Category{ID: 1, Name: "Careers", Slug: "careers"}, TopicCount: 4},
		{Category: domain.Category{ID: 2, Name: "Backend", Slug: "backend"}, TopicCount: 9},
		{Category: domain.Category{ID: 3, Name: "Announcements", Slug: "announcements"}, TopicCount: 1},
	}
	mockCategoryRepo.On("Count", ctx).Return(int64(23), nil).Once()
	mockCategoryRepo.On("ListWithTopicCounts", ctx, 20, 10).Return(rows, nil).Once()

	// Act
	page, err := categoryService.List(ctx, "3")

	// Assert
	require.NoError(t, err)
	assert.Len(t, page.Categories, 3)
	assert.Equal(t, 3, page.Page.Number)
	assert.Equal(t, 3, page.Page.TotalPages)
	assert.False(t, page.Page.HasNext)
	assert.Equal(t, int64(9), page.Categories[1].TopicCount)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCategoryService_Create_StaffOnly(t *testing.T) {
	mockCategoryRepo := new(mocks.CategoryRepository)
	categoryService := service.NewCategoryService(mockCategoryRepo)
	ctx := context.Background()

	member := service.Viewer{UserID: 2, Authenticated: true}

	_, err := categoryService.Create(ctx, member, "General", "", "")

	assert.True(t, errors.Is(err, service.ErrForbidden))
	mockCategoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_Success(t *testing.T) {
	mockCategoryRepo := new(mocks.CategoryRepository)
	categoryService := service.NewCategoryService(mockCategoryRepo)
	ctx := context.Background()
	staff := service.Viewer{UserID: 1, Authenticated: true, IsStaff: true}

	mockCategoryRepo.On("Save", ctx, mock.MatchedBy(func(category *domain.Category) bool {
		return category.Name == "Job Board" && category.Slug == "job-board"
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Category).ID = 11 }).
		Return(nil).Once()

	category, err := categoryService.Create(ctx, staff, "Job Board", "Hiring and gigs", "")

	require.NoError(t, err)
	assert.Equal(t, uint(11), category.ID)
	assert.Equal(t, "job-board", category.Slug, "slug derives from the name when not overridden")
	mockCategoryRepo.AssertExpectations(t)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	mockCategoryRepo := new(mocks.CategoryRepository)
	categoryService := service.NewCategoryService(mockCategoryRepo)
	ctx := context.Background()
	staff := service.Viewer{UserID: 1, Authenticated: true, IsStaff: true}

	mockCategoryRepo.On("Save", ctx, mock.AnythingOfType("*domain.Category")).
		Return(repository.ErrDuplicateEntry).Once()

	_, err := categoryService.Create(ctx, staff, "General", "", "")

	require.Error(t, err)
	var vErr *service.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "name")
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	mockCategoryRepo := new(mocks.CategoryRepository)
	categoryService := service.NewCategoryService(mockCategoryRepo)
	superuser := service.Viewer{UserID: 1, Authenticated: true, IsSuperuser: true}

	_, err := categoryService.Create(context.Background(), superuser, "  ", "", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidInput))
	mockCategoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
