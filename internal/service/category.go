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

// CategoriesPerPage is the category-listing page size.
const CategoriesPerPage = 10

// CategoryService owns the category listing and staff-only management.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	if categoryRepo == nil {
		panic("CategoryRepository cannot be nil for CategoryService")
	}
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryPage is one page of categories with their topic counts.
type CategoryPage struct {
	Categories  []repository.CategoryWithCount
	Page        pagination.Page
	ElidedRange []string
}

// List returns categories ordered by name descending, 10 per page, each
// annotated with its topic count.
func (s *CategoryService) List(ctx context.Context, pageToken string) (*CategoryPage, error) {
	total, err := s.categoryRepo.Count(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to count categories")
		return nil, ErrInternalServer
	}
	page := pagination.New(int(total), CategoriesPerPage).Page(pageToken)

	rows, err := s.categoryRepo.ListWithTopicCounts(ctx, page.Offset, page.Limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list categories")
		return nil, ErrInternalServer
	}
	return &CategoryPage{Categories: rows, Page: page, ElidedRange: page.ElidedRange()}, nil
}

// Create adds a category. Guarded: staff only.
func (s *CategoryService) Create(ctx context.Context, viewer Viewer, name, description, slugOverride string) (*domain.Category, error) {
	if !viewer.privileged() {
		return nil, ErrForbidden
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": viewer.UserID, "name": name})

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "category name is required")
	}

	category := &domain.Category{
		Name:        name,
		Slug:        strings.TrimSpace(slugOverride),
		Description: description,
	}
	category.EnsureSlug()

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, NewValidationError("name", "a category with this name already exists")
		}
		logCtx.WithError(err).Error("Failed to save new category")
		return nil, ErrInternalServer
	}

	logCtx.WithField("category_id", category.ID).Info("Category created successfully")
	return category, nil
}
