package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// CategoryHandler serves the category listing, per-category topics and
// staff-only category creation.
type CategoryHandler struct {
	categoryService *service.CategoryService
	topicService    *service.TopicService
}

func NewCategoryHandler(categoryService *service.CategoryService, topicService *service.TopicService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, topicService: topicService}
}

type categoryListItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	TopicCount  int64  `json:"topic_count"`
}

// List returns categories name-descending with their topic counts.
func (h *CategoryHandler) List(c *gin.Context) {
	page, err := h.categoryService.List(c.Request.Context(), c.Query("page"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	items := make([]categoryListItem, 0, len(page.Categories))
	for _, row := range page.Categories {
		items = append(items, categoryListItem{
			ID:          row.ID,
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			TopicCount:  row.TopicCount,
		})
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"categories": items,
		"pagination": pageView(page.Page, page.ElidedRange),
	})
}

// Topics returns the sticky-first topic listing of one category.
func (h *CategoryHandler) Topics(c *gin.Context) {
	category, listing, err := h.topicService.TopicsByCategory(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	response := listingResponse(listing)
	response["category"] = CategoryRef{ID: category.ID, Name: category.Name, Slug: category.Slug}
	SuccessResponse(c, http.StatusOK, response)
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// Create adds a category. Staff only; everyone else gets the standard 403.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), CurrentViewer(c), req.Name, req.Description, req.Slug)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": CategoryRef{ID: category.ID, Name: category.Name, Slug: category.Slug},
	})
}
