package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// TagHandler serves the tag listing, per-tag posts, autocomplete
// suggestions and the tag cloud.
type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List returns tags ordered by post count with cloud font sizes, 20/page.
func (h *TagHandler) List(c *gin.Context) {
	page, err := h.tagService.ListTags(c.Request.Context(), c.Query("page"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"tags":       page.Tags,
		"pagination": pageView(page.Page, page.ElidedRange),
	})
}

// Posts returns the posts carrying one tag, newest first.
func (h *TagHandler) Posts(c *gin.Context) {
	tagged, err := h.tagService.PostsByTag(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"tag":        gin.H{"name": tagged.Tag.Name, "slug": tagged.Tag.Slug},
		"posts":      postViews(tagged.Posts),
		"pagination": pageView(tagged.Page, tagged.ElidedRange),
	})
}

// Suggestions is the autocomplete endpoint: at most 10 matching names,
// alphabetical. An empty query yields an empty list, not an error.
func (h *TagHandler) Suggestions(c *gin.Context) {
	names, err := h.tagService.Suggestions(c.Request.Context(), c.Query("query"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"tags": names})
}

// Cloud returns the full tag cloud, cached in Redis between refreshes.
func (h *TagHandler) Cloud(c *gin.Context) {
	cloud, err := h.tagService.TagCloud(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"tags": cloud})
}
