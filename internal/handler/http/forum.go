package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// ForumHandler serves the topic listings, topic detail and topic creation.
type ForumHandler struct {
	topicService *service.TopicService
}

func NewForumHandler(topicService *service.TopicService) *ForumHandler {
	return &ForumHandler{topicService: topicService}
}

// listingResponse renders a sticky-first topic listing.
func listingResponse(listing *service.TopicListing) gin.H {
	return gin.H{
		"sticky":     topicViews(listing.Sticky),
		"topics":     topicViews(listing.Regular),
		"pagination": pageView(listing.Page, listing.ElidedRange),
	}
}

// Index is the global forum front page: all sticky topics, then one page of
// regular topics. The page token comes from ?page= and is never an error.
func (h *ForumHandler) Index(c *gin.Context) {
	listing, err := h.topicService.ForumIndex(c.Request.Context(), c.Query("page"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, listingResponse(listing))
}

// TopicDetail returns one topic with its posts oldest-first.
func (h *ForumHandler) TopicDetail(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("topicID"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid topic id")
		return
	}

	detail, err := h.topicService.Detail(c.Request.Context(), uint(topicID))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"topic": topicView(detail.Topic),
		"posts": postViews(detail.Posts),
	})
}

type CreateTopicRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Message    string `json:"message" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Tags       string `json:"tags"`
}

// CreateTopic makes a topic and its first post; the tags string attaches to
// that first post.
func (h *ForumHandler) CreateTopic(c *gin.Context) {
	viewer := CurrentViewer(c)
	if !viewer.Authenticated {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	topic, err := h.topicService.Create(c.Request.Context(), viewer.UserID, req.Subject, req.Message, req.CategoryID, req.Tags)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, gin.H{
		"message":  "Topic created successfully",
		"topic_id": topic.ID,
	})
}
