package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// PostHandler serves replies and owner-only post mutation.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

type PostRequest struct {
	Message string `json:"message" binding:"required"`
	Tags    string `json:"tags"`
}

// Reply appends a post to a topic.
func (h *PostHandler) Reply(c *gin.Context) {
	viewer := CurrentViewer(c)
	if !viewer.Authenticated {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	topicID, ok := parseIDParam(c, "topicID")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	post, err := h.postService.Reply(c.Request.Context(), viewer.UserID, topicID, req.Message, req.Tags)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Reply created successfully",
		"post_id": post.ID,
	})
}

// Edit updates a post's message and replaces its tags. Owner only.
func (h *PostHandler) Edit(c *gin.Context) {
	viewer := CurrentViewer(c)
	postID, ok := parseIDParam(c, "postID")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	post, err := h.postService.Edit(c.Request.Context(), viewer, postID, req.Message, req.Tags)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    postView(*post),
	})
}

// Delete removes a post. Owner only.
func (h *PostHandler) Delete(c *gin.Context) {
	viewer := CurrentViewer(c)
	postID, ok := parseIDParam(c, "postID")
	if !ok {
		return
	}

	topicID, err := h.postService.Delete(c.Request.Context(), viewer, postID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message":  "Post deleted successfully",
		"topic_id": topicID,
	})
}
