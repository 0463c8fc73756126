package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/avatar"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// ProfileHandler serves the public profile page, the owner's profile form
// and profile updates with avatar upload.
type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Show renders a user's profile through the visibility gate, along with
// their topics and posts.
func (h *ProfileHandler) Show(c *gin.Context) {
	view, err := h.profileService.View(c.Request.Context(), CurrentViewer(c), c.Param("username"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"profile": profileView(view.User, view.Profile, view.Level),
		"topics":  topicViews(view.Topics),
		"posts":   postViews(view.Posts),
	})
}

// Own returns the viewer's own profile for the edit form, always at full
// disclosure.
func (h *ProfileHandler) Own(c *gin.Context) {
	viewer := CurrentViewer(c)
	if !viewer.Authenticated {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, profile, err := h.profileService.Own(c.Request.Context(), viewer.UserID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"profile": profileView(*user, *profile, service.InfoLevelFull),
	})
}

// Update handles the multipart profile form, including the optional avatar
// file. Either everything is saved with the processed avatar, or nothing.
func (h *ProfileHandler) Update(c *gin.Context) {
	viewer := CurrentViewer(c)
	if !viewer.Authenticated {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	input := service.ProfileUpdate{
		Bio:               c.PostForm("bio"),
		Location:          c.PostForm("location"),
		Website:           c.PostForm("website"),
		Signature:         c.PostForm("signature"),
		UserTitle:         c.PostForm("user_title"),
		Twitter:           c.PostForm("twitter"),
		GitHub:            c.PostForm("github"),
		LinkedIn:          c.PostForm("linkedin"),
		Timezone:          c.DefaultPostForm("timezone", "UTC"),
		ProfileVisibility: c.DefaultPostForm("profile_visibility", "public"),
	}
	input.NotifyOnReply = parseCheckbox(c.PostForm("notify_on_reply"))
	input.ReceiveNewsletter = parseCheckbox(c.PostForm("receive_newsletter"))

	if raw := c.PostForm("birth_date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "invalid input",
				"fields": service.FieldErrors{"birth_date": {"birth date must be YYYY-MM-DD"}},
			})
			return
		}
		input.BirthDate = &date
	}

	if file, err := c.FormFile("avatar"); err == nil {
		// Reject on the declared part size before buffering the payload.
		if file.Size > avatar.MaxFileSizeBytes {
			HandleServiceError(c, service.NewValidationError("avatar", "file too large (maximum 2 MiB)"))
			return
		}
		src, err := file.Open()
		if err != nil {
			logrus.WithError(err).Warn("Handler.UpdateProfile: Failed to open uploaded avatar")
			ErrorResponse(c, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			logrus.WithError(err).Warn("Handler.UpdateProfile: Failed to read uploaded avatar")
			ErrorResponse(c, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		input.AvatarFileName = file.Filename
		input.AvatarData = data
	}

	profile, err := h.profileService.Update(c.Request.Context(), viewer.UserID, input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message":    "Profile updated successfully",
		"avatar_url": profile.AvatarURL(),
	})
}

// parseCheckbox reads an HTML-form boolean: absent or falsy means false.
func parseCheckbox(raw string) bool {
	if raw == "" {
		return false
	}
	if value, err := strconv.ParseBool(raw); err == nil {
		return value
	}
	return raw == "on"
}
