package middleware

import (
	"github.com/gin-gonic/gin"

	httphandler "github.com/MickTheLinuxGeek/ByteBoard/internal/handler/http"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// LastSeen records activity for authenticated viewers. The service throttles
// the underlying row update through Redis, so running this on every request
// is cheap.
func LastSeen(profileService *service.ProfileService) gin.HandlerFunc {
	if profileService == nil {
		panic("ProfileService cannot be nil for LastSeen middleware")
	}

	return func(c *gin.Context) {
		if viewer := httphandler.CurrentViewer(c); viewer.Authenticated {
			profileService.TouchLastSeen(c.Request.Context(), viewer.UserID)
		}
		c.Next()
	}
}
