package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httphandler "github.com/MickTheLinuxGeek/ByteBoard/internal/handler/http"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// Viewer resolves the user ID set by Auth or OptionalAuth into a full
// service.Viewer with role flags. Requests without a user ID pass through
// as anonymous. A token whose user no longer exists is rejected.
func Viewer(authService *service.AuthService) gin.HandlerFunc {
	if authService == nil {
		panic("AuthService cannot be nil for Viewer middleware")
	}

	return func(c *gin.Context) {
		raw, exists := c.Get(UserIDContextKey)
		if !exists {
			c.Next()
			return
		}
		userID, ok := raw.(uint)
		if !ok {
			c.Next()
			return
		}

		viewer, err := authService.ViewerFor(c.Request.Context(), userID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("Viewer middleware: Failed to resolve viewer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(httphandler.ViewerContextKey, viewer)
		c.Next()
	}
}
