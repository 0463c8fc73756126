package http

import (
	"github.com/gin-gonic/gin"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// ViewerContextKey is where the viewer middleware stores the resolved
// service.Viewer for the request.
const ViewerContextKey = "viewer"

// CurrentViewer returns the viewer set by the middleware chain, or the
// anonymous viewer when the request carried no (valid) token.
func CurrentViewer(c *gin.Context) service.Viewer {
	if v, ok := c.Get(ViewerContextKey); ok {
		if viewer, ok := v.(service.Viewer); ok {
			return viewer
		}
	}
	return service.Anonymous
}
