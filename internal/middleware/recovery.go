package middleware

import (
	"github.com/gin-gonic/gin"

	"github-commits-notifier/pkg/response"
)

// Recovery turns a handler panic into a logged 500 with the standard error body.
func (mw Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		mw.l.Errorf(c.Request.Context(), "Recovered from panic on %s %s: %v",
			c.Request.Method, c.Request.URL.Path, recovered)
		response.InternalError(c)
		c.Abort()
	})
}
