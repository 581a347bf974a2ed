package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"

	"github-commits-notifier/pkg/log"
)

const skipAccessLogKey = "middleware.skip_access_log"

// SkipAccessLog drops the request line for c. Handlers use it for requests
// they deliberately ignore.
func SkipAccessLog(c *gin.Context) {
	c.Set(skipAccessLogKey, true)
}

// RequestLogger logs one line per request once the handler chain has finished.
func (mw Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.GetBool(skipAccessLogKey) {
			return
		}
		latency := time.Since(start)

		ctx := c.Request.Context()
		if id := github.DeliveryID(c.Request); id != "" {
			ctx = log.WithDeliveryID(ctx, id)
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			mw.l.Errorf(ctx, "http_request method=%s path=%s status=%d latency=%s ip=%s",
				c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		default:
			mw.l.Infof(ctx, "http_request method=%s path=%s status=%d latency=%s ip=%s",
				c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		}
	}
}
