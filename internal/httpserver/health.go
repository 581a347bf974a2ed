package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"github-commits-notifier/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "github-commits-notifier"
)

// healthCheck reports service identity and uptime.
// @Summary Health Check
// @Description Service identity, version and uptime
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":      "healthy",
		"service":     ServiceName,
		"version":     HealthVersion,
		"environment": srv.environment,
		"uptime":      time.Since(srv.startedAt).Round(time.Second).String(),
	})
}

// readyCheck is ready only when the GitHub webhook route is mounted.
// @Summary Readiness Check
// @Description Ready when the GitHub webhook route is registered
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "webhook route not registered"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.gitWebhookHandler == nil {
		response.Unavailable(c, "webhook route not registered")
		return
	}
	response.OK(c, gin.H{
		"status":       "ready",
		"webhook_path": srv.webhookPath,
	})
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "alive"})
}
