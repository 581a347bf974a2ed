package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github-commits-notifier/internal/middleware"
	"github-commits-notifier/pkg/log"
)

func newEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	mw := middleware.New(log.New(zap.New(core)))

	r := gin.New()
	r.Use(mw.RequestLogger(), mw.Recovery())
	return r, logs
}

func TestRequestLogger(t *testing.T) {
	r, logs := newEngine(t)
	r.POST("/github-commits", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodPost, "/github-commits", nil)
	req.Header.Set("X-GitHub-Delivery", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "method=POST")
	assert.Contains(t, entries[0].Message, "path=/github-commits")
	assert.Contains(t, entries[0].Message, "status=404")
	assert.Equal(t, "abc-123", entries[0].ContextMap()["delivery_id"])
}

func TestRequestLogger_Skipped(t *testing.T) {
	r, logs := newEngine(t)
	r.POST("/github-commits", func(c *gin.Context) {
		middleware.SkipAccessLog(c)
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/github-commits", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, logs.Len())
}

func TestRecovery(t *testing.T) {
	r, logs := newEngine(t)
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error_code":500,"message":"Something went wrong"}`, w.Body.String())

	var recovered, logged bool
	for _, e := range logs.FilterLevelExact(zapcore.ErrorLevel).All() {
		if strings.HasPrefix(e.Message, "Recovered from panic on GET /boom") {
			recovered = true
		}
		if strings.HasPrefix(e.Message, "http_request method=GET path=/boom status=500") {
			logged = true
		}
	}
	assert.True(t, recovered)
	assert.True(t, logged)
}
