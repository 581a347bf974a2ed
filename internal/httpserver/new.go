package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github-commits-notifier/internal/middleware"
	"github-commits-notifier/pkg/log"
)

// GitWebhookHandler receives GitHub webhook deliveries.
type GitWebhookHandler interface {
	HandleGitHubWebhook(c *gin.Context)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	mw          middleware.Middleware
	port        int
	mode        string
	environment string
	startedAt   time.Time

	// GitHub commits relay
	webhookPath       string
	gitWebhookHandler GitWebhookHandler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// GitHub commits relay
	WebhookPath       string
	GitWebhookHandler GitWebhookHandler
}

// New creates a new HTTPServer instance with all routes mapped.
func New(cfg Config) (*HTTPServer, error) {
	srv := &HTTPServer{
		l:                 cfg.Logger,
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		startedAt:         time.Now(),
		webhookPath:       cfg.WebhookPath,
		gitWebhookHandler: cfg.GitWebhookHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(srv.mode)
	srv.gin = gin.New()
	srv.mw = middleware.New(srv.l)

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.gitWebhookHandler != nil && srv.webhookPath == "" {
		return errors.New("webhook path is required")
	}
	return nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
