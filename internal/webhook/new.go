package webhook

import (
	"github-commits-notifier/internal/notifier"
	pkgLog "github-commits-notifier/pkg/log"
)

type Handler struct {
	notifierUC   notifier.UseCase
	githubParser *GitHubWebhookParser
	deliveries   *deliveryCache
	maxBodyBytes int64
	l            pkgLog.Logger
}

func NewHandler(
	notifierUC notifier.UseCase,
	cfg Config,
	l pkgLog.Logger,
) *Handler {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Handler{
		notifierUC:   notifierUC,
		githubParser: NewGitHubParser(),
		deliveries:   newDeliveryCache(cfg.DedupeSize, cfg.DedupeTTL),
		maxBodyBytes: maxBody,
		l:            l,
	}
}
