package notifier

import (
	"context"

	pkgLog "github-commits-notifier/pkg/log"
)

type logMessenger struct {
	l pkgLog.Logger
}

// NewLogMessenger returns a Messenger that only logs what it would send.
// It stands in for a chat backend when none is configured.
func NewLogMessenger(l pkgLog.Logger) Messenger {
	return &logMessenger{l: l}
}

func (m *logMessenger) SendMessage(ctx context.Context, room string, text string) error {
	m.l.Infof(ctx, "dry-run message to %s: %s", room, text)
	return nil
}
