package webhook

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/go-github/v66/github"
	"github.com/google/uuid"

	"github-commits-notifier/internal/middleware"
	"github-commits-notifier/internal/model"
	"github-commits-notifier/internal/notifier"
	pkgLog "github-commits-notifier/pkg/log"
)

// HandleGitHubWebhook relays GitHub push events to subscribed rooms
// @Summary GitHub commits webhook
// @Description Receives GitHub webhooks. push is relayed to the rooms subscribed to the repository, ping answers "Working!", any other event is 404.
// @Tags Webhook
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param X-GitHub-Event header string true "GitHub event type"
// @Param X-GitHub-Delivery header string false "GitHub delivery id"
// @Success 200 {string} string "Working!"
// @Failure 404 "unsupported event type"
// @Router /github-commits [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	event := model.WebhookEvent{
		EventType:  model.ParseEventType(github.WebHookType(c.Request)),
		DeliveryID: github.DeliveryID(c.Request),
	}

	switch event.EventType {
	case model.EventTypePush:
		h.handlePush(c, event)
	case model.EventTypePing:
		c.String(http.StatusOK, pingResponse)
	default:
		middleware.SkipAccessLog(c)
		c.Status(http.StatusNotFound)
	}
}

// handlePush never writes an error status: every failure is logged and the
// delivery is acknowledged with the default 200.
func (h *Handler) handlePush(c *gin.Context, event model.WebhookEvent) {
	logID := event.DeliveryID
	if logID == "" {
		logID = uuid.NewString()
	}
	ctx := pkgLog.WithDeliveryID(c.Request.Context(), logID)

	if h.deliveries.Handled(event.DeliveryID) {
		h.l.Infof(ctx, "Ignoring redelivered GitHub webhook %s", event.DeliveryID)
		return
	}

	raw, err := h.extractPayload(c)
	if err != nil {
		h.l.Errorf(ctx, "Could not parse JSON payload from Github: %v", err)
		return
	}
	event.RawBody = raw

	payload, err := h.githubParser.ParsePushEvent(event.RawBody)
	switch {
	case errors.Is(err, ErrPayloadShape):
		h.l.Warnf(ctx, "Error formatting message for payload: %s: %v", event.RawBody, err)
		h.deliveries.Mark(event.DeliveryID)
		return
	case err != nil:
		h.l.Errorf(ctx, "Could not parse JSON payload from Github: %v", err)
		return
	}

	output, err := h.notifierUC.NotifyPush(ctx, notifier.NotifyPushInput{Payload: payload})
	if err != nil {
		h.l.Errorf(ctx, "GitHub push processing failed: %v", err)
		return
	}

	if settled(output) {
		h.deliveries.Mark(event.DeliveryID)
	}

	h.l.Debugf(ctx, "Push for %s handled: delivered=%d failed=%d skipped=%t reason=%s",
		output.RepositoryID, output.Delivered, output.Failed, output.Skipped, output.Reason)
}

// settled reports whether sending the same delivery again could not change the outcome.
// A push that reached no room is left unmarked so a redelivery is relayed.
func settled(out notifier.NotifyPushOutput) bool {
	if out.Delivered > 0 {
		return true
	}
	if !out.Skipped {
		return false
	}
	switch out.Reason {
	case notifier.SkipUnconfigured, notifier.SkipNoMessage, notifier.SkipMalformedPayload:
		return true
	default:
		return false
	}
}

// extractPayload returns the JSON text of the webhook, either the raw body or the
// "payload" field of a form-encoded body.
func (h *Handler) extractPayload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	if c.ContentType() == binding.MIMEPOSTForm {
		payload, ok := c.GetPostForm(payloadFormField)
		if !ok {
			return nil, fmt.Errorf("%w: form field %q is missing", ErrParsePayload, payloadFormField)
		}
		return []byte(payload), nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("failed to read webhook body: %w", err)
	}
	return body, nil
}
