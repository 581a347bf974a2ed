package notifier

import "github-commits-notifier/internal/model"

// NotifyPushInput is the input for NotifyPush.
type NotifyPushInput struct {
	Payload model.PushPayload
}

// SkipReason explains why nothing was delivered.
type SkipReason string

const (
	SkipUnconfigured     SkipReason = "unconfigured_repository"
	SkipNoMessage        SkipReason = "no_message"
	SkipMalformedPayload SkipReason = "malformed_payload"
)

// NotifyPushOutput reports what NotifyPush did.
type NotifyPushOutput struct {
	RepositoryID string
	Rooms        []string
	Message      string
	Delivered    int
	Failed       int
	Skipped      bool
	Reason       SkipReason
}
