package model

import (
	"errors"
	"fmt"
)

// EventType is the GitHub event discriminator sent in X-GitHub-Event.
type EventType string

const (
	EventTypePush    EventType = "push"
	EventTypePing    EventType = "ping"
	EventTypeUnknown EventType = "unknown"
)

// ParseEventType classifies a raw header value. Anything but push and ping is unknown.
func ParseEventType(raw string) EventType {
	switch EventType(raw) {
	case EventTypePush:
		return EventTypePush
	case EventTypePing:
		return EventTypePing
	default:
		return EventTypeUnknown
	}
}

// WebhookEvent is a received webhook. It lives for a single request.
type WebhookEvent struct {
	EventType  EventType
	DeliveryID string
	RawBody    []byte
}

// Person is a GitHub identity as it appears in push payloads.
type Person struct {
	Name     string
	Username string
}

// Repository identifies the pushed repository.
type Repository struct {
	Name  string
	Owner *Person
}

// Commit is a single commit of a push. Nil identities mean the field was absent.
type Commit struct {
	ID        string
	Message   string
	Author    *Person
	Committer *Person
}

// PushPayload is the decoded body of a push event.
// Optional parts of the payload are pointers so that absence stays observable.
type PushPayload struct {
	Ref        string
	Created    bool
	Deleted    bool
	BaseRef    *string
	Pusher     *Person
	Repository *Repository
	Commits    []Commit
}

// ErrMissingRepository is returned when the payload lacks repository owner or name.
var ErrMissingRepository = errors.New("payload has no repository owner/name")

// RepositoryID returns the "owner/name" subscription key for the payload.
func (p PushPayload) RepositoryID() (string, error) {
	if p.Repository == nil || p.Repository.Owner == nil {
		return "", ErrMissingRepository
	}
	if p.Repository.Owner.Name == "" || p.Repository.Name == "" {
		return "", ErrMissingRepository
	}
	return fmt.Sprintf("%s/%s", p.Repository.Owner.Name, p.Repository.Name), nil
}
