package notifier

import "context"

// UseCase relays decoded push events to the rooms subscribed to their repository.
type UseCase interface {
	// NotifyPush resolves rooms for the payload's repository, formats the summary and sends
	// it to every room. Skips (unconfigured repo, nothing to render, malformed payload) are
	// reported in the output, not as errors.
	NotifyPush(ctx context.Context, input NotifyPushInput) (NotifyPushOutput, error)
}

// Messenger delivers a text message to a chat room.
type Messenger interface {
	SendMessage(ctx context.Context, room string, text string) error
}

// Resolver maps a repository id to its subscribed rooms.
type Resolver interface {
	Resolve(repoID string) []string
}
