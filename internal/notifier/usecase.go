package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sourcegraph/conc"
)

// NotifyPush relays one push event. Each room is attempted once and independently;
// a failing or panicking room does not stop the others.
func (uc *usecase) NotifyPush(ctx context.Context, input NotifyPushInput) (NotifyPushOutput, error) {
	payload := input.Payload

	repoID, err := payload.RepositoryID()
	if err != nil {
		uc.l.Warnf(ctx, "Error formatting message for payload: %s", payloadForLog(input))
		return NotifyPushOutput{Skipped: true, Reason: SkipMalformedPayload}, nil
	}

	out := NotifyPushOutput{RepositoryID: repoID}

	rooms := uc.resolver.Resolve(repoID)
	if len(rooms) == 0 {
		uc.l.Warnf(ctx, "Notification from GitHub Commits for unconfigured project: %s", repoID)
		out.Skipped = true
		out.Reason = SkipUnconfigured
		return out, nil
	}
	out.Rooms = rooms

	msg, err := Format(payload)
	switch {
	case errors.Is(err, ErrNoMessage):
		uc.l.Debugf(ctx, "No notification for push to %s on %s", repoID, payload.Ref)
		out.Skipped = true
		out.Reason = SkipNoMessage
		return out, nil
	case err != nil:
		uc.l.Warnf(ctx, "Error formatting message for payload: %s: %v", payloadForLog(input), err)
		out.Skipped = true
		out.Reason = SkipMalformedPayload
		return out, nil
	}
	out.Message = msg

	out.Delivered = uc.deliver(ctx, rooms, msg)
	out.Failed = len(rooms) - out.Delivered

	uc.l.Infof(ctx, "Relayed push for %s to %d/%d room(s)", repoID, out.Delivered, len(rooms))
	return out, nil
}

// deliver fans msg out to rooms and returns how many sends succeeded.
func (uc *usecase) deliver(ctx context.Context, rooms []string, msg string) int {
	var (
		mu        sync.Mutex
		delivered int
		wg        conc.WaitGroup
	)

	for _, room := range rooms {
		wg.Go(func() {
			if err := uc.messenger.SendMessage(ctx, room, msg); err != nil {
				uc.l.Errorf(ctx, "Failed to deliver GitHub notification to room %s: %v", room, err)
				return
			}
			mu.Lock()
			delivered++
			mu.Unlock()
		})
	}

	if r := wg.WaitAndRecover(); r != nil {
		uc.l.Errorf(ctx, "Delivery panicked: %v", r.Value)
	}

	return delivered
}

func payloadForLog(input NotifyPushInput) string {
	raw, err := json.Marshal(input.Payload)
	if err != nil {
		return err.Error()
	}
	return string(raw)
}
