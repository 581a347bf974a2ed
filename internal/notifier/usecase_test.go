package notifier_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github-commits-notifier/internal/model"
	"github-commits-notifier/internal/notifier"
	"github-commits-notifier/internal/subscription"
	pkgLog "github-commits-notifier/pkg/log"
)

type sentMessage struct {
	room string
	text string
}

type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
	panicOn string
}

func (m *fakeMessenger) SendMessage(ctx context.Context, room string, text string) error {
	if room == m.panicOn {
		panic("boom")
	}
	if err := m.failFor[room]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{room: room, text: text})
	return nil
}

func (m *fakeMessenger) rooms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.room)
	}
	sort.Strings(out)
	return out
}

func newUseCase(table subscription.Table, m notifier.Messenger) (notifier.UseCase, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := pkgLog.New(zap.New(core))
	return notifier.New(subscription.NewResolver(table), m, l), logs
}

func pushWithCommit() model.PushPayload {
	return model.PushPayload{
		Ref:        "refs/heads/main",
		Repository: acmeWidgets(),
		Commits:    []model.Commit{{Author: jane, Committer: jane}},
	}
}

func TestNotifyPush(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivers to every room", func(t *testing.T) {
		m := &fakeMessenger{}
		uc, logs := newUseCase(subscription.Table{"acme/widgets": {"room-a", "room-b"}}, m)

		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: pushWithCommit()})
		require.NoError(t, err)

		assert.False(t, out.Skipped)
		assert.Equal(t, "acme/widgets", out.RepositoryID)
		assert.Equal(t, 2, out.Delivered)
		assert.Equal(t, 0, out.Failed)
		assert.Equal(t, []string{"room-a", "room-b"}, m.rooms())
		for _, s := range m.sent {
			assert.Equal(t, "[GitHub] Got 1 new commit from Jane Doe on acme/widgets on the main branch", s.text)
		}
		assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("Unconfigured repository", func(t *testing.T) {
		m := &fakeMessenger{}
		uc, logs := newUseCase(subscription.Table{"acme/other": {"room-a"}}, m)

		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: pushWithCommit()})
		require.NoError(t, err)

		assert.True(t, out.Skipped)
		assert.Equal(t, notifier.SkipUnconfigured, out.Reason)
		assert.Empty(t, m.rooms())

		warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
		require.Len(t, warns, 1)
		assert.Contains(t, warns[0].Message, "unconfigured project: acme/widgets")
	})

	t.Run("Nothing to render", func(t *testing.T) {
		m := &fakeMessenger{}
		uc, logs := newUseCase(subscription.Table{"acme/widgets": {"room-a"}}, m)

		p := pushWithCommit()
		p.Commits = nil
		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: p})
		require.NoError(t, err)

		assert.True(t, out.Skipped)
		assert.Equal(t, notifier.SkipNoMessage, out.Reason)
		assert.Empty(t, m.rooms())
		assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("Malformed commit", func(t *testing.T) {
		m := &fakeMessenger{}
		uc, logs := newUseCase(subscription.Table{"acme/widgets": {"room-a"}}, m)

		p := pushWithCommit()
		p.Commits = []model.Commit{{Author: jane}}
		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: p})
		require.NoError(t, err)

		assert.Equal(t, notifier.SkipMalformedPayload, out.Reason)
		assert.Empty(t, m.rooms())

		warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
		require.Len(t, warns, 1)
		assert.Contains(t, warns[0].Message, "Error formatting message for payload")
		assert.Contains(t, warns[0].Message, "refs/heads/main")
	})

	t.Run("Missing repository", func(t *testing.T) {
		m := &fakeMessenger{}
		uc, logs := newUseCase(subscription.Table{"acme/widgets": {"room-a"}}, m)

		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: model.PushPayload{Ref: "refs/heads/main"}})
		require.NoError(t, err)

		assert.Equal(t, notifier.SkipMalformedPayload, out.Reason)
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("One failing room does not block others", func(t *testing.T) {
		m := &fakeMessenger{failFor: map[string]error{"room-b": errors.New("chat not found")}}
		uc, logs := newUseCase(subscription.Table{"acme/widgets": {"room-a", "room-b", "room-c"}}, m)

		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: pushWithCommit()})
		require.NoError(t, err)

		assert.Equal(t, 2, out.Delivered)
		assert.Equal(t, 1, out.Failed)
		assert.Equal(t, []string{"room-a", "room-c"}, m.rooms())
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	})

	t.Run("Panicking room is isolated", func(t *testing.T) {
		m := &fakeMessenger{panicOn: "room-a"}
		uc, _ := newUseCase(subscription.Table{"acme/widgets": {"room-a", "room-b"}}, m)

		out, err := uc.NotifyPush(ctx, notifier.NotifyPushInput{Payload: pushWithCommit()})
		require.NoError(t, err)

		assert.Equal(t, 1, out.Delivered)
		assert.Equal(t, 1, out.Failed)
		assert.Equal(t, []string{"room-b"}, m.rooms())
	})
}

func TestLogMessenger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := notifier.NewLogMessenger(pkgLog.New(zap.New(core)))

	require.NoError(t, m.SendMessage(context.Background(), "room-a", "hello"))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "room-a")
}
