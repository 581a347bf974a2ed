package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v66/github"

	"github-commits-notifier/internal/model"
)

// GitHubWebhookParser parses GitHub webhook payloads
type GitHubWebhookParser struct{}

func NewGitHubParser() *GitHubWebhookParser {
	return &GitHubWebhookParser{}
}

// ParsePushEvent decodes a push payload. Bodies that are not JSON fail with ErrParsePayload.
// JSON whose values have the wrong types fails with ErrPayloadShape; missing fields are
// not an error here and surface later when the message is formatted.
func (p *GitHubWebhookParser) ParsePushEvent(payload []byte) (model.PushPayload, error) {
	if !json.Valid(payload) {
		return model.PushPayload{}, fmt.Errorf("%w: body is not valid JSON", ErrParsePayload)
	}

	raw, err := github.ParseWebHook(string(model.EventTypePush), payload)
	if err != nil {
		return model.PushPayload{}, fmt.Errorf("%w: %v", ErrPayloadShape, err)
	}

	event, ok := raw.(*github.PushEvent)
	if !ok {
		return model.PushPayload{}, fmt.Errorf("%w: unexpected event %T", ErrParsePayload, raw)
	}

	return toPushPayload(event), nil
}

func toPushPayload(e *github.PushEvent) model.PushPayload {
	p := model.PushPayload{
		Ref:     e.GetRef(),
		Created: e.GetCreated(),
		Deleted: e.GetDeleted(),
		BaseRef: e.BaseRef,
	}

	if e.Pusher != nil {
		p.Pusher = &model.Person{Name: e.Pusher.GetName(), Username: e.Pusher.GetLogin()}
	}

	if repo := e.GetRepo(); repo != nil {
		p.Repository = &model.Repository{Name: repo.GetName()}
		if owner := repo.GetOwner(); owner != nil {
			p.Repository.Owner = &model.Person{Name: owner.GetName(), Username: owner.GetLogin()}
		}
	}

	// Order is preserved; a null entry keeps its slot with no identities.
	p.Commits = make([]model.Commit, 0, len(e.Commits))
	for _, c := range e.Commits {
		if c == nil {
			p.Commits = append(p.Commits, model.Commit{})
			continue
		}
		commit := model.Commit{ID: c.GetID(), Message: c.GetMessage()}
		if a := c.GetAuthor(); a != nil {
			commit.Author = &model.Person{Name: a.GetName(), Username: a.GetLogin()}
		}
		if cm := c.GetCommitter(); cm != nil {
			commit.Committer = &model.Person{Name: cm.GetName(), Username: cm.GetLogin()}
		}
		p.Commits = append(p.Commits, commit)
	}

	return p
}
