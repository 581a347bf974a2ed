package notifier

import (
	"fmt"
	"strings"

	"github-commits-notifier/internal/model"
)

const messagePrefix = "[GitHub]"

// Format renders the notification for a push. The first matching case wins:
// new commits, branch created, branch deleted. Anything else returns ErrNoMessage.
// Missing fields needed by the matching case return an error wrapping ErrMalformedPayload.
func Format(p model.PushPayload) (string, error) {
	switch {
	case len(p.Commits) > 0:
		return formatCommits(p)
	case p.Created:
		if p.Pusher == nil {
			return "", malformed("pusher")
		}
		baseRef := ""
		if p.BaseRef != nil {
			baseRef = *p.BaseRef
		}
		return fmt.Sprintf("%s %s created: %s: %s", messagePrefix, p.Pusher.Name, p.Ref, baseRef), nil
	case p.Deleted:
		if p.Pusher == nil {
			return "", malformed("pusher")
		}
		return fmt.Sprintf("%s %s deleted: %s", messagePrefix, p.Pusher.Name, p.Ref), nil
	default:
		return "", ErrNoMessage
	}
}

func formatCommits(p model.PushPayload) (string, error) {
	repoID, err := p.RepositoryID()
	if err != nil {
		return "", malformed("repository")
	}
	if p.Ref == "" {
		return "", malformed("ref")
	}

	author, err := AuthorClause(p.Commits[0])
	if err != nil {
		return "", err
	}

	n := len(p.Commits)
	noun := "commits"
	if n == 1 {
		noun = "commit"
	}

	return fmt.Sprintf("%s Got %d new %s %s on %s on the %s branch",
		messagePrefix, n, noun, author, repoID, BranchFromRef(p.Ref)), nil
}

// BranchFromRef returns the last "/"-separated segment of ref; trailing slashes are ignored.
func BranchFromRef(ref string) string {
	ref = strings.TrimRight(ref, "/")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// AuthorClause describes who produced a commit: "from <author>" when author and committer
// share a username, "authored by <author> and committed by <committer>" otherwise.
func AuthorClause(c model.Commit) (string, error) {
	if c.Author == nil {
		return "", malformed("commits[0].author")
	}
	if c.Committer == nil {
		return "", malformed("commits[0].committer")
	}
	if c.Author.Username != c.Committer.Username {
		return fmt.Sprintf("authored by %s and committed by %s", c.Author.Name, c.Committer.Name), nil
	}
	return fmt.Sprintf("from %s", c.Author.Name), nil
}

func malformed(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedPayload, field)
}
