package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSubscription is returned for a repos entry that is neither a room nor a list of rooms.
var ErrInvalidSubscription = errors.New("invalid subscription entry")

// normalizeRepos turns the raw github_commits.repos mapping, whose values may be a single
// room or a list of rooms, into one canonical list per repository.
func normalizeRepos(raw map[string]interface{}) (map[string][]string, error) {
	repos := make(map[string][]string, len(raw))
	for repo, val := range raw {
		key := strings.ToLower(strings.TrimSpace(repo))
		if key == "" {
			return nil, fmt.Errorf("%w: empty repository key", ErrInvalidSubscription)
		}

		var rooms []string
		switch typed := val.(type) {
		case nil:
		case []interface{}:
			for i, item := range typed {
				room, err := roomFromValue(item)
				if err != nil {
					return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidSubscription, repo, i, err)
				}
				rooms = append(rooms, room)
			}
		case []string:
			rooms = append(rooms, typed...)
		default:
			room, err := roomFromValue(typed)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSubscription, repo, err)
			}
			rooms = append(rooms, room)
		}

		if existing, ok := repos[key]; ok {
			rooms = append(existing, rooms...)
		}
		repos[key] = dedupeRooms(rooms)
	}
	return repos, nil
}

// roomFromValue accepts strings and integers; Telegram chat ids are often written bare in YAML.
func roomFromValue(v interface{}) (string, error) {
	switch typed := v.(type) {
	case string:
		room := strings.TrimSpace(typed)
		if room == "" {
			return "", errors.New("empty room")
		}
		return room, nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		if typed != float64(int64(typed)) {
			return "", fmt.Errorf("room id %v is not an integer", typed)
		}
		return strconv.FormatInt(int64(typed), 10), nil
	default:
		return "", fmt.Errorf("unsupported room type %T", v)
	}
}

func dedupeRooms(rooms []string) []string {
	seen := make(map[string]bool, len(rooms))
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
