package subscription

import "strings"

// Table maps a lowercased "owner/name" repository id to the rooms subscribed to it.
// It is built once from configuration and never mutated afterwards.
type Table map[string][]string

// Resolver looks up subscribed rooms for a repository.
// It holds a private copy of the table so it is safe for concurrent use.
type Resolver struct {
	table Table
}

// NewResolver copies t into a read-only resolver. Keys are matched case-insensitively.
func NewResolver(t Table) *Resolver {
	table := make(Table, len(t))
	for repo, rooms := range t {
		if len(rooms) == 0 {
			continue
		}
		key := strings.ToLower(repo)
		table[key] = append(table[key], rooms...)
	}
	return &Resolver{table: table}
}

// Resolve returns the rooms subscribed to repoID. An unconfigured repository yields an
// empty slice; callers decide how to report it.
func (r *Resolver) Resolve(repoID string) []string {
	rooms := r.table[strings.ToLower(repoID)]
	if len(rooms) == 0 {
		return []string{}
	}
	out := make([]string, len(rooms))
	copy(out, rooms)
	return out
}

// Repositories returns the number of repositories with at least one room.
func (r *Resolver) Repositories() int {
	return len(r.table)
}
