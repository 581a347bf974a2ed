package webhook

import "time"

// Config holds inbound webhook settings.
type Config struct {
	DedupeSize   int           // delivery ids remembered at most
	DedupeTTL    time.Duration // how long a delivery id is remembered
	MaxBodyBytes int64         // larger bodies are rejected as unparseable
}

const (
	pingResponse     = "Working!"
	payloadFormField = "payload"

	defaultDedupeSize   = 1000
	defaultDedupeTTL    = 10 * time.Minute
	defaultMaxBodyBytes = 5 << 20
)
