package webhook

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// deliveryCache remembers recently handled X-GitHub-Delivery ids so that
// redeliveries of the same webhook are not relayed twice.
type deliveryCache struct {
	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

func newDeliveryCache(size int, ttl time.Duration) *deliveryCache {
	if size <= 0 {
		size = defaultDedupeSize
	}
	if ttl <= 0 {
		ttl = defaultDedupeTTL
	}
	return &deliveryCache{
		seen: expirable.NewLRU[string, struct{}](
			size,
			nil, // No eviction callback
			ttl,
		),
	}
}

// Handled reports whether id was marked within the ttl. Empty ids are never handled.
func (d *deliveryCache) Handled(id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.seen.Peek(id)
	return ok
}

// Mark records id as handled. A delivery is marked only once its outcome cannot be
// improved by GitHub sending it again.
func (d *deliveryCache) Mark(id string) {
	if id == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seen.Add(id, struct{}{})
}
