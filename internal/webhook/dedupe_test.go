package webhook

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryCache(t *testing.T) {
	d := newDeliveryCache(2, time.Minute)

	assert.False(t, d.Handled("a"))
	assert.False(t, d.Handled("a"), "checking must not mark")

	d.Mark("a")
	assert.True(t, d.Handled("a"))

	d.Mark("b")
	d.Mark("c") // evicts "a"
	assert.False(t, d.Handled("a"))
	assert.True(t, d.Handled("b"))
	assert.True(t, d.Handled("c"))

	d.Mark("")
	assert.False(t, d.Handled(""))
}

func TestDeliveryCacheExpiry(t *testing.T) {
	d := newDeliveryCache(10, 20*time.Millisecond)

	d.Mark("a")
	assert.Eventually(t, func() bool {
		return !d.Handled("a")
	}, time.Second, 10*time.Millisecond)
}

func TestDeliveryCacheConcurrent(t *testing.T) {
	d := newDeliveryCache(0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("delivery-%d", i%4)
			d.Handled(id)
			d.Mark(id)
		}()
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		assert.True(t, d.Handled(fmt.Sprintf("delivery-%d", i)))
	}
}
