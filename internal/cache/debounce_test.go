package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesRapidCalls(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var queries []string
	search := func(q string) func() {
		return func() {
			mu.Lock()
			queries = append(queries, q)
			mu.Unlock()
		}
	}

	// Typing "i", "in", "inc" within the quiet period issues one search,
	// for the final query.
	d.Do(search("i"))
	time.Sleep(5 * time.Millisecond)
	d.Do(search("in"))
	time.Sleep(5 * time.Millisecond)
	d.Do(search("inc"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(queries) == 1 && queries[0] == "inc"
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{"inc"}, queries)
	mu.Unlock()
}

func TestDebouncerFiresSeparateBursts(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	fn := func() {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.Do(fn)
	time.Sleep(30 * time.Millisecond)
	d.Do(fn)
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 2, count)
	mu.Unlock()
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	fired := false
	d.Do(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	d.Stop()
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	assert.False(t, fired, "pending callback ran after Stop")
	mu.Unlock()
}

func TestDebouncerUsableAfterStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Do(func() {})
	d.Stop()

	done := make(chan struct{})
	d.Do(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer did not fire after Stop")
	}
}
