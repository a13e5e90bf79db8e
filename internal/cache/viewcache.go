package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader computes a view's value on a cache miss.
type Loader func(ctx context.Context) (interface{}, error)

// Mutation identifies a write whose success invalidates derived views.
type Mutation string

const (
	MutationRate           Mutation = "rate"
	MutationDeleteRating   Mutation = "delete_rating"
	MutationFollow         Mutation = "follow"
	MutationUnfollow       Mutation = "unfollow"
	MutationLike           Mutation = "like"
	MutationUnlike         Mutation = "unlike"
	MutationWatchlistWrite Mutation = "watchlist_write"
	MutationProfileUpdate  Mutation = "profile_update"
)

// invalidationTable maps each mutation to the key prefixes it dirties.
// Templates expand with %[1]s = acting user ID and %[2]s = movie ID.
// A trailing colon marks a prefix that sweeps a whole key family: any
// follower's feed may contain the mutated rating, so feeds are swept
// wholesale rather than tracked per-follower.
var invalidationTable = map[Mutation][]string{
	MutationRate: {
		"rating:user:%[1]s:movie:%[2]s",
		"ratings:movie:%[2]s",
		"ratings:recent:%[2]s",
		"ratings:user:%[1]s",
		"profile:stats:%[1]s",
		"activity:",
		"leaderboard",
	},
	MutationDeleteRating: {
		"rating:user:%[1]s:movie:%[2]s",
		"ratings:movie:%[2]s",
		"ratings:recent:%[2]s",
		"ratings:user:%[1]s",
		"profile:stats:%[1]s",
		"watchlist:%[1]s",
		"activity:",
		"leaderboard",
	},
	MutationFollow: {
		"activity:feed:%[1]s",
		"activity:unread:%[1]s",
		"follows:%[1]s",
	},
	MutationUnfollow: {
		"activity:feed:%[1]s",
		"activity:unread:%[1]s",
		"follows:%[1]s",
	},
	MutationLike:   {"leaderboard"},
	MutationUnlike: {"leaderboard"},
	MutationWatchlistWrite: {
		"watchlist:%[1]s",
	},
	MutationProfileUpdate: {
		"profile:%[1]s",
		"leaderboard",
		"activity:",
	},
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// ViewCache is a keyed, TTL-bound cache for derived views. Concurrent loads
// of the same key are deduplicated through singleflight, and mutations
// invalidate via the table above rather than ad hoc calls at call sites.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func NewViewCache() *ViewCache {
	return &ViewCache{
		entries: make(map[string]entry),
	}
}

// Key builds a cache key from a view name and its parameters.
func Key(view string, params ...interface{}) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, view)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ":")
}

// GetOrLoad returns the cached value for key while it is fresh, otherwise
// runs loader (once per key, however many callers are waiting) and caches
// the result for ttl.
func (c *ViewCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) (interface{}, error) {
	if value, ok := c.get(key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have populated the entry while this
		// caller was queued on the flight group.
		if value, ok := c.get(key); ok {
			return value, nil
		}

		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.set(key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Peek returns the cached value without loading.
func (c *ViewCache) Peek(key string) (interface{}, bool) {
	return c.get(key)
}

// Invalidate drops exact keys.
func (c *ViewCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// InvalidatePrefix drops every key sharing the prefix.
func (c *ViewCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// OnMutation applies the invalidation table for a successful mutation.
// userID is the acting user; movieID may be zero when the mutation has no
// movie dimension.
func (c *ViewCache) OnMutation(m Mutation, userID string, movieID int) {
	templates, ok := invalidationTable[m]
	if !ok {
		return
	}
	for _, tpl := range templates {
		key := tpl
		if strings.Contains(tpl, "%") {
			key = fmt.Sprintf(tpl, userID, fmt.Sprint(movieID))
		}
		if strings.HasSuffix(tpl, ":") {
			c.InvalidatePrefix(key)
		} else {
			c.Invalidate(key)
		}
	}
}

// StartRefresh re-runs loader every interval and refreshes the entry until
// the returned stop function is called or ctx is cancelled. Used for
// feed-like views that poll while displayed. Load errors leave the previous
// entry in place until it expires.
func (c *ViewCache) StartRefresh(ctx context.Context, key string, ttl, interval time.Duration, loader Loader) (stop func()) {
	refreshCtx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				value, err := loader(refreshCtx)
				if err != nil {
					continue
				}
				c.set(key, value, ttl)
			}
		}
	}()

	return cancel
}

func (c *ViewCache) get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *ViewCache) set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}
