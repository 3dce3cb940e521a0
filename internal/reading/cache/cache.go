// Package cache keeps generated interpretations so identical readings are
// answered without a second provider call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 500
)

type entry struct {
	text    string
	created time.Time
}

// InterpretationCache is a TTL cache bounded by LRU eviction. It is safe for
// concurrent use; concurrent writers of one key replace the whole value and
// the last one wins.
type InterpretationCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items *lru.Cache
	now   func() time.Time
}

type Option func(*InterpretationCache)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *InterpretationCache) {
		c.now = now
	}
}

// WithMaxEntries bounds the cache; the least recently used entry is evicted
// first. Zero or less keeps the default.
func WithMaxEntries(n int) Option {
	return func(c *InterpretationCache) {
		if n > 0 {
			c.items = lru.New(n)
		}
	}
}

func New(ttl time.Duration, opts ...Option) *InterpretationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &InterpretationCache{
		ttl:   ttl,
		items: lru.New(DefaultMaxEntries),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached text when it is younger than the TTL. Expired
// entries are dropped on read.
func (c *InterpretationCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items.Get(key)
	if !ok {
		return "", false
	}
	e := v.(entry)
	if c.now().Sub(e.created) >= c.ttl {
		c.items.Remove(key)
		return "", false
	}
	return e.text, true
}

// Set stores text under key, stamped with the current time
func (c *InterpretationCache) Set(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Add(key, entry{text: text, created: c.now()})
}

func (c *InterpretationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

// Key derives the cache key of a reading: hex SHA-256 over the sorted card
// names, the spread id and the trimmed, lowercased question. Card order and
// question case do not change the key.
func Key(cardNames []string, spreadID, question string) string {
	names := append([]string(nil), cardNames...)
	sort.Strings(names)

	raw := strings.Join(names, ",") + "|" + spreadID + "|" + strings.ToLower(strings.TrimSpace(question))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
