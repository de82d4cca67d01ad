// Package querycache memoises backend reads per principal, kind and date
// scope, and drops them when a mutation touches one of their dates.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/starford/daybook/internal/observability"
)

// Key identifies one cached read. Scope is a single date, a comma-joined
// list of dates for range reads, or empty for undated reads.
type Key struct {
	Principal string
	Kind      string
	Scope     string
}

// DayKey is the key of a single-date read.
func DayKey(principal, kind, date string) Key {
	return Key{Principal: principal, Kind: kind, Scope: date}
}

// RangeKey is the key of a multi-date read.
func RangeKey(principal, kind string, dates []string) Key {
	return Key{Principal: principal, Kind: kind, Scope: strings.Join(dates, ",")}
}

func (k Key) String() string {
	return k.Principal + "|" + k.Kind + "|" + k.Scope
}

// Covers reports whether the key's scope includes date. An empty date
// matches every scope.
func (k Key) Covers(date string) bool {
	if date == "" || k.Scope == date {
		return true
	}
	for _, d := range strings.Split(k.Scope, ",") {
		if d == date {
			return true
		}
	}
	return false
}

// Pattern selects entries to invalidate: all of Principal's Kind entries
// whose scope covers Date, or all of them when Date is empty.
type Pattern struct {
	Principal string
	Kind      string
	Date      string
}

type entry struct {
	value   any
	expires time.Time
}

type streamKey struct {
	principal, kind string
}

// Cache is safe for concurrent use.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[Key]entry
	epochs  map[streamKey]uint64

	group singleflight.Group
}

// New returns a cache whose entries live for ttl, or until invalidated when
// ttl is zero.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Key]entry),
		epochs:  make(map[streamKey]uint64),
	}
}

func (c *Cache) lookup(key Key) (any, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sk := streamKey{key.Principal, key.Kind}
	epoch, ok := c.epochs[sk]
	if !ok {
		c.epochs[sk] = 0
	}
	e, ok := c.entries[key]
	if ok && !e.expires.IsZero() && c.now().After(e.expires) {
		delete(c.entries, key)
		ok = false
	}
	return e.value, epoch, ok
}

// store keeps value unless the stream was invalidated since epoch was read.
func (c *Cache) store(key Key, epoch uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epochs[streamKey{key.Principal, key.Kind}] != epoch {
		return
	}
	e := entry{value: value}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.entries[key] = e
}

// Get returns the cached value for key or runs fetch. Concurrent callers of
// the same key share one fetch, which is not cancelled when a caller gives up. A fetch that started before an overlapping
// invalidation still returns its result but does not populate the cache.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	cached, epoch, ok := c.lookup(key)
	observability.RecordCacheLookup(key.Kind, ok)
	if ok {
		return cached.(T), nil
	}
	// The shared fetch outlives any one caller; each caller stops waiting
	// when its own ctx is done.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s#%d", key, epoch), func() (any, error) {
		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, epoch, v)
		return v, nil
	})
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate drops matching entries and supersedes in-flight fetches of the
// same principal and kind. It returns the number of entries dropped.
func (c *Cache) Invalidate(p Pattern) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epochs[streamKey{p.Principal, p.Kind}]++
	n := 0
	for k := range c.entries {
		if k.Principal == p.Principal && k.Kind == p.Kind && k.Covers(p.Date) {
			delete(c.entries, k)
			n++
		}
	}
	observability.RecordInvalidation(p.Kind, n)
	return n
}

// InvalidatePrincipal drops everything cached for principal.
func (c *Cache) InvalidatePrincipal(principal string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sk := range c.epochs {
		if sk.principal == principal {
			c.epochs[sk]++
		}
	}
	n := 0
	for k := range c.entries {
		if k.Principal == principal {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
