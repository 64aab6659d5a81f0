// internal/cache/lru.go
//
// Tiny LRU cache.  Each inline worker keeps its compiled templates in one
// of these.  Capacity 0 means unbounded, which is the inline default: the
// key space is the program's call sites times formats, fixed at build
// time.  A positive capacity is an opt-in memory bound that trades
// recompiles for a smaller map.
//
// Notes
// -----
//   - Not safe for concurrent use.  Callers hold their own lock.
//   - Good for a few thousand entries.
package cache

import "container/list"

// LRU is a least-recently-used cache keyed by any comparable type.
type LRU[K comparable, V any] struct {
	cap  int
	ll   *list.List
	dict map[K]*list.Element
}

type pair[K comparable, V any] struct {
	key K
	val V
}

// New returns an LRU with the given capacity; 0 means unbounded.  Panics
// on a negative capacity.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 0 {
		panic("cache: capacity must be ≥0")
	}
	return &LRU[K, V]{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[K]*list.Element, min(capacity, 64)),
	}
}

// Get retrieves a value and marks it MRU.
func (c *LRU[K, V]) Get(key K) (val V, ok bool) {
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pair[K, V]).val, true
	}
	return val, false
}

// Add inserts or replaces a value.  It reports whether an older entry was
// evicted to make room.
func (c *LRU[K, V]) Add(key K, val V) (evicted bool) {
	if ele, hit := c.dict[key]; hit {
		ele.Value = pair[K, V]{key, val}
		c.ll.MoveToFront(ele)
		return false
	}
	ele := c.ll.PushFront(pair[K, V]{key, val})
	c.dict[key] = ele
	if c.cap > 0 && c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		delete(c.dict, last.Value.(pair[K, V]).key)
		return true
	}
	return false
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.ll.Init()
	clear(c.dict)
}

// Len reports current size.
func (c *LRU[K, V]) Len() int { return c.ll.Len() }
