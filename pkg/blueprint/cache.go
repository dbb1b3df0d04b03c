package blueprint

import (
	"container/list"
	"sync"
)

// resultCache is a fixed-size LRU keyed by fingerprint, guaranteeing
// at-most-one materialization of any given fingerprint: a per-fingerprint
// build lock makes concurrent callers on the same key wait for the first
// to finish and then read the cached value, rather than recomputing.
//
// Only one build lock is ever held by a goroutine at a time. While holding
// it, a goroutine takes only short-lived internal mutexes (the cache's own
// and the image store's), none of which is held while waiting for a build
// lock, so the scheme cannot deadlock.
type resultCache struct {
	capacity int

	mu   sync.Mutex
	byID map[string]*list.Element
	lru  *list.List

	buildMu sync.Mutex
	builds  map[string]*sync.Mutex
}

type cacheEntry struct {
	key    string
	result *Result
}

func newResultCache(capacity int) *resultCache {
	if capacity <= 0 {
		capacity = 20
	}
	return &resultCache{
		capacity: capacity,
		byID:     make(map[string]*list.Element),
		lru:      list.New(),
		builds:   make(map[string]*sync.Mutex),
	}
}

// get returns the cached result for key, if present, promoting it to
// most-recently-used.
func (c *resultCache) get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byID[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(*cacheEntry).result, true
}

// put inserts result under key, evicting the least-recently-used entry if
// the cache is over capacity.
func (c *resultCache) put(key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.byID[key]; ok {
		el.Value.(*cacheEntry).result = result
		c.lru.MoveToFront(el)
		return
	}
	el := c.lru.PushFront(&cacheEntry{key: key, result: result})
	c.byID[key] = el
	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.byID, oldest.Value.(*cacheEntry).key)
		}
	}
}

// lockBuild returns the per-fingerprint mutex for key, creating it if
// necessary, and locks it. Callers must call unlockBuild(key) when done.
func (c *resultCache) lockBuild(key string) {
	c.buildMu.Lock()
	m, ok := c.builds[key]
	if !ok {
		m = &sync.Mutex{}
		c.builds[key] = m
	}
	c.buildMu.Unlock()
	m.Lock()
}

func (c *resultCache) unlockBuild(key string) {
	c.buildMu.Lock()
	m := c.builds[key]
	c.buildMu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
