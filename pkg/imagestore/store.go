// Package imagestore is the process-wide content-addressed cache of
// decoded, resized RGBA buffers that the blueprint service reads images
// from.
package imagestore

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/coltonbatts/colorwizard/pkg/previewencode"
)

// ErrInvalidImage is returned when the supplied bytes cannot be decoded.
type ErrInvalidImage struct{ Cause error }

func (e *ErrInvalidImage) Error() string { return fmt.Sprintf("imagestore: invalid image: %v", e.Cause) }
func (e *ErrInvalidImage) Unwrap() error { return e.Cause }

// ErrImageTooLarge is returned when the decoded image exceeds the
// configured absolute dimension cap, even before resizing.
type ErrImageTooLarge struct{ W, H, Cap int }

func (e *ErrImageTooLarge) Error() string {
	return fmt.Sprintf("imagestore: decoded image %dx%d exceeds absolute cap %d", e.W, e.H, e.Cap)
}

// Record is an immutable image-store entry: never mutated after creation.
type Record struct {
	ID        string
	W, H      int
	RGBA      []byte
	CreatedAt time.Time
}

// Store is a process-wide, mutex-guarded, content-addressed LRU cache of
// Records. Entries referenced by a running computation are pinned via
// reference counting and skipped by eviction.
type Store struct {
	mu          sync.Mutex
	codec       previewencode.Codec
	capacity    int
	absoluteCap int

	byID   map[string]*list.Element // id -> lru element
	lru    *list.List               // front = most recently used
	refCnt map[string]int
}

type entry struct {
	record *Record
}

// New returns a Store with the given LRU capacity (registrations) and
// absolute decoded-dimension cap. codec provides decode/resize.
func New(codec previewencode.Codec, capacity, absoluteCap int) *Store {
	if capacity <= 0 {
		capacity = 64
	}
	if absoluteCap <= 0 {
		absoluteCap = 8192
	}
	return &Store{
		codec:       codec,
		capacity:    capacity,
		absoluteCap: absoluteCap,
		byID:        make(map[string]*list.Element),
		lru:         list.New(),
		refCnt:      make(map[string]int),
	}
}

// Register content-hashes data together with maxDim to form the cache key.
// If an entry already exists for that key, its id is returned without
// redecoding. Otherwise the bytes are decoded, resized to fit maxDim, and
// stored.
func (s *Store) Register(data []byte, maxDim int) (string, error) {
	id := contentID(data, maxDim)

	s.mu.Lock()
	if el, ok := s.byID[id]; ok {
		s.lru.MoveToFront(el)
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	rgba, w, h, err := s.codec.DecodeImage(data)
	if err != nil {
		return "", &ErrInvalidImage{Cause: err}
	}
	maxSide := w
	if h > maxSide {
		maxSide = h
	}
	if maxSide > s.absoluteCap {
		return "", &ErrImageTooLarge{W: w, H: h, Cap: s.absoluteCap}
	}

	if maxDim > 0 && maxSide > maxDim {
		rgba, w, h = s.codec.Resize(rgba, w, h, maxDim)
	}

	rec := &Record{ID: id, W: w, H: h, RGBA: rgba, CreatedAt: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have raced us to the same id; prefer the first
	// winner so every reader observes one immutable Record per id.
	if el, ok := s.byID[id]; ok {
		s.lru.MoveToFront(el)
		return id, nil
	}
	el := s.lru.PushFront(&entry{record: rec})
	s.byID[id] = el
	s.evictLocked()
	return id, nil
}

// ErrUnknownImage is returned by Acquire when id does not resolve.
type ErrUnknownImage struct{ ID string }

func (e *ErrUnknownImage) Error() string { return fmt.Sprintf("imagestore: unknown image id %s", e.ID) }

// Acquire pins the record for id (incrementing its reference count so it
// cannot be evicted) and returns it. Callers must call Release when done.
func (s *Store) Acquire(id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return nil, &ErrUnknownImage{ID: id}
	}
	s.lru.MoveToFront(el)
	s.refCnt[id]++
	return el.Value.(*entry).record, nil
}

// Release drops one reference to id, making it eligible for eviction again
// once its reference count returns to zero.
func (s *Store) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refCnt[id] <= 1 {
		delete(s.refCnt, id)
	} else {
		s.refCnt[id]--
	}
}

// evictLocked drops least-recently-used, unreferenced entries until the
// store is back within capacity. Must be called with s.mu held.
func (s *Store) evictLocked() {
	for s.lru.Len() > s.capacity {
		el := s.lru.Back()
		for el != nil {
			id := el.Value.(*entry).record.ID
			if s.refCnt[id] == 0 {
				break
			}
			el = el.Prev()
		}
		if el == nil {
			return // every remaining entry is pinned; nothing evictable
		}
		id := el.Value.(*entry).record.ID
		s.lru.Remove(el)
		delete(s.byID, id)
	}
}

// contentID derives a stable id from the image bytes and maxDim, giving at
// least 96 bits of collision resistance.
func contentID(data []byte, maxDim int) string {
	h := sha256.New()
	h.Write(data)
	var dimBuf [8]byte
	binary.BigEndian.PutUint64(dimBuf[:], uint64(maxDim))
	h.Write(dimBuf[:])
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16]) // 128 bits, well above the 96-bit floor
}
