// Package gallery holds rendered outputs in memory so the web front-end can
// serve them back by key. Entries expire after a fixed TTL.
package gallery

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Rendering is one finished output held for serving.
type Rendering struct {
	Data []byte
	MIME string
}

// Store is a concurrency-safe keyed store of renderings.
type Store struct {
	mu  sync.RWMutex
	m   map[string]Rendering
	ttl time.Duration
}

// NewStore returns a store whose entries expire after ttl; a zero ttl keeps
// entries forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{m: map[string]Rendering{}, ttl: ttl}
}

// Get looks up a rendering by key.
func (s *Store) Get(id string) (Rendering, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.m[id]
	return r, ok
}

// Put stores r under a fresh key, schedules its expiry and returns the key.
func (s *Store) Put(r Rendering) string {
	id := newID()
	s.mu.Lock()
	s.m[id] = r
	s.mu.Unlock()
	if s.ttl > 0 {
		time.AfterFunc(s.ttl, func() {
			s.mu.Lock()
			delete(s.m, id)
			s.mu.Unlock()
		})
	}
	return id
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
