// Package store holds the canonical, mutable photo collection. Every other
// component derives its output from a snapshot taken here.
package store

import (
	"sync"

	"github.com/jamo/photo-gallery/internal/models"
)

// Store is the single source of truth for photo records. Readers always see
// a fully applied snapshot: mutations swap or edit the backing slice under
// the write lock, and Photos returns a copy.
type Store struct {
	mu     sync.RWMutex
	photos []models.Photo
}

func New() *Store {
	return &Store{}
}

// Append adds photos to the end of the collection, preserving order.
func (s *Store) Append(photos ...models.Photo) {
	if len(photos) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append(s.photos, photos...)
}

// Photos returns a snapshot of the collection in insertion order.
func (s *Store) Photos() []models.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.Photo, len(s.photos))
	copy(snapshot, s.photos)
	return snapshot
}

// Len reports the current number of photos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

// Get returns the photo with the given id, if present.
func (s *Store) Get(id string) (models.Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.photos {
		if p.ID == id {
			return p, true
		}
	}
	return models.Photo{}, false
}

// Patch applies fn to the photo with the given id, replacing that record
// without disturbing its neighbors. Patching an unknown id is a no-op.
func (s *Store) Patch(id string, fn func(*models.Photo)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.photos {
		if s.photos[i].ID == id {
			fn(&s.photos[i])
			return
		}
	}
}

// Remove deletes every photo whose id appears in ids. Unknown ids are
// ignored.
func (s *Store) Remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.photos[:0]
	for _, p := range s.photos {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	s.photos = kept
}
