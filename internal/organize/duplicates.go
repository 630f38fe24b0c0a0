// Package organize derives albums, duplicate groups, and the visible photo
// list from a store snapshot. Everything here is a pure function of its
// input: derived state is recomputed in full after every mutation, never
// patched incrementally.
package organize

import (
	"fmt"

	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/store"
)

// fingerprint is the exact-match duplicate key. Capture timestamp to the
// millisecond plus byte size; filenames are deliberately ignored since
// copies and renames share content but not names. Visually identical photos
// with differing metadata are not detected, and that is intentional: no
// content hashing in scope.
func fingerprint(p models.Photo) string {
	return fmt.Sprintf("%d_%d", p.CapturedAt.UnixMilli(), p.ByteSize)
}

// FindDuplicates groups photos by fingerprint and returns every group with
// at least two members. Groups appear in first-seen fingerprint order and
// members keep the snapshot's insertion order, so identical input always
// yields identical output.
func FindDuplicates(photos []models.Photo) []models.DuplicateGroup {
	buckets := make(map[string][]models.Photo)
	var order []string

	for _, p := range photos {
		key := fingerprint(p)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], p)
	}

	var groups []models.DuplicateGroup
	for _, key := range order {
		members := buckets[key]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, models.DuplicateGroup{
			ID:     key,
			Key:    key,
			Photos: members,
		})
	}
	return groups
}

// Resolve keeps one photo of a duplicate group and removes the rest from
// the store permanently. A stale group id, already resolved or never
// derived, is a no-op. Callers recompute all derived state from the new
// snapshot afterwards.
func Resolve(s *store.Store, groups []models.DuplicateGroup, groupID, keepID string) {
	for _, g := range groups {
		if g.ID != groupID {
			continue
		}
		var remove []string
		for _, p := range g.Photos {
			if p.ID != keepID {
				remove = append(remove, p.ID)
			}
		}
		s.Remove(remove...)
		return
	}
}
