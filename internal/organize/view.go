package organize

import (
	"sort"

	"github.com/jamo/photo-gallery/internal/models"
)

// VisiblePhotos is the consumer-facing read path: the snapshot filtered by
// the selected album's membership predicate and sorted most recent first.
// An empty or unknown album id selects everything. Ties on capture time
// keep the snapshot's order.
func VisiblePhotos(photos []models.Photo, albums []models.Album, selectedAlbumID string) []models.Photo {
	filtered := photos
	if selectedAlbumID != "" {
		if album, ok := AlbumByID(albums, selectedAlbumID); ok {
			filtered = make([]models.Photo, 0, len(photos))
			for _, p := range photos {
				if album.Contains(p) {
					filtered = append(filtered, p)
				}
			}
		}
	}

	out := make([]models.Photo, len(filtered))
	copy(out, filtered)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CapturedAt.After(out[j].CapturedAt)
	})
	return out
}
