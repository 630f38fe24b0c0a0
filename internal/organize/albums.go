package organize

import (
	"sort"
	"time"

	"github.com/jamo/photo-gallery/internal/models"
)

// DeriveAlbums computes the virtual album list for a snapshot: one date
// album per distinct capture month, then one content album per distinct
// category among analyzed photos. Date albums come first, most recent month
// first; content albums follow alphabetically by title. Photos without a
// completed analysis contribute to no content album; they are picked up
// automatically once a later derivation sees their category.
func DeriveAlbums(photos []models.Photo) []models.Album {
	byID := make(map[string]*models.Album)
	var order []string

	for _, p := range photos {
		key := models.MonthYear(p.CapturedAt)
		if _, ok := byID[key]; !ok {
			byID[key] = &models.Album{
				ID:      key,
				Kind:    models.AlbumDate,
				Title:   key,
				DateKey: key,
			}
			order = append(order, key)
		}
		byID[key].Count++
	}

	for _, p := range photos {
		if p.State != models.StateDone || p.Analysis == nil || p.Analysis.Category == "" {
			continue
		}
		// Prefixed to avoid colliding with date album ids.
		key := "cat_" + p.Analysis.Category
		if _, ok := byID[key]; !ok {
			byID[key] = &models.Album{
				ID:       key,
				Kind:     models.AlbumContent,
				Title:    p.Analysis.Category,
				Category: p.Analysis.Category,
			}
			order = append(order, key)
		}
		byID[key].Count++
	}

	albums := make([]models.Album, 0, len(order))
	for _, key := range order {
		albums = append(albums, *byID[key])
	}

	sort.SliceStable(albums, func(i, j int) bool {
		a, b := albums[i], albums[j]
		if a.Kind != b.Kind {
			return a.Kind == models.AlbumDate
		}
		if a.Kind == models.AlbumDate {
			return monthStart(a.DateKey).After(monthStart(b.DateKey))
		}
		return a.Title < b.Title
	})
	return albums
}

// AlbumByID finds an album in a derived list.
func AlbumByID(albums []models.Album, id string) (models.Album, bool) {
	for _, a := range albums {
		if a.ID == id {
			return a, true
		}
	}
	return models.Album{}, false
}

func monthStart(label string) time.Time {
	t, err := time.Parse("January 2006", label)
	if err != nil {
		return time.Time{}
	}
	return t
}
