// Package ingest turns raw upload payloads and cloud import stubs into photo
// records and appends them to the store.
package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/store"
)

// Upload is one locally uploaded payload.
type Upload struct {
	Name      string
	MediaType string
	Data      []byte
	ModTime   time.Time
}

// Stub is one photo descriptor returned by the cloud importer. Stubs carry
// no byte content; the pipeline fetches it from RemoteURL on demand.
type Stub struct {
	Name      string    `json:"name"`
	RemoteURL string    `json:"url"`
	ByteSize  int64     `json:"size"`
	TakenAt   time.Time `json:"taken_at"`
}

// Uploads validates and ingests a batch of local payloads. Entries that do
// not declare an image media type are dropped silently; this is filtering,
// not an error. The returned photos are already appended to the store, in
// batch order, before any analysis begins.
func Uploads(s *store.Store, batch []Upload) []models.Photo {
	var photos []models.Photo
	for _, u := range batch {
		if !strings.HasPrefix(u.MediaType, "image/") {
			continue
		}
		id := uuid.NewString()
		photos = append(photos, models.Photo{
			ID:         id,
			Name:       u.Name,
			CapturedAt: u.ModTime,
			ByteSize:   int64(len(u.Data)),
			Origin:     models.OriginLocal,
			State:      models.StatePending,
			Content:    u.Data,
			MediaType:  u.MediaType,
			DisplayURL: "/api/photos/" + id + "/content",
		})
	}
	s.Append(photos...)
	return photos
}

// Stubs ingests a batch of imported photo descriptors. Stubs arrive
// pre-validated by the importer, so no media-type filtering happens here.
func Stubs(s *store.Store, batch []Stub) []models.Photo {
	var photos []models.Photo
	for _, st := range batch {
		photos = append(photos, models.Photo{
			ID:         uuid.NewString(),
			Name:       st.Name,
			CapturedAt: st.TakenAt,
			ByteSize:   st.ByteSize,
			Origin:     models.OriginImported,
			State:      models.StatePending,
			RemoteURL:  st.RemoteURL,
			DisplayURL: st.RemoteURL,
		})
	}
	s.Append(photos...)
	return photos
}
