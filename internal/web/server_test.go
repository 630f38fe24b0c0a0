package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamo/photo-gallery/internal/classify"
	"github.com/jamo/photo-gallery/internal/importer"
	"github.com/jamo/photo-gallery/internal/ingest"
	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/pipeline"
	"github.com/jamo/photo-gallery/internal/store"
)

type stubImporter struct {
	stubs []ingest.Stub
	err   error
}

func (i *stubImporter) ImportBatch(ctx context.Context) ([]ingest.Stub, error) {
	return i.stubs, i.err
}

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return []byte("remotebytes"), nil
}

func newTestServer(imp importer.Service) (*Server, *store.Store) {
	s := store.New()
	p := pipeline.New(s, classify.NewHeuristic(), stubFetcher{})
	return NewServer(s, p, imp), s
}

func doJSON(t *testing.T, srv *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, mediaType := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photos"; filename="`+name+`"`)
		h.Set("Content-Type", mediaType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("payload-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/photos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadFiltersNonImages(t *testing.T) {
	srv, s := newTestServer(&stubImporter{})

	req := uploadRequest(t, map[string]string{
		"Vacation.jpg": "image/jpeg",
		"notes.txt":    "text/plain",
	})
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Accepted int `json:"accepted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 1, s.Len())
}

func TestImportIngestsStubs(t *testing.T) {
	taken := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	srv, s := newTestServer(&stubImporter{stubs: []ingest.Stub{
		{Name: "Vacation_Mountain.jpg", RemoteURL: "https://cloud.example/10.jpg", ByteSize: 240500, TakenAt: taken},
		{Name: "Copy of Vacation_Mountain.jpg", RemoteURL: "https://cloud.example/10.jpg", ByteSize: 240500, TakenAt: taken},
	}})

	rec := doJSON(t, srv, http.MethodPost, "/api/import", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, s.Len())

	for _, p := range s.Photos() {
		assert.Equal(t, models.OriginImported, p.Origin)
	}
}

func TestImportFailurePropagates(t *testing.T) {
	srv, s := newTestServer(&stubImporter{err: providerErr{}})

	rec := doJSON(t, srv, http.MethodPost, "/api/import", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 0, s.Len())
}

type providerErr struct{}

func (providerErr) Error() string { return "provider unavailable" }

func TestAlbumsAndPhotosEndpoints(t *testing.T) {
	srv, s := newTestServer(&stubImporter{})
	s.Append(
		models.Photo{ID: "a", Name: "a.jpg", CapturedAt: time.Date(2024, 2, 5, 16, 45, 0, 0, time.UTC), ByteSize: 1, Origin: models.OriginLocal, State: models.StatePending},
		models.Photo{ID: "b", Name: "b.jpg", CapturedAt: time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC), ByteSize: 2, Origin: models.OriginLocal, State: models.StatePending},
	)

	rec := doJSON(t, srv, http.MethodGet, "/api/albums", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var albums []models.Album
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &albums))
	require.Len(t, albums, 2)
	assert.Equal(t, "February 2024", albums[0].Title)

	rec = doJSON(t, srv, http.MethodGet, "/api/photos?album=June+2023", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var photos []models.Photo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &photos))
	require.Len(t, photos, 1)
	assert.Equal(t, "b", photos[0].ID)
}

func TestDuplicateReviewFlow(t *testing.T) {
	srv, s := newTestServer(&stubImporter{})
	ts := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	s.Append(
		models.Photo{ID: "a", Name: "Vacation.jpg", CapturedAt: ts, ByteSize: 240500, Origin: models.OriginLocal, State: models.StatePending},
		models.Photo{ID: "b", Name: "Copy of Vacation.jpg", CapturedAt: ts, ByteSize: 240500, Origin: models.OriginLocal, State: models.StatePending},
	)

	rec := doJSON(t, srv, http.MethodGet, "/api/duplicates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []models.DuplicateGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)

	body, _ := json.Marshal(map[string]string{"keep": "b"})
	rec = doJSON(t, srv, http.MethodPost, "/api/duplicates/"+groups[0].ID+"/resolve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "b", s.Photos()[0].ID)

	// Resolving the stale group again is a no-op.
	rec = doJSON(t, srv, http.MethodPost, "/api/duplicates/"+groups[0].ID+"/resolve", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.Len())
}

func TestPhotoContent(t *testing.T) {
	srv, s := newTestServer(&stubImporter{})
	s.Append(models.Photo{
		ID: "a", Name: "a.jpg", Origin: models.OriginLocal,
		Content: []byte("jpegdata"), MediaType: "image/jpeg",
		CapturedAt: time.Now(), State: models.StatePending,
	})

	rec := doJSON(t, srv, http.MethodGet, "/api/photos/a/content", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpegdata", rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))

	rec = doJSON(t, srv, http.MethodGet, "/api/photos/missing/content", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	srv, s := newTestServer(&stubImporter{})
	s.Append(models.Photo{ID: "a", Name: "a.jpg", CapturedAt: time.Now(), Origin: models.OriginLocal, State: models.StatePending})

	rec := doJSON(t, srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Total    int   `json:"total"`
		Analyzed int64 `json:"analyzed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, int64(0), stats.Analyzed)
}
