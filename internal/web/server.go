// Package web exposes the gallery over a JSON HTTP API: uploads, cloud
// imports, albums, duplicate review, and the filtered photo grid.
package web

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jamo/photo-gallery/internal/classify"
	"github.com/jamo/photo-gallery/internal/importer"
	"github.com/jamo/photo-gallery/internal/ingest"
	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/organize"
	"github.com/jamo/photo-gallery/internal/pipeline"
	"github.com/jamo/photo-gallery/internal/store"
)

// Server wires the store, analysis pipeline, and importer behind an Echo
// instance. Every derived read recomputes from the current store snapshot;
// nothing is cached across mutations.
type Server struct {
	echo     *echo.Echo
	store    *store.Store
	pipeline *pipeline.Pipeline
	importer importer.Service
}

func NewServer(s *store.Store, p *pipeline.Pipeline, imp importer.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:     e,
		store:    s,
		pipeline: p,
		importer: imp,
	}

	e.POST("/api/photos", srv.handleUpload)
	e.POST("/api/import", srv.handleImport)
	e.GET("/api/photos", srv.handlePhotos)
	e.GET("/api/photos/:id/content", srv.handlePhotoContent)
	e.GET("/api/albums", srv.handleAlbums)
	e.GET("/api/duplicates", srv.handleDuplicates)
	e.POST("/api/duplicates/:id/resolve", srv.handleResolveDuplicate)
	e.GET("/api/stats", srv.handleStats)

	return srv
}

// Start runs the server until it fails or the process exits.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// handleUpload ingests a multipart batch of image files. Non-image parts
// are filtered silently; analysis starts only after the whole batch is in
// the store.
func (s *Server) handleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected multipart form")
	}

	var batch []ingest.Upload
	for _, fh := range form.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
		}

		mediaType := fh.Header.Get("Content-Type")
		batch = append(batch, ingest.Upload{
			Name:      fh.Filename,
			MediaType: mediaType,
			Data:      data,
			ModTime:   modTimeFromForm(c, fh.Filename),
		})
	}

	photos := ingest.Uploads(s.store, batch)
	for _, p := range photos {
		// Analysis outlives the request; the request context would cancel
		// it on return.
		s.pipeline.Enqueue(context.Background(), p)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"accepted": len(photos),
		"photos":   photos,
	})
}

// handleImport pulls a batch from the cloud provider and ingests it.
func (s *Server) handleImport(c echo.Context) error {
	stubs, err := s.importer.ImportBatch(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	photos := ingest.Stubs(s.store, stubs)
	for _, p := range photos {
		s.pipeline.Enqueue(context.Background(), p)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"imported": len(photos),
		"photos":   photos,
	})
}

// handlePhotos returns the visible photo list, optionally filtered by the
// album query parameter, sorted most recent first.
func (s *Server) handlePhotos(c echo.Context) error {
	snapshot := s.store.Photos()
	albums := organize.DeriveAlbums(snapshot)
	visible := organize.VisiblePhotos(snapshot, albums, c.QueryParam("album"))
	return c.JSON(http.StatusOK, visible)
}

// handlePhotoContent serves the raw bytes of a locally uploaded photo; this
// is the target of a local photo's display URL.
func (s *Server) handlePhotoContent(c echo.Context) error {
	p, ok := s.store.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown photo")
	}
	if p.Origin == models.OriginImported {
		return c.Redirect(http.StatusFound, p.RemoteURL)
	}
	mediaType := p.MediaType
	if mediaType == "" {
		mediaType = classify.DefaultMediaType
	}
	return c.Blob(http.StatusOK, mediaType, p.Content)
}

func (s *Server) handleAlbums(c echo.Context) error {
	return c.JSON(http.StatusOK, organize.DeriveAlbums(s.store.Photos()))
}

func (s *Server) handleDuplicates(c echo.Context) error {
	return c.JSON(http.StatusOK, organize.FindDuplicates(s.store.Photos()))
}

type resolveRequest struct {
	Keep string `json:"keep"`
}

// handleResolveDuplicate removes every member of the group except the kept
// photo. A stale group id is a no-op, not an error.
func (s *Server) handleResolveDuplicate(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil || req.Keep == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "keep photo id required")
	}

	groups := organize.FindDuplicates(s.store.Photos())
	organize.Resolve(s.store, groups, c.Param("id"), req.Keep)

	return c.JSON(http.StatusOK, map[string]any{
		"remaining": len(organize.FindDuplicates(s.store.Photos())),
	})
}

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"total":    s.store.Len(),
		"analyzed": s.pipeline.Analyzed(),
	})
}

// modTimeFromForm reads the per-file modification time the upload widget
// sends alongside the payload, falling back to the upload time.
func modTimeFromForm(c echo.Context, filename string) time.Time {
	key := "modtime_" + strings.ReplaceAll(filename, " ", "_")
	if v := c.FormValue(key); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Now()
}
