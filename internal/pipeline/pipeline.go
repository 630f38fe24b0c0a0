// Package pipeline drives each photo through its classification lifecycle:
// pending -> analyzing -> done | failed.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jamo/photo-gallery/internal/classify"
	"github.com/jamo/photo-gallery/internal/importer"
	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/store"
)

// Pipeline runs at most one analysis per photo at a time. Invocations for
// different photos may run concurrently and complete in any order; each one
// only ever patches its own photo's record, so the in-flight id set is the
// only coordination needed.
type Pipeline struct {
	store      *store.Store
	classifier classify.Classifier
	fetcher    importer.Fetcher

	mu       sync.Mutex
	inFlight map[string]bool

	analyzed atomic.Int64
}

func New(s *store.Store, c classify.Classifier, f importer.Fetcher) *Pipeline {
	return &Pipeline{
		store:      s,
		classifier: c,
		fetcher:    f,
		inFlight:   make(map[string]bool),
	}
}

// Analyzed reports how many photos have completed analysis successfully.
// Used only for progress display.
func (p *Pipeline) Analyzed() int64 {
	return p.analyzed.Load()
}

// Enqueue starts analysis for the photo in a new goroutine. A photo already
// in flight is dropped silently; the request is neither queued nor
// duplicated. Returns whether the photo was accepted.
func (p *Pipeline) Enqueue(ctx context.Context, photo models.Photo) bool {
	if !p.claim(photo.ID) {
		return false
	}
	go func() {
		defer p.release(photo.ID)
		if err := p.process(ctx, photo); err != nil {
			fmt.Printf("Analysis failed for %s (%s): %v\n", photo.Name, photo.ID, err)
		}
	}()
	return true
}

// Run analyzes the photo synchronously, honoring the same in-flight guard.
// Used by the one-shot CLI commands.
func (p *Pipeline) Run(ctx context.Context, photo models.Photo) error {
	if !p.claim(photo.ID) {
		return nil
	}
	defer p.release(photo.ID)
	return p.process(ctx, photo)
}

func (p *Pipeline) claim(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight[id] {
		return false
	}
	p.inFlight[id] = true
	return true
}

func (p *Pipeline) release(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, id)
}

func (p *Pipeline) process(ctx context.Context, photo models.Photo) error {
	p.store.Patch(photo.ID, func(rec *models.Photo) {
		rec.State = models.StateAnalyzing
	})

	analysis, err := p.analyze(ctx, photo)
	if err != nil {
		// Failure is per photo and terminal; siblings are unaffected.
		p.store.Patch(photo.ID, func(rec *models.Photo) {
			rec.State = models.StateFailed
		})
		return err
	}

	p.store.Patch(photo.ID, func(rec *models.Photo) {
		rec.State = models.StateDone
		rec.Analysis = analysis
	})
	p.analyzed.Add(1)
	return nil
}

func (p *Pipeline) analyze(ctx context.Context, photo models.Photo) (*models.Analysis, error) {
	data := photo.Content
	mediaType := photo.MediaType
	if mediaType == "" {
		mediaType = classify.DefaultMediaType
	}

	if photo.Origin == models.OriginImported {
		fetched, err := p.fetcher.Fetch(ctx, photo.RemoteURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch photo content: %w", err)
		}
		data = fetched
	}

	analysis, err := p.classifier.Classify(ctx, classify.Request{
		Data:      data,
		MediaType: mediaType,
		Name:      photo.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	return analysis, nil
}
