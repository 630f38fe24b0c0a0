// Package importer simulates a cloud photo provider: it hands out batches
// of photo stubs and fetches remote byte content for the pipeline.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jamo/photo-gallery/internal/ingest"
)

// Service produces import batches. The simulated implementation stands in
// for a real cloud provider and its picker/OAuth flow.
type Service interface {
	ImportBatch(ctx context.Context) ([]ingest.Stub, error)
}

// Simulated returns a fixed batch after an artificial delay. The dataset
// intentionally contains two exact-duplicate pairs so duplicate review has
// something to show.
type Simulated struct {
	// Latency imitates the provider round trip. Zero means no delay.
	Latency time.Duration
}

func NewSimulated() *Simulated {
	return &Simulated{Latency: 1500 * time.Millisecond}
}

func (s *Simulated) ImportBatch(ctx context.Context) ([]ingest.Stub, error) {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return seedBatch(), nil
}

func seedBatch() []ingest.Stub {
	return []ingest.Stub{
		{
			Name:      "Vacation_Mountain.jpg",
			RemoteURL: "https://picsum.photos/id/10/800/800",
			ByteSize:  240500,
			TakenAt:   time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			// Exact duplicate of the photo above.
			Name:      "Copy of Vacation_Mountain.jpg",
			RemoteURL: "https://picsum.photos/id/10/800/800",
			ByteSize:  240500,
			TakenAt:   time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			Name:      "Family_Picnic.jpg",
			RemoteURL: "https://picsum.photos/id/28/800/800",
			ByteSize:  180200,
			TakenAt:   time.Date(2023, 7, 20, 14, 15, 0, 0, time.UTC),
		},
		{
			// Exact duplicate of the photo above.
			Name:      "Family_Picnic (1).jpg",
			RemoteURL: "https://picsum.photos/id/28/800/800",
			ByteSize:  180200,
			TakenAt:   time.Date(2023, 7, 20, 14, 15, 0, 0, time.UTC),
		},
		{
			Name:      "Office_Setup.jpg",
			RemoteURL: "https://picsum.photos/id/1/800/800",
			ByteSize:  305000,
			TakenAt:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			Name:      "Project_Blueprints.jpg",
			RemoteURL: "https://picsum.photos/id/60/800/800",
			ByteSize:  410000,
			TakenAt:   time.Date(2024, 2, 5, 16, 45, 0, 0, time.UTC),
		},
		{
			Name:      "Coffee_Break.jpg",
			RemoteURL: "https://picsum.photos/id/42/800/800",
			ByteSize:  150000,
			TakenAt:   time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC),
		},
	}
}

// Manifest fetches an import batch from a provider endpoint serving a JSON
// array of stubs.
type Manifest struct {
	url    string
	client *http.Client
}

func NewManifest(url string) *Manifest {
	return &Manifest{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *Manifest) ImportBatch(ctx context.Context) ([]ingest.Stub, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("import request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var stubs []ingest.Stub
	if err := json.NewDecoder(resp.Body).Decode(&stubs); err != nil {
		return nil, fmt.Errorf("failed to decode import manifest: %w", err)
	}

	return stubs, nil
}

// Fetcher retrieves byte content from a remote locator.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches photo bytes over HTTP. A non-success status is an
// error; the caller treats it as an analysis failure for that photo only.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: 30 * time.Second}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo content: %w", err)
	}

	return data, nil
}
