// Package classify assigns a category, tags, and a summary to photo content.
// Two implementations exist: a deterministic filename-based classifier and a
// client for a remote vision service.
package classify

import (
	"context"

	"github.com/jamo/photo-gallery/internal/models"
)

// Request carries everything a classifier may look at for one photo.
type Request struct {
	// Data is the raw image content.
	Data []byte
	// MediaType is the declared MIME type; classifiers fall back to a
	// generic image type when it is empty.
	MediaType string
	// Name is the original filename.
	Name string
}

// DefaultMediaType is assumed when an upload does not declare one.
const DefaultMediaType = "image/jpeg"

// Classifier produces an analysis for one photo or fails. A response that
// cannot be interpreted as a well-formed analysis is a failure, never a
// partial result.
type Classifier interface {
	Classify(ctx context.Context, req Request) (*models.Analysis, error)
}
