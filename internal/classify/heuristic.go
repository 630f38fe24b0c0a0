package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jamo/photo-gallery/internal/models"
)

// categoryPatterns maps filename keywords to category names, checked in
// order; the first match wins.
var categoryPatterns = []struct {
	pattern  *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)(screenshot|screen|capture)`), "Screenshots"},
	{regexp.MustCompile(`(?i)(photo|img|pic|image)`), "Photos"},
	{regexp.MustCompile(`(?i)(document|doc|scan|pdf)`), "Documents"},
	{regexp.MustCompile(`(?i)(download|dwnld)`), "Downloads"},
	{regexp.MustCompile(`(?i)(selfie|portrait)`), "Selfies"},
	{regexp.MustCompile(`(?i)(vacation|travel|trip)`), "Travel"},
	{regexp.MustCompile(`(?i)(food|meal|recipe)`), "Food"},
	{regexp.MustCompile(`(?i)(pet|dog|cat)`), "Pets"},
}

var (
	datedPattern      = regexp.MustCompile(`\d{8}`)
	screenshotPattern = regexp.MustCompile(`(?i)screenshot`)
	travelPattern     = regexp.MustCompile(`(?i)(vacation|travel)`)
	portraitPattern   = regexp.MustCompile(`(?i)(selfie|portrait)`)
)

// Heuristic classifies photos by filename keyword matching. It never fails
// and never looks at the image bytes, which makes it the offline fallback
// mode when no vision service is configured.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Classify(_ context.Context, req Request) (*models.Analysis, error) {
	category := CategoryForName(req.Name)
	return &models.Analysis{
		Category: category,
		Tags:     tagsForName(req.Name),
		Summary:  fmt.Sprintf("%s - %s", category, req.Name),
		Season:   models.SeasonUnknown,
	}, nil
}

// CategoryForName returns the category a filename's keywords suggest,
// defaulting to "Photos".
func CategoryForName(name string) string {
	lower := strings.ToLower(name)
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(lower) {
			return cp.category
		}
	}
	return "Photos"
}

func tagsForName(name string) []string {
	var tags []string
	if screenshotPattern.MatchString(name) {
		tags = append(tags, "screenshot")
	}
	if datedPattern.MatchString(name) {
		tags = append(tags, "dated")
	}
	if travelPattern.MatchString(name) {
		tags = append(tags, "travel")
	}
	if portraitPattern.MatchString(name) {
		tags = append(tags, "portrait")
	}
	if len(tags) == 0 {
		tags = []string{"photo"}
	}
	return tags
}
