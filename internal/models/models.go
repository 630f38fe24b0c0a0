package models

import "time"

// PhotoOrigin identifies where a photo entered the library from.
type PhotoOrigin string

const (
	OriginLocal    PhotoOrigin = "local"
	OriginImported PhotoOrigin = "imported"
)

// AnalysisState tracks a photo's progress through classification.
// Transitions: pending -> analyzing -> done | failed. Failed is terminal.
type AnalysisState string

const (
	StatePending   AnalysisState = "pending"
	StateAnalyzing AnalysisState = "analyzing"
	StateDone      AnalysisState = "done"
	StateFailed    AnalysisState = "failed"
)

// Season is the classifier's coarse season/context guess.
type Season string

const (
	SeasonSpring  Season = "Spring"
	SeasonSummer  Season = "Summer"
	SeasonAutumn  Season = "Autumn"
	SeasonWinter  Season = "Winter"
	SeasonIndoor  Season = "Indoor"
	SeasonUnknown Season = "Unknown"
)

// Analysis is the classifier's result for one photo.
type Analysis struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
	Season   Season   `json:"season,omitempty"`
}

// Photo represents one ingested image.
type Photo struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CapturedAt time.Time     `json:"captured_at"`
	ByteSize   int64         `json:"byte_size"`
	Origin     PhotoOrigin   `json:"origin"`
	State      AnalysisState `json:"state"`
	Analysis   *Analysis     `json:"analysis,omitempty"`

	// Exactly one of these is set, depending on Origin. Content holds the
	// raw upload bytes for local photos; RemoteURL locates imported ones.
	Content   []byte `json:"-"`
	RemoteURL string `json:"remote_url,omitempty"`

	// MediaType is the declared MIME type of the upload, empty for imports.
	MediaType string `json:"media_type,omitempty"`

	// DisplayURL is where a renderer can fetch the image from.
	DisplayURL string `json:"display_url,omitempty"`
}

// AlbumKind distinguishes date buckets from content-category buckets.
type AlbumKind string

const (
	AlbumDate    AlbumKind = "date"
	AlbumContent AlbumKind = "content"
)

// Album is a virtual album derived from the photo collection. Membership is
// a predicate over the live collection, encoded as a tagged bucket key
// rather than a closure so albums stay comparable and serializable.
type Album struct {
	ID    string    `json:"id"`
	Kind  AlbumKind `json:"kind"`
	Title string    `json:"title"`
	Count int       `json:"count"`

	// Bucket key: a month-year label for date albums, a category for
	// content albums. Evaluated by Contains at read time.
	DateKey  string `json:"date_key,omitempty"`
	Category string `json:"category,omitempty"`
}

// MonthYear formats a timestamp as the date-album bucket label.
func MonthYear(t time.Time) string {
	return t.Format("January 2006")
}

// Contains reports whether the photo currently satisfies the album's
// membership predicate.
func (a Album) Contains(p Photo) bool {
	switch a.Kind {
	case AlbumDate:
		return MonthYear(p.CapturedAt) == a.DateKey
	case AlbumContent:
		return p.State == StateDone && p.Analysis != nil && p.Analysis.Category == a.Category
	default:
		return false
	}
}

// DuplicateGroup is a set of photos sharing an exact fingerprint.
// Derived from the collection on demand, never stored.
type DuplicateGroup struct {
	ID     string  `json:"id"`
	Key    string  `json:"key"`
	Photos []Photo `json:"photos"`
}
