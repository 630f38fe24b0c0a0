package classify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jamo/photo-gallery/internal/models"
)

// Remote calls an external vision service over HTTP. The service receives
// the image bytes and answers with a category, tags, a one-line summary,
// and a season guess.
type Remote struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemote(baseURL, apiKey string) *Remote {
	return &Remote{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type classifyRequest struct {
	Image     string `json:"image"`
	MediaType string `json:"media_type"`
	Filename  string `json:"filename,omitempty"`
}

type classifyResponse struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
	Season   string   `json:"season"`
}

// Classify sends the image to the vision endpoint. A non-2xx status, an
// undecodable body, or a response without a category all count as failure.
func (r *Remote) Classify(ctx context.Context, req Request) (*models.Analysis, error) {
	endpoint := fmt.Sprintf("%s/v1/classify", r.baseURL)

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = DefaultMediaType
	}

	jsonBody, err := json.Marshal(classifyRequest{
		Image:     base64.StdEncoding.EncodeToString(req.Data),
		MediaType: mediaType,
		Filename:  req.Name,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("x-api-key", r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classify request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode classify response: %w", err)
	}

	if response.Category == "" {
		return nil, fmt.Errorf("classify response missing category")
	}

	season := models.Season(response.Season)
	switch season {
	case models.SeasonSpring, models.SeasonSummer, models.SeasonAutumn,
		models.SeasonWinter, models.SeasonIndoor:
	default:
		season = models.SeasonUnknown
	}

	return &models.Analysis{
		Category: response.Category,
		Tags:     response.Tags,
		Summary:  response.Summary,
		Season:   season,
	}, nil
}
