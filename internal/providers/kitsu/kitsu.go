// Kitsu is the last-priority cover source: a plain text search, taking
// the first result's largest available cover image.

package kitsu

import (
	"net/http"
	"net/url"
	"time"

	"mangabatch/internal/models"
	"mangabatch/internal/providers"
)

// Provider implements the CoverProvider interface for Kitsu.
type Provider struct {
	client     *http.Client
	apiBaseURL string
	userAgent  string
}

// Options configures a Kitsu provider. Zero values fall back to the
// production endpoint and defaults.
type Options struct {
	APIBaseURL string
	UserAgent  string
	Timeout    time.Duration
}

// New creates a new instance of the Kitsu provider.
func New(opts Options) *Provider {
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = "https://kitsu.io/api/edge"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "mangabatch/1.0 (+https://example.invalid)"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Provider{
		client:     &http.Client{Timeout: opts.Timeout},
		apiBaseURL: opts.APIBaseURL,
		userAgent:  opts.UserAgent,
	}
}

// GetInfo returns static information about this provider.
func (p *Provider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "kitsu",
		Name: "Kitsu",
	}
}

type mangaListResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			CoverImage *struct {
				Original string `json:"original"`
				Large    string `json:"large"`
				Small    string `json:"small"`
				Tiny     string `json:"tiny"`
			} `json:"coverImage"`
		} `json:"attributes"`
	} `json:"data"`
}

// FindCover searches Kitsu for the title and returns the first result's
// cover image, largest variant first, or nil when nothing matches.
func (p *Provider) FindCover(title string) (*models.CoverResult, error) {
	var resp mangaListResponse
	params := url.Values{}
	params.Set("filter[text]", title)
	params.Set("page[limit]", "5")
	if err := providers.GetJSON(p.client, p.apiBaseURL+"/manga", p.userAgent, params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, nil
	}

	cover := resp.Data[0].Attributes.CoverImage
	if cover == nil {
		return nil, nil
	}

	for _, candidate := range []string{cover.Original, cover.Large, cover.Small, cover.Tiny} {
		if candidate != "" {
			return &models.CoverResult{Source: "kitsu", URL: candidate}, nil
		}
	}
	return nil, nil
}
