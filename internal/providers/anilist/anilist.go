// AniList is the second-priority cover source. A single GraphQL query
// returns the best-matching manga and its cover image variants.

package anilist

import (
	"net/http"
	"time"

	"mangabatch/internal/models"
	"mangabatch/internal/providers"
)

const searchQuery = `
query ($search: String) {
  Media(search: $search, type: MANGA) {
    id
    coverImage { extraLarge large }
  }
}
`

// Provider implements the CoverProvider interface for AniList.
type Provider struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

// Options configures an AniList provider. Zero values fall back to the
// production endpoint and defaults.
type Options struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
}

// New creates a new instance of the AniList provider.
func New(opts Options) *Provider {
	if opts.Endpoint == "" {
		opts.Endpoint = "https://graphql.anilist.co"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "mangabatch/1.0 (+https://example.invalid)"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Provider{
		client:    &http.Client{Timeout: opts.Timeout},
		endpoint:  opts.Endpoint,
		userAgent: opts.UserAgent,
	}
}

// GetInfo returns static information about this provider.
func (p *Provider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "anilist",
		Name: "AniList",
	}
}

type searchPayload struct {
	Query     string `json:"query"`
	Variables struct {
		Search string `json:"search"`
	} `json:"variables"`
}

type searchResponse struct {
	Data struct {
		Media *struct {
			ID         int `json:"id"`
			CoverImage struct {
				ExtraLarge string `json:"extraLarge"`
				Large      string `json:"large"`
			} `json:"coverImage"`
		} `json:"Media"`
	} `json:"data"`
}

// FindCover queries AniList for the title and returns the largest cover
// image available, or nil when nothing matches.
func (p *Provider) FindCover(title string) (*models.CoverResult, error) {
	payload := searchPayload{Query: searchQuery}
	payload.Variables.Search = title

	var resp searchResponse
	if err := providers.PostJSON(p.client, p.endpoint, p.userAgent, payload, &resp); err != nil {
		return nil, err
	}

	media := resp.Data.Media
	if media == nil {
		return nil, nil
	}

	coverURL := media.CoverImage.ExtraLarge
	if coverURL == "" {
		coverURL = media.CoverImage.Large
	}
	if coverURL == "" {
		return nil, nil
	}

	return &models.CoverResult{Source: "anilist", URL: coverURL}, nil
}
