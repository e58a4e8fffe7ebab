// A mock provider for development and testing purposes. It simulates a
// cover lookup without making network calls, and can be told to fail or
// miss so the resolver cascade can be exercised offline.
package mockdex

import (
	"mangabatch/internal/models"
)

type Provider struct {
	// CoverURL is returned for every title. The zero value serves a
	// placeholder image URL.
	CoverURL string
	// NoMatch makes every lookup return no result.
	NoMatch bool
	// Err makes every lookup fail.
	Err error
}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "mockdex",
		Name: "Mockdex",
	}
}

func (p *Provider) FindCover(title string) (*models.CoverResult, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if p.NoMatch {
		return nil, nil
	}
	coverURL := p.CoverURL
	if coverURL == "" {
		coverURL = "https://placehold.co/1000x1500/2a2a2a/f0f0f0.jpg?text=Cover"
	}
	return &models.CoverResult{Source: "mockdex", URL: coverURL}, nil
}
