package models

// ProviderInfo contains static information about a provider.
type ProviderInfo struct {
	ID   string
	Name string
}

// CoverResult is a cover image located by a remote provider.
type CoverResult struct {
	Source string // provider ID the cover came from
	URL    string
}

// CoverProvider defines the contract that every metadata site connector
// must implement. FindCover returns (nil, nil) when the provider has no
// match for the title; an error means the lookup itself failed.
type CoverProvider interface {
	GetInfo() ProviderInfo
	FindCover(title string) (*CoverResult, error)
}
