package providers

import (
	"fmt"

	"mangabatch/internal/models"
)

var registry = make(map[string]models.CoverProvider)

// Register adds a new provider to the registry. It's called at startup.
func Register(p models.CoverProvider) {
	info := p.GetInfo()
	if _, exists := registry[info.ID]; exists {
		// Panic is appropriate here as it's a developer error during setup.
		panic(fmt.Sprintf("provider with ID '%s' is already registered", info.ID))
	}
	registry[info.ID] = p
}

// Get returns a provider by its ID.
func Get(id string) (models.CoverProvider, bool) {
	p, ok := registry[id]
	return p, ok
}

// All returns information for every registered provider.
func All() []models.ProviderInfo {
	var infos []models.ProviderInfo
	for _, p := range registry {
		infos = append(infos, p.GetInfo())
	}
	return infos
}

// Ordered resolves a configured priority list of provider IDs into
// provider instances. An unknown ID is a configuration error.
func Ordered(ids []string) ([]models.CoverProvider, error) {
	ordered := make([]models.CoverProvider, 0, len(ids))
	for _, id := range ids {
		p, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q in provider order", id)
		}
		ordered = append(ordered, p)
	}
	return ordered, nil
}
