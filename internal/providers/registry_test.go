package providers

import (
	"testing"

	"mangabatch/internal/models"

	"mangabatch/internal/providers/mockdex"
)

// resetRegistry is a helper to ensure a clean state for each test run.
func resetRegistry() {
	registry = make(map[string]models.CoverProvider)
}

func TestProviderRegistry(t *testing.T) {
	resetRegistry()
	Register(mockdex.New())

	t.Run("All Providers", func(t *testing.T) {
		all := All()
		if len(all) != 1 {
			t.Fatalf("Expected 1 provider, got %d", len(all))
		}
		if all[0].ID != "mockdex" {
			t.Errorf("Expected provider ID 'mockdex', got '%s'", all[0].ID)
		}
	})

	t.Run("Get Existing Provider", func(t *testing.T) {
		p, ok := Get("mockdex")
		if !ok {
			t.Fatal("Expected to find provider 'mockdex', but it was not found")
		}
		if p.GetInfo().Name != "Mockdex" {
			t.Errorf("Expected provider name 'Mockdex', got '%s'", p.GetInfo().Name)
		}
	})

	t.Run("Get Non-existent Provider", func(t *testing.T) {
		_, ok := Get("nonexistent")
		if ok {
			t.Fatal("Expected not to find provider 'nonexistent', but it was found")
		}
	})

	t.Run("Ordered resolves the configured cascade", func(t *testing.T) {
		ordered, err := Ordered([]string{"mockdex"})
		if err != nil {
			t.Fatalf("Ordered() failed: %v", err)
		}
		if len(ordered) != 1 || ordered[0].GetInfo().ID != "mockdex" {
			t.Errorf("Ordered() returned the wrong providers: %v", ordered)
		}
	})

	t.Run("Ordered rejects unknown IDs", func(t *testing.T) {
		_, err := Ordered([]string{"mockdex", "typo"})
		if err == nil {
			t.Error("Expected an error for an unknown provider ID, but got nil")
		}
	})

	t.Run("Panic on Duplicate Registration", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected registration of a duplicate provider to panic, but it did not")
			}
		}()
		// This should cause a panic
		Register(mockdex.New())
	})
}
