// This test file verifies the configuration loading logic using Viper.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults when no config file", func(t *testing.T) {
		// Ensure no config file exists for this test
		os.Remove("config.yml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		// Check if default values are set
		if cfg.Batch.Size != 20 {
			t.Errorf("Expected default batch size 20, got %d", cfg.Batch.Size)
		}
		if len(cfg.Providers.Order) != 3 || cfg.Providers.Order[0] != "mangadex" {
			t.Errorf("Expected default provider order [mangadex anilist kitsu], got %v", cfg.Providers.Order)
		}
		if cfg.HTTP.Timeout != 20 {
			t.Errorf("Expected default http timeout 20, got %d", cfg.HTTP.Timeout)
		}
		if cfg.Render.Quality != 95 {
			t.Errorf("Expected default render quality 95, got %d", cfg.Render.Quality)
		}
		if cfg.Render.Margin != 0.06 {
			t.Errorf("Expected default render margin 0.06, got %f", cfg.Render.Margin)
		}
		if len(cfg.Fonts.Paths) == 0 {
			t.Error("Expected default font paths to be populated")
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		// Create a temporary config file for this test
		configContent := `
batch:
  size: 10
providers:
  order: ["kitsu"]
  mangadex_size: 512
render:
  quality: 80
unknown_setting: "should be ignored"
`
		// Create the config file in the current directory so Viper can find it.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		// Clean up the file after the test
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		// Check if values from the file were loaded
		if cfg.Batch.Size != 10 {
			t.Errorf("Expected batch size 10, got %d", cfg.Batch.Size)
		}
		if len(cfg.Providers.Order) != 1 || cfg.Providers.Order[0] != "kitsu" {
			t.Errorf("Expected provider order [kitsu], got %v", cfg.Providers.Order)
		}
		if cfg.Providers.MangadexSize != 512 {
			t.Errorf("Expected mangadex size 512, got %d", cfg.Providers.MangadexSize)
		}
		if cfg.Render.Quality != 80 {
			t.Errorf("Expected render quality 80, got %d", cfg.Render.Quality)
		}
		// Untouched keys keep their defaults
		if cfg.HTTP.DownloadTimeout != 30 {
			t.Errorf("Expected default download timeout of 30, got %d", cfg.HTTP.DownloadTimeout)
		}
	})

	t.Run("Environment variable override", func(t *testing.T) {
		os.Remove("config.yml")
		t.Setenv("MANGABATCH_BATCH_SIZE", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}
		if cfg.Batch.Size != 5 {
			t.Errorf("Expected batch size 5 from environment, got %d", cfg.Batch.Size)
		}
	})

	t.Run("Explicit config path", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "other.yml")
		if err := os.WriteFile(configPath, []byte("batch:\n  size: 7\n"), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}

		cfg, err := LoadFile(configPath)
		if err != nil {
			t.Fatalf("LoadFile() returned an error: %v", err)
		}
		if cfg.Batch.Size != 7 {
			t.Errorf("Expected batch size 7, got %d", cfg.Batch.Size)
		}
	})
}
