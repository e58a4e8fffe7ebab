// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// DefaultFontPaths is the ranked list of display faces tried when
// fonts.paths is not configured. The first path that exists and parses
// wins.
var DefaultFontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial Black.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Impact.ttf",
	"/System/Library/Fonts/Supplemental/Helvetica Bold.ttf",
	"/Library/Fonts/Arial Black.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Batch struct {
		Size int `mapstructure:"size"`
	} `mapstructure:"batch"`
	Providers struct {
		Order        []string `mapstructure:"order"`
		MangadexSize int      `mapstructure:"mangadex_size"` // 0 (full), 256 or 512
	} `mapstructure:"providers"`
	HTTP struct {
		Timeout         int    `mapstructure:"timeout"`          // seconds, API calls
		DownloadTimeout int    `mapstructure:"download_timeout"` // seconds, image downloads
		UserAgent       string `mapstructure:"user_agent"`
	} `mapstructure:"http"`
	Fonts struct {
		Paths []string `mapstructure:"paths"`
	} `mapstructure:"fonts"`
	Render struct {
		Margin  float64 `mapstructure:"margin"`
		Scale   float64 `mapstructure:"scale"`
		Opacity int     `mapstructure:"opacity"`
		Quality int     `mapstructure:"quality"`
		MaxEdge int     `mapstructure:"max_edge"` // 0 keeps covers full size
	} `mapstructure:"render"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct. A missing
// file is fine; defaults and environment overrides still apply.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory
	return load()
}

// LoadFile reads configuration from an explicit file path, for the
// --config flag.
func LoadFile(path string) (*Config, error) {
	viper.SetConfigFile(path)
	return load()
}

func load() (*Config, error) {
	// --- Environment Variable Overrides ---
	// This tells Viper to look for environment variables with a "MANGABATCH_"
	// prefix. e.g., MANGABATCH_BATCH_SIZE will override the `batch.size` key.
	viper.SetEnvPrefix("MANGABATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("batch.size", 20)
	viper.SetDefault("providers.order", []string{"mangadex", "anilist", "kitsu"})
	viper.SetDefault("providers.mangadex_size", 0)
	viper.SetDefault("http.timeout", 20)
	viper.SetDefault("http.download_timeout", 30)
	viper.SetDefault("http.user_agent", "mangabatch/1.0 (+https://example.invalid)")
	viper.SetDefault("fonts.paths", DefaultFontPaths)
	viper.SetDefault("render.margin", 0.06)
	viper.SetDefault("render.scale", 0.90)
	viper.SetDefault("render.opacity", 255)
	viper.SetDefault("render.quality", 95)
	viper.SetDefault("render.max_edge", 0)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
