package main

import (
	"strings"
	"sync"
	"time"

	"mangabatch/internal/config"
	"mangabatch/internal/cover"
	"mangabatch/internal/organizer"
	"mangabatch/internal/providers"
	"mangabatch/internal/providers/anilist"
	"mangabatch/internal/providers/kitsu"
	"mangabatch/internal/providers/mangadex"
	"mangabatch/internal/render"
)

// registerOnce keeps provider registration process-wide; the registry
// panics on duplicate IDs.
var registerOnce sync.Once

type commandContext struct {
	configFlag *string

	buildOnce sync.Once
	cfg       *config.Config
	org       *organizer.Organizer
	buildErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) loadConfig() (*config.Config, error) {
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// organizer builds the full pipeline from configuration on first use:
// registered providers in priority order, font locator, renderer,
// cover resolver and writer.
func (c *commandContext) organizer() (*organizer.Organizer, error) {
	c.buildOnce.Do(func() {
		cfg, err := c.loadConfig()
		if err != nil {
			c.buildErr = err
			return
		}
		c.cfg = cfg

		registerOnce.Do(func() {
			timeout := time.Duration(cfg.HTTP.Timeout) * time.Second
			providers.Register(mangadex.New(mangadex.Options{
				UserAgent: cfg.HTTP.UserAgent,
				Timeout:   timeout,
				ThumbSize: cfg.Providers.MangadexSize,
			}))
			providers.Register(anilist.New(anilist.Options{
				UserAgent: cfg.HTTP.UserAgent,
				Timeout:   timeout,
			}))
			providers.Register(kitsu.New(kitsu.Options{
				UserAgent: cfg.HTTP.UserAgent,
				Timeout:   timeout,
			}))
		})

		ordered, err := providers.Ordered(cfg.Providers.Order)
		if err != nil {
			c.buildErr = err
			return
		}

		renderer := render.New(render.NewLocator(cfg.Fonts.Paths))
		renderer.MarginFrac = cfg.Render.Margin
		renderer.Scale = cfg.Render.Scale
		renderer.Opacity = uint8(cfg.Render.Opacity)
		renderer.Quality = cfg.Render.Quality
		renderer.MaxEdge = cfg.Render.MaxEdge

		resolver := cover.NewResolver(ordered)
		resolver.UserAgent = cfg.HTTP.UserAgent
		resolver.DownloadTimeout = time.Duration(cfg.HTTP.DownloadTimeout) * time.Second
		resolver.Quality = cfg.Render.Quality

		c.org = organizer.New(resolver, cover.NewWriter(renderer), cfg.Batch.Size)
	})
	return c.org, c.buildErr
}
