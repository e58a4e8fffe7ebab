// MangaDex is the first-priority cover source. Finding a cover takes up
// to three API calls: search the title, list the manga's cover art in
// creation order, then fetch the chosen cover's file name. Only a cover
// explicitly tagged as volume 1 is accepted.

package mangadex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"mangabatch/internal/models"
	"mangabatch/internal/providers"
	"mangabatch/internal/util"
)

// intVolumeRE accepts "1", "01" and "1.0" style volume labels.
var intVolumeRE = regexp.MustCompile(`^\s*0*(\d+)(?:\.0+)?\s*$`)

// Provider implements the CoverProvider interface for MangaDex.
type Provider struct {
	client          *http.Client
	limiter         *rate.Limiter
	apiBaseURL      string
	coverArtBaseURL string
	userAgent       string
	thumbSize       int
}

// Options configures a MangaDex provider. Zero values fall back to the
// production endpoints and defaults.
type Options struct {
	APIBaseURL      string
	CoverArtBaseURL string
	UserAgent       string
	Timeout         time.Duration
	ThumbSize       int // 0 (full size), 256 or 512
}

// New creates a new instance of the MangaDex provider.
func New(opts Options) *Provider {
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = "https://api.mangadex.org"
	}
	if opts.CoverArtBaseURL == "" {
		opts.CoverArtBaseURL = "https://uploads.mangadex.org"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "mangabatch/1.0 (+https://example.invalid)"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Provider{
		client: &http.Client{Timeout: opts.Timeout},
		// The public API allows 5 requests per second.
		limiter:         rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		apiBaseURL:      opts.APIBaseURL,
		coverArtBaseURL: opts.CoverArtBaseURL,
		userAgent:       opts.UserAgent,
		thumbSize:       opts.ThumbSize,
	}
}

// GetInfo returns static information about this provider.
func (p *Provider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "mangadex",
		Name: "MangaDex",
	}
}

// FindCover searches MangaDex for the title and returns the URL of the
// best match's volume-1 cover, or nil when there is no usable match.
func (p *Provider) FindCover(title string) (*models.CoverResult, error) {
	items, err := p.searchManga(title)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	queryLower := strings.ToLower(strings.TrimSpace(title))
	queryNorm := util.NormalizeTitle(queryLower)
	sort.SliceStable(items, func(i, j int) bool {
		return scoreCandidate(items[i], queryLower, queryNorm) > scoreCandidate(items[j], queryLower, queryNorm)
	})

	mangaID := items[0].ID
	if mangaID == "" {
		return nil, nil
	}

	// A failed cover listing is treated as "no volume-1 cover", not as a
	// provider error; the next provider gets its chance.
	coverID := p.firstVolumeCoverID(mangaID)
	if coverID == "" {
		return nil, nil
	}

	fileName, err := p.coverFileName(coverID)
	if err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, nil
	}

	coverURL := fmt.Sprintf("%s/covers/%s/%s", p.coverArtBaseURL, mangaID, fileName)
	switch p.thumbSize {
	case 512:
		coverURL += ".512.jpg"
	case 256:
		coverURL += ".256.jpg"
	}

	return &models.CoverResult{Source: "mangadex", URL: coverURL}, nil
}

func (p *Provider) searchManga(title string) ([]MangaData, error) {
	if err := p.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	var resp MangaListResponse
	params := url.Values{}
	params.Set("title", title)
	params.Set("limit", "5")
	if err := providers.GetJSON(p.client, p.apiBaseURL+"/manga", p.userAgent, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// firstVolumeCoverID lists the manga's covers oldest-first and returns
// the ID of the first one tagged volume 1, or "" if there is none.
func (p *Provider) firstVolumeCoverID(mangaID string) string {
	if err := p.limiter.Wait(context.Background()); err != nil {
		return ""
	}

	var resp CoverListResponse
	params := url.Values{}
	params.Set("manga[]", mangaID)
	params.Set("limit", "100")
	params.Set("order[createdAt]", "asc")
	if err := providers.GetJSON(p.client, p.apiBaseURL+"/cover", p.userAgent, params, &resp); err != nil {
		return ""
	}

	for _, cover := range resp.Data {
		if vol, ok := parseIntVolume(cover.Attributes.Volume); ok && vol == 1 {
			return cover.ID
		}
	}
	return ""
}

func (p *Provider) coverFileName(coverID string) (string, error) {
	if err := p.limiter.Wait(context.Background()); err != nil {
		return "", err
	}

	var resp CoverResponse
	if err := providers.GetJSON(p.client, p.apiBaseURL+"/cover/"+coverID, p.userAgent, nil, &resp); err != nil {
		return "", err
	}
	return resp.Data.Attributes.FileName, nil
}

// bestTitle prefers the English title and falls back to any other.
func bestTitle(attrs MangaAttributes) string {
	if en := attrs.Title.Get("en"); en != "" {
		return en
	}
	for _, t := range attrs.Title {
		return t
	}
	return ""
}

// scoreCandidate ranks a search result against the query. Normalized
// matches outrank exact lowercase matches, which outrank substring
// matches; alt titles always rank below the main title at the same tier.
func scoreCandidate(item MangaData, queryLower, queryNorm string) int {
	main := strings.ToLower(strings.TrimSpace(bestTitle(item.Attributes)))
	mainNorm := util.NormalizeTitle(main)

	var alts, altNorms []string
	for _, alt := range item.Attributes.AltTitles {
		for _, text := range alt {
			lowered := strings.ToLower(strings.TrimSpace(text))
			alts = append(alts, lowered)
			altNorms = append(altNorms, util.NormalizeTitle(lowered))
		}
	}

	contains := func(values []string, want string) bool {
		for _, v := range values {
			if v == want {
				return true
			}
		}
		return false
	}

	switch {
	case mainNorm == queryNorm:
		return 6
	case contains(altNorms, queryNorm):
		return 5
	case main == queryLower:
		return 4
	case contains(alts, queryLower):
		return 3
	case strings.Contains(main, queryLower):
		return 2
	}
	return 1
}

func parseIntVolume(vol string) (int, bool) {
	caps := intVolumeRE.FindStringSubmatch(vol)
	if caps == nil {
		return 0, false
	}
	n, err := strconv.Atoi(caps[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
