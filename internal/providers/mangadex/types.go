package mangadex

// --- Common Types ---
type MultiLingualString map[string]string

func (mls MultiLingualString) Get(lang string) string {
	if val, ok := mls[lang]; ok {
		return val
	}
	return ""
}

// --- Manga Search Types ---
type MangaListResponse struct {
	Data []MangaData `json:"data"`
}
type MangaData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes MangaAttributes `json:"attributes"`
}
type MangaAttributes struct {
	Title     MultiLingualString   `json:"title"`
	AltTitles []MultiLingualString `json:"altTitles"`
}

// --- Cover Art Types ---
type CoverListResponse struct {
	Data []CoverData `json:"data"`
}
type CoverResponse struct {
	Data CoverData `json:"data"`
}
type CoverData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes CoverAttributes `json:"attributes"`
}
type CoverAttributes struct {
	Volume   string `json:"volume"`
	FileName string `json:"fileName"`
}
