package catalog

import "time"

// Category distinguishes standalone movies from episodic series.
type Category string

const (
	CategoryMovie  Category = "movie"
	CategorySeries Category = "series"
)

// Numeric category identifiers used by the listing API.
const (
	CategoryIDMovie  int64 = 1
	CategoryIDSeries int64 = 2
)

// CategoryFromID maps a numeric category identifier to a Category.
func CategoryFromID(id int64) (Category, bool) {
	switch id {
	case CategoryIDMovie:
		return CategoryMovie, true
	case CategoryIDSeries:
		return CategorySeries, true
	default:
		return "", false
	}
}

// ID returns the numeric identifier for the category.
func (c Category) ID() int64 {
	if c == CategorySeries {
		return CategoryIDSeries
	}
	return CategoryIDMovie
}

// MediaItem is a catalog row for a movie or a single series episode.
// Asset key fields hold object storage keys; the empty string means the
// asset has not been uploaded yet. Keys are never exposed to clients
// directly, only through freshly minted presigned URLs.
type MediaItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	DurationMinutes int       `json:"duration_in_minutes"`
	ReleaseDate     time.Time `json:"release_date"`
	Active          bool      `json:"active"`

	// Present only for series episodes.
	SeasonNumber  *int `json:"season_number,omitempty"`
	EpisodeNumber *int `json:"episode_number,omitempty"`

	VideoKey480p  string `json:"-"`
	VideoKey720p  string `json:"-"`
	VideoKey1080p string `json:"-"`
	AudioKeyEn    string `json:"-"`
	AudioKeyEs    string `json:"-"`
	SubtitleKeyEn string `json:"-"`
	SubtitleKeyEs string `json:"-"`
	BannerKey     string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSeries reports whether the item belongs to an episodic series.
func (m *MediaItem) IsSeries() bool {
	return m.Category == CategorySeries
}

// SeasonGroup holds one season's episodes, sorted by episode number.
type SeasonGroup struct {
	Season   int         `json:"season"`
	Episodes []MediaItem `json:"episodes"`
}
