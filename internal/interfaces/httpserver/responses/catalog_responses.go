package responses

import (
	"time"

	"streamvault/catalog-api/internal/domain/assets"
	"streamvault/catalog-api/internal/domain/catalog"
)

// MediaItemResponse is the public view of a catalog row. Storage keys never
// appear here; the only asset surfaced on catalog reads is a signed banner
// URL, empty while the banner is still uploading.
type MediaItemResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_in_minutes"`
	ReleaseDate     time.Time `json:"release_date"`
	Active          bool      `json:"active"`
	SeasonNumber    *int      `json:"season_number,omitempty"`
	EpisodeNumber   *int      `json:"episode_number,omitempty"`
	BannerURL       string    `json:"banner_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BuildMediaItemResponse creates a response from a catalog item.
func BuildMediaItemResponse(item *catalog.MediaItem, bannerURL string) *MediaItemResponse {
	return &MediaItemResponse{
		ID:              item.ID,
		Title:           item.Title,
		Description:     item.Description,
		Category:        string(item.Category),
		DurationMinutes: item.DurationMinutes,
		ReleaseDate:     item.ReleaseDate,
		Active:          item.Active,
		SeasonNumber:    item.SeasonNumber,
		EpisodeNumber:   item.EpisodeNumber,
		BannerURL:       bannerURL,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// SeasonGroupResponse holds one season's episodes.
type SeasonGroupResponse struct {
	Season   int                 `json:"season"`
	Episodes []MediaItemResponse `json:"episodes"`
}

// PlaybackResponse carries a freshly signed playback URL.
type PlaybackResponse struct {
	ID        string `json:"id"`
	Quality   string `json:"quality"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// AssetBundleResponse carries signed URLs for the item's secondary assets.
// Nil entries mean the asset has not finished uploading.
type AssetBundleResponse struct {
	ID     string         `json:"id"`
	Assets *assets.Bundle `json:"assets"`
}

// UploadAcceptedResponse acknowledges a submission whose asset transfer
// continues in the background.
type UploadAcceptedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
