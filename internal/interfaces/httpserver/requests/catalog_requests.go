package requests

import (
	"time"

	"streamvault/catalog-api/internal/domain/catalog"
)

// CreateMediaRequest is the JSON metadata part of a multipart submission.
type CreateMediaRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	Category        string    `json:"category" binding:"required,oneof=movie series"`
	DurationMinutes int       `json:"duration_in_minutes"`
	ReleaseDate     time.Time `json:"release_date"`
	SeasonNumber    *int      `json:"season_number"`
	EpisodeNumber   *int      `json:"episode_number"`
}

// ToDomain converts the request to a provisional catalog item. New items
// start active; visibility is toggled separately.
func (r *CreateMediaRequest) ToDomain() *catalog.MediaItem {
	return &catalog.MediaItem{
		Title:           r.Title,
		Description:     r.Description,
		Category:        catalog.Category(r.Category),
		DurationMinutes: r.DurationMinutes,
		ReleaseDate:     r.ReleaseDate,
		Active:          true,
		SeasonNumber:    r.SeasonNumber,
		EpisodeNumber:   r.EpisodeNumber,
	}
}

// UpdateMediaRequest replaces an item's metadata. Asset keys are not
// updatable through this request.
type UpdateMediaRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	Category        string    `json:"category" binding:"required,oneof=movie series"`
	DurationMinutes int       `json:"duration_in_minutes"`
	ReleaseDate     time.Time `json:"release_date"`
	SeasonNumber    *int      `json:"season_number"`
	EpisodeNumber   *int      `json:"episode_number"`
}

// ToDomain converts the request to a catalog item carrying only metadata.
func (r *UpdateMediaRequest) ToDomain() *catalog.MediaItem {
	return &catalog.MediaItem{
		Title:           r.Title,
		Description:     r.Description,
		Category:        catalog.Category(r.Category),
		DurationMinutes: r.DurationMinutes,
		ReleaseDate:     r.ReleaseDate,
		SeasonNumber:    r.SeasonNumber,
		EpisodeNumber:   r.EpisodeNumber,
	}
}
