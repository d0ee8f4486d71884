package entities

import "time"

// MediaItem represents the persisted catalog row. Each asset key lives in
// its own column so the upload pipeline can fill them one at a time without
// touching the metadata columns the admin endpoints write.
type MediaItem struct {
	ID              string `gorm:"type:varchar(40);primaryKey"`
	Title           string `gorm:"type:varchar(255);not null;index"`
	Description     string `gorm:"type:text"`
	Category        string `gorm:"type:varchar(16);not null;index"`
	DurationMinutes int    `gorm:"not null"`
	ReleaseDate     time.Time
	Active          bool `gorm:"not null;default:false;index"`

	SeasonNumber  *int
	EpisodeNumber *int

	VideoKey480p  string `gorm:"type:varchar(255);not null;default:''"`
	VideoKey720p  string `gorm:"type:varchar(255);not null;default:''"`
	VideoKey1080p string `gorm:"type:varchar(255);not null;default:''"`
	AudioKeyEn    string `gorm:"type:varchar(255);not null;default:''"`
	AudioKeyEs    string `gorm:"type:varchar(255);not null;default:''"`
	SubtitleKeyEn string `gorm:"type:varchar(255);not null;default:''"`
	SubtitleKeyEs string `gorm:"type:varchar(255);not null;default:''"`
	BannerKey     string `gorm:"type:varchar(255);not null;default:''"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MediaItem) TableName() string {
	return "media_items"
}
