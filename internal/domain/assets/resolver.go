package assets

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/utils/platformerrors"
)

// Quality is the closed set of playback renditions.
type Quality string

const (
	Quality480p  Quality = "480p"
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
)

// ParseQuality validates a quality token from the request path.
func ParseQuality(value string) (Quality, bool) {
	switch Quality(value) {
	case Quality480p, Quality720p, Quality1080p:
		return Quality(value), true
	default:
		return "", false
	}
}

// Storage is the subset of the object store needed for URL minting.
type Storage interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Bundle carries the signed URLs for an item's secondary assets. Nil means
// the asset has not been uploaded; an item mid-upload is a normal state.
type Bundle struct {
	AudioEnURL     *string `json:"audio_en_url"`
	AudioEsURL     *string `json:"audio_es_url"`
	SubtitlesEnURL *string `json:"subtitles_en_url"`
	SubtitlesEsURL *string `json:"subtitles_es_url"`
	BannerURL      *string `json:"banner_url"`
}

// Resolver maps catalog entries to time-limited signed URLs. URLs are minted
// at read time and never stored, so storage-side key rotation takes effect
// immediately.
type Resolver struct {
	storage Storage
	ttl     time.Duration
	log     zerolog.Logger
}

func NewResolver(storage Storage, ttl time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{
		storage: storage,
		ttl:     ttl,
		log:     log.With().Str("component", "asset-resolver").Logger(),
	}
}

// PlaybackURL issues a signed URL for the item's video at the requested
// quality.
func (r *Resolver) PlaybackURL(ctx context.Context, item *catalog.MediaItem, quality string) (string, error) {
	q, ok := ParseQuality(quality)
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid quality, allowed options are 480p, 720p or 1080p", nil, "")
	}

	var key string
	switch q {
	case Quality480p:
		key = item.VideoKey480p
	case Quality720p:
		key = item.VideoKey720p
	case Quality1080p:
		key = item.VideoKey1080p
	}
	if key == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"no video is available in the requested quality", nil, "")
	}

	url, err := r.storage.PresignGet(ctx, key, r.ttl)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"failed to generate playback url", err, "")
	}
	return url, nil
}

// AssetBundle issues signed URLs for every secondary asset key present on
// the item. Absent keys stay nil rather than failing the whole bundle.
func (r *Resolver) AssetBundle(ctx context.Context, item *catalog.MediaItem) (*Bundle, error) {
	bundle := &Bundle{}

	entries := []struct {
		key  string
		slot **string
	}{
		{item.AudioKeyEn, &bundle.AudioEnURL},
		{item.AudioKeyEs, &bundle.AudioEsURL},
		{item.SubtitleKeyEn, &bundle.SubtitlesEnURL},
		{item.SubtitleKeyEs, &bundle.SubtitlesEsURL},
		{item.BannerKey, &bundle.BannerURL},
	}

	for _, entry := range entries {
		if entry.key == "" {
			continue
		}
		url, err := r.storage.PresignGet(ctx, entry.key, r.ttl)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
				"failed to generate asset url", err, "")
		}
		u := url
		*entry.slot = &u
	}
	return bundle, nil
}

// BannerURL issues a signed URL for the item's banner image, or "" when no
// banner has been uploaded. Presign failures are logged and degrade to ""
// so a listing never fails on a single banner.
func (r *Resolver) BannerURL(ctx context.Context, item *catalog.MediaItem) string {
	if item.BannerKey == "" {
		return ""
	}
	url, err := r.storage.PresignGet(ctx, item.BannerKey, r.ttl)
	if err != nil {
		r.log.Warn().Err(err).Str("media_id", item.ID).Msg("failed to presign banner url")
		return ""
	}
	return url
}
