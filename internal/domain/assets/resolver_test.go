package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/utils/platformerrors"
)

// MockStorage is a mock implementation of Storage for testing.
type MockStorage struct {
	PresignGetFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if m.PresignGetFunc != nil {
		return m.PresignGetFunc(ctx, key, ttl)
	}
	return "https://signed.example/" + key, nil
}

func newTestResolver(storage Storage) *Resolver {
	return NewResolver(storage, time.Hour, zerolog.Nop())
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"480p", true},
		{"720p", true},
		{"1080p", true},
		{"", false},
		{"4K", false},
		{"720", false},
		{"1080P", false},
	}

	for _, tt := range tests {
		if _, ok := ParseQuality(tt.input); ok != tt.ok {
			t.Errorf("ParseQuality(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
	}
}

func TestPlaybackURL(t *testing.T) {
	item := &catalog.MediaItem{
		ID:           "med_1",
		VideoKey480p: "med_1/video.mp4",
	}
	resolver := newTestResolver(&MockStorage{})

	url, err := resolver.PlaybackURL(context.Background(), item, "480p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://signed.example/med_1/video.mp4" {
		t.Errorf("unexpected url %q", url)
	}
}

func TestPlaybackURLInvalidQuality(t *testing.T) {
	resolver := newTestResolver(&MockStorage{})
	item := &catalog.MediaItem{ID: "med_1", VideoKey480p: "med_1/video.mp4"}

	for _, quality := range []string{"", "4K", "240p"} {
		_, err := resolver.PlaybackURL(context.Background(), item, quality)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Errorf("quality %q: expected VALIDATION, got %v", quality, err)
		}
	}
}

func TestPlaybackURLMissingRendition(t *testing.T) {
	resolver := newTestResolver(&MockStorage{})
	item := &catalog.MediaItem{ID: "med_1", VideoKey480p: "med_1/video.mp4"}

	_, err := resolver.PlaybackURL(context.Background(), item, "1080p")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected NOT_FOUND for absent rendition, got %v", err)
	}
}

func TestPlaybackURLStorageFailure(t *testing.T) {
	resolver := newTestResolver(&MockStorage{
		PresignGetFunc: func(ctx context.Context, key string, ttl time.Duration) (string, error) {
			return "", errors.New("signing backend down")
		},
	})
	item := &catalog.MediaItem{ID: "med_1", VideoKey480p: "med_1/video.mp4"}

	_, err := resolver.PlaybackURL(context.Background(), item, "480p")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Errorf("expected EXTERNAL, got %v", err)
	}
}

func TestAssetBundlePartialUpload(t *testing.T) {
	// An item mid-upload has some keys set and some still empty; absent
	// assets stay nil without failing the bundle.
	item := &catalog.MediaItem{
		ID:         "med_1",
		AudioKeyEn: "med_1/audio_en.m4a",
		BannerKey:  "med_1/banner.jpg",
	}
	resolver := newTestResolver(&MockStorage{})

	bundle, err := resolver.AssetBundle(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.AudioEnURL == nil || *bundle.AudioEnURL != "https://signed.example/med_1/audio_en.m4a" {
		t.Errorf("unexpected audio url %v", bundle.AudioEnURL)
	}
	if bundle.BannerURL == nil {
		t.Error("banner url missing")
	}
	if bundle.AudioEsURL != nil || bundle.SubtitlesEnURL != nil || bundle.SubtitlesEsURL != nil {
		t.Errorf("absent assets should stay nil: %+v", bundle)
	}
}

func TestAssetBundleStorageFailure(t *testing.T) {
	resolver := newTestResolver(&MockStorage{
		PresignGetFunc: func(ctx context.Context, key string, ttl time.Duration) (string, error) {
			return "", errors.New("signing backend down")
		},
	})
	item := &catalog.MediaItem{ID: "med_1", BannerKey: "med_1/banner.jpg"}

	_, err := resolver.AssetBundle(context.Background(), item)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Errorf("expected EXTERNAL, got %v", err)
	}
}

func TestBannerURLDegradesToEmpty(t *testing.T) {
	resolver := newTestResolver(&MockStorage{
		PresignGetFunc: func(ctx context.Context, key string, ttl time.Duration) (string, error) {
			return "", errors.New("signing backend down")
		},
	})

	if url := resolver.BannerURL(context.Background(), &catalog.MediaItem{ID: "med_1", BannerKey: "k"}); url != "" {
		t.Errorf("expected empty url on failure, got %q", url)
	}
	if url := resolver.BannerURL(context.Background(), &catalog.MediaItem{ID: "med_2"}); url != "" {
		t.Errorf("expected empty url for missing banner, got %q", url)
	}
}
