package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/domain/assets"
	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/interfaces/httpserver/handlers"
)

// MockRepository backs the catalog service in handler tests.
type MockRepository struct {
	GetByIDFunc              func(ctx context.Context, id string) (*catalog.MediaItem, error)
	ListActiveByCategoryFunc func(ctx context.Context, category catalog.Category) ([]catalog.MediaItem, error)
	SearchActiveByTitleFunc  func(ctx context.Context, text string) ([]catalog.MediaItem, error)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*catalog.MediaItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) ListAll(ctx context.Context) ([]catalog.MediaItem, error) {
	return nil, nil
}

func (m *MockRepository) ListActiveByCategory(ctx context.Context, category catalog.Category) ([]catalog.MediaItem, error) {
	if m.ListActiveByCategoryFunc != nil {
		return m.ListActiveByCategoryFunc(ctx, category)
	}
	return nil, nil
}

func (m *MockRepository) SearchActiveByTitle(ctx context.Context, text string) ([]catalog.MediaItem, error) {
	if m.SearchActiveByTitleFunc != nil {
		return m.SearchActiveByTitleFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, item *catalog.MediaItem) (bool, error) {
	return false, nil
}

func (m *MockRepository) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	return false, nil
}

// MockStorage signs deterministic URLs.
type MockStorage struct{}

func (MockStorage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func newTestRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{PresignTTL: time.Hour}
	log := zerolog.Nop()

	service := catalog.NewService(repo, log)
	resolver := assets.NewResolver(MockStorage{}, cfg.PresignTTL, log)
	handler := handlers.NewCatalogHandler(cfg, service, resolver, log)

	engine := gin.New()
	engine.GET("/v1/media/search", handler.Search)
	engine.GET("/v1/media/by-category/:categoryId", handler.ByCategory)
	engine.GET("/v1/media/series/:title/episodes", handler.Episodes)
	engine.GET("/v1/media/:id", handler.GetByID)
	engine.GET("/v1/media/:id/play/:quality", handler.Play)
	engine.GET("/v1/media/:id/assets", handler.Assets)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGetByIDNotFound(t *testing.T) {
	engine := newTestRouter(&MockRepository{})

	rec := doRequest(t, engine, "/v1/media/med_missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "NOT_FOUND" {
		t.Errorf("error code = %v, want NOT_FOUND", body["error"])
	}
}

func TestSearchNoResultsDistinctFromNotFound(t *testing.T) {
	engine := newTestRouter(&MockRepository{})

	rec := doRequest(t, engine, "/v1/media/search?title=nothing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "NO_RESULTS" {
		t.Errorf("error code = %v, want NO_RESULTS", body["error"])
	}
}

func TestSearchBlankTitle(t *testing.T) {
	engine := newTestRouter(&MockRepository{})

	rec := doRequest(t, engine, "/v1/media/search?title=")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestByCategoryRejectsNonNumericID(t *testing.T) {
	engine := newTestRouter(&MockRepository{})

	rec := doRequest(t, engine, "/v1/media/by-category/movies")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func seriesEpisodesRepo() *MockRepository {
	season, first, second := 1, 1, 2
	return &MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category catalog.Category) ([]catalog.MediaItem, error) {
			return []catalog.MediaItem{
				{ID: "med_e1", Title: "Dark Harbor", Category: catalog.CategorySeries, Active: true,
					SeasonNumber: &season, EpisodeNumber: &first, BannerKey: "med_e1/banner.jpg"},
				{ID: "med_e2", Title: "Dark Harbor", Category: catalog.CategorySeries, Active: true,
					SeasonNumber: &season, EpisodeNumber: &second, BannerKey: "med_e2/banner.jpg"},
			}, nil
		},
	}
}

func decodeSeasonGroups(t *testing.T, rec *httptest.ResponseRecorder) []struct {
	Season   int `json:"season"`
	Episodes []struct {
		ID        string `json:"id"`
		BannerURL string `json:"banner_url"`
	} `json:"episodes"`
} {
	t.Helper()
	var groups []struct {
		Season   int `json:"season"`
		Episodes []struct {
			ID        string `json:"id"`
			BannerURL string `json:"banner_url"`
		} `json:"episodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return groups
}

func TestEpisodesGroupedSignsEveryBanner(t *testing.T) {
	engine := newTestRouter(seriesEpisodesRepo())

	rec := doRequest(t, engine, "/v1/media/series/Dark%20Harbor/episodes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	groups := decodeSeasonGroups(t, rec)
	if len(groups) != 1 || len(groups[0].Episodes) != 2 {
		t.Fatalf("unexpected grouping: %+v", groups)
	}
	for _, ep := range groups[0].Episodes {
		want := "https://signed.example/" + ep.ID + "/banner.jpg"
		if ep.BannerURL != want {
			t.Errorf("episode %s banner = %q, want %q", ep.ID, ep.BannerURL, want)
		}
	}
}

func TestEpisodesSeasonViewSignsFirstBannerOnly(t *testing.T) {
	engine := newTestRouter(seriesEpisodesRepo())

	rec := doRequest(t, engine, "/v1/media/series/Dark%20Harbor/episodes?season=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	groups := decodeSeasonGroups(t, rec)
	if len(groups) != 1 || len(groups[0].Episodes) != 2 {
		t.Fatalf("unexpected grouping: %+v", groups)
	}
	if got := groups[0].Episodes[0].BannerURL; got != "https://signed.example/med_e1/banner.jpg" {
		t.Errorf("first episode banner = %q", got)
	}
	if got := groups[0].Episodes[1].BannerURL; got != "" {
		t.Errorf("second episode banner = %q, want empty", got)
	}
}

func TestPlayReturnsSignedURL(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*catalog.MediaItem, error) {
			return &catalog.MediaItem{ID: id, Title: "The Long Voyage", VideoKey480p: id + "/video.mp4"}, nil
		},
	}
	engine := newTestRouter(repo)

	rec := doRequest(t, engine, "/v1/media/med_1/play/480p")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		URL       string `json:"url"`
		ExpiresIn int    `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.URL != "https://signed.example/med_1/video.mp4" {
		t.Errorf("unexpected url %q", body.URL)
	}
	if body.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", body.ExpiresIn)
	}
}

func TestPlayRejectsUnknownQuality(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*catalog.MediaItem, error) {
			return &catalog.MediaItem{ID: id, VideoKey480p: id + "/video.mp4"}, nil
		},
	}
	engine := newTestRouter(repo)

	rec := doRequest(t, engine, "/v1/media/med_1/play/4K")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAssetsMidUploadKeepsNilSlots(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*catalog.MediaItem, error) {
			return &catalog.MediaItem{ID: id, BannerKey: id + "/banner.jpg"}, nil
		},
	}
	engine := newTestRouter(repo)

	rec := doRequest(t, engine, "/v1/media/med_1/assets")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Assets struct {
			BannerURL *string `json:"banner_url"`
			AudioEn   *string `json:"audio_en_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Assets.BannerURL == nil {
		t.Error("banner url missing")
	}
	if body.Assets.AudioEn != nil {
		t.Error("absent audio asset should be null")
	}
}
