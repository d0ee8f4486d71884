package catalog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/utils/platformerrors"
)

// MockRepository is a mock implementation of Repository for testing.
type MockRepository struct {
	GetByIDFunc              func(ctx context.Context, id string) (*MediaItem, error)
	ListAllFunc              func(ctx context.Context) ([]MediaItem, error)
	ListActiveByCategoryFunc func(ctx context.Context, category Category) ([]MediaItem, error)
	SearchActiveByTitleFunc  func(ctx context.Context, text string) ([]MediaItem, error)
	UpdateFunc               func(ctx context.Context, item *MediaItem) (bool, error)
	SetActiveFunc            func(ctx context.Context, id string, active bool) (bool, error)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*MediaItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) ListAll(ctx context.Context) ([]MediaItem, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) ListActiveByCategory(ctx context.Context, category Category) ([]MediaItem, error) {
	if m.ListActiveByCategoryFunc != nil {
		return m.ListActiveByCategoryFunc(ctx, category)
	}
	return nil, nil
}

func (m *MockRepository) SearchActiveByTitle(ctx context.Context, text string) ([]MediaItem, error) {
	if m.SearchActiveByTitleFunc != nil {
		return m.SearchActiveByTitleFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, item *MediaItem) (bool, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return false, nil
}

func (m *MockRepository) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return false, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zerolog.Nop())
}

func intPtr(v int) *int { return &v }

func episode(id, title string, season, ep int) MediaItem {
	return MediaItem{
		ID:            id,
		Title:         title,
		Category:      CategorySeries,
		Active:        true,
		SeasonNumber:  intPtr(season),
		EpisodeNumber: intPtr(ep),
	}
}

func TestFindByID(t *testing.T) {
	service := newTestService(&MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*MediaItem, error) {
			if id == "med_known" {
				return &MediaItem{ID: id, Title: "The Long Voyage"}, nil
			}
			return nil, nil
		},
	})

	item, err := service.FindByID(context.Background(), "med_known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Title != "The Long Voyage" {
		t.Errorf("unexpected title %q", item.Title)
	}

	_, err = service.FindByID(context.Background(), "med_missing")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestSearchByTitle(t *testing.T) {
	repo := &MockRepository{
		SearchActiveByTitleFunc: func(ctx context.Context, text string) ([]MediaItem, error) {
			if text == "voyage" {
				return []MediaItem{{ID: "med_1", Title: "The Long Voyage"}}, nil
			}
			return nil, nil
		},
	}
	service := newTestService(repo)

	tests := []struct {
		name     string
		text     string
		wantType platformerrors.ErrorType
		wantLen  int
	}{
		{name: "match", text: "voyage", wantLen: 1},
		{name: "blank is rejected before the repository", text: "   ", wantType: platformerrors.ErrorTypeValidation},
		{name: "well-formed query with no matches", text: "nothing", wantType: platformerrors.ErrorTypeNoResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := service.SearchByTitle(context.Background(), tt.text)
			if tt.wantType != "" {
				if !platformerrors.IsErrorType(err, tt.wantType) {
					t.Fatalf("expected %s, got %v", tt.wantType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantLen {
				t.Errorf("got %d items, want %d", len(items), tt.wantLen)
			}
		})
	}
}

func TestListByCategoryValidation(t *testing.T) {
	service := newTestService(&MockRepository{})

	for _, id := range []int64{0, 3, -1, 99} {
		_, err := service.ListByCategory(context.Background(), id)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Errorf("categoryID %d: expected VALIDATION, got %v", id, err)
		}
	}
}

func TestListByCategoryNoResults(t *testing.T) {
	service := newTestService(&MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category Category) ([]MediaItem, error) {
			return nil, nil
		},
	})

	_, err := service.ListByCategory(context.Background(), CategoryIDMovie)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNoResults) {
		t.Errorf("expected NO_RESULTS, got %v", err)
	}
}

func TestListByCategoryMoviesPassThrough(t *testing.T) {
	movies := []MediaItem{
		{ID: "med_1", Title: "The Long Voyage", Category: CategoryMovie, Active: true},
		{ID: "med_2", Title: "Night Market", Category: CategoryMovie, Active: true},
	}
	service := newTestService(&MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category Category) ([]MediaItem, error) {
			return movies, nil
		},
	})

	items, err := service.ListByCategory(context.Background(), CategoryIDMovie)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}

func TestListByCategorySeriesRepresentatives(t *testing.T) {
	episodes := []MediaItem{
		episode("med_dh_s2e1", "Dark Harbor Season 2", 2, 1),
		episode("med_dh_s1e2", "Dark Harbor Season 1", 1, 2),
		episode("med_nm_s1e1", "Night Watch Season 1", 1, 1),
		episode("med_dh_s1e1", "Dark Harbor Season 1", 1, 1),
	}
	service := newTestService(&MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category Category) ([]MediaItem, error) {
			return episodes, nil
		},
	})

	items, err := service.ListByCategory(context.Background(), CategoryIDSeries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d representatives, want 2", len(items))
	}
	// First-seen order of logical series is preserved.
	if items[0].ID != "med_dh_s1e1" {
		t.Errorf("Dark Harbor representative = %s, want med_dh_s1e1", items[0].ID)
	}
	if items[1].ID != "med_nm_s1e1" {
		t.Errorf("Night Watch representative = %s, want med_nm_s1e1", items[1].ID)
	}
}

func TestSeriesRepresentativesSkipNilSeason(t *testing.T) {
	items := []MediaItem{
		{ID: "med_special", Title: "Dark Harbor", Category: CategorySeries, Active: true},
		episode("med_dh_s1e1", "Dark Harbor Season 1", 1, 1),
	}
	service := newTestService(&MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category Category) ([]MediaItem, error) {
			return items, nil
		},
	})

	result, err := service.ListByCategory(context.Background(), CategoryIDSeries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].ID != "med_dh_s1e1" {
		t.Errorf("expected only med_dh_s1e1, got %+v", result)
	}
}

func TestSeriesRepresentativesDuplicatePairKeepsFirst(t *testing.T) {
	items := []MediaItem{
		episode("med_first", "Dark Harbor Season 1", 1, 1),
		episode("med_second", "Dark Harbor Season 1", 1, 1),
	}

	result := seriesRepresentatives(items)
	if len(result) != 1 {
		t.Fatalf("got %d representatives, want 1", len(result))
	}
	if result[0].ID != "med_first" {
		t.Errorf("representative = %s, want med_first", result[0].ID)
	}
}

func TestEpisodesBySeries(t *testing.T) {
	episodes := []MediaItem{
		episode("med_s2e2", "Dark Harbor Season 2", 2, 2),
		episode("med_s1e2", "Dark Harbor Season 1", 1, 2),
		episode("med_s2e1", "Dark Harbor Season 2", 2, 1),
		episode("med_s1e1", "Dark Harbor Season 1", 1, 1),
		episode("med_other", "Night Watch Season 1", 1, 1),
	}
	service := newTestService(&MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category Category) ([]MediaItem, error) {
			return episodes, nil
		},
	})

	groups, err := service.EpisodesBySeries(context.Background(), "Dark Harbor", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d season groups, want 2", len(groups))
	}
	if groups[0].Season != 1 || groups[1].Season != 2 {
		t.Errorf("seasons not ascending: %d, %d", groups[0].Season, groups[1].Season)
	}
	for _, group := range groups {
		if len(group.Episodes) != 2 {
			t.Fatalf("season %d has %d episodes, want 2", group.Season, len(group.Episodes))
		}
		if *group.Episodes[0].EpisodeNumber != 1 || *group.Episodes[1].EpisodeNumber != 2 {
			t.Errorf("season %d episodes not ascending", group.Season)
		}
	}
}

func TestEpisodesBySeriesSeasonFilter(t *testing.T) {
	episodes := []MediaItem{
		episode("med_s1e1", "Dark Harbor Season 1", 1, 1),
		episode("med_s2e1", "Dark Harbor Season 2", 2, 1),
	}
	service := newTestService(&MockRepository{
		ListActiveByCategoryFunc: func(ctx context.Context, category Category) ([]MediaItem, error) {
			return episodes, nil
		},
	})

	groups, err := service.EpisodesBySeries(context.Background(), "Dark Harbor", intPtr(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 || groups[0].Season != 2 {
		t.Fatalf("expected only season 2, got %+v", groups)
	}

	_, err = service.EpisodesBySeries(context.Background(), "Dark Harbor", intPtr(9))
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNoResults) {
		t.Errorf("expected NO_RESULTS for absent season, got %v", err)
	}
}

func TestEpisodesBySeriesValidation(t *testing.T) {
	service := newTestService(&MockRepository{})

	_, err := service.EpisodesBySeries(context.Background(), "  ", nil)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected VALIDATION, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	var updatedID string
	service := newTestService(&MockRepository{
		UpdateFunc: func(ctx context.Context, item *MediaItem) (bool, error) {
			updatedID = item.ID
			return item.ID == "med_known", nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*MediaItem, error) {
			return &MediaItem{ID: id, Title: "Updated"}, nil
		},
	})

	item, err := service.Update(context.Background(), "med_known", &MediaItem{Title: "Updated"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedID != "med_known" || item.Title != "Updated" {
		t.Errorf("unexpected result %+v", item)
	}

	_, err = service.Update(context.Background(), "med_missing", &MediaItem{Title: "Updated"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	_, err = service.Update(context.Background(), "med_known", &MediaItem{Title: "  "})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected VALIDATION for blank title, got %v", err)
	}
}

func TestSetActiveStatus(t *testing.T) {
	service := newTestService(&MockRepository{
		SetActiveFunc: func(ctx context.Context, id string, active bool) (bool, error) {
			return id == "med_known", nil
		},
	})

	if err := service.SetActiveStatus(context.Background(), "med_known", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := service.SetActiveStatus(context.Background(), "med_missing", true)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
