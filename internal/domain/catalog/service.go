package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/utils/platformerrors"
)

// Repository defines catalog persistence operations needed by the service.
// Lookups return (nil, nil) when no row matches; the service decides how
// absence is reported.
type Repository interface {
	GetByID(ctx context.Context, id string) (*MediaItem, error)
	ListAll(ctx context.Context) ([]MediaItem, error)
	ListActiveByCategory(ctx context.Context, category Category) ([]MediaItem, error)
	SearchActiveByTitle(ctx context.Context, text string) ([]MediaItem, error)
	Update(ctx context.Context, item *MediaItem) (bool, error)
	SetActive(ctx context.Context, id string, active bool) (bool, error)
}

// Service is the catalog query and grouping engine.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "catalog-service").Logger(),
	}
}

// FindByID returns the catalog row for the given id.
func (s *Service) FindByID(ctx context.Context, id string) (*MediaItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get media item")
	}
	if item == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"no media item was found with the specified id", nil, "")
	}
	return item, nil
}

// SearchByTitle returns all active items whose title contains text,
// case-insensitively.
func (s *Service) SearchByTitle(ctx context.Context, text string) ([]MediaItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"the title parameter cannot be empty", nil, "")
	}

	items, err := s.repo.SearchActiveByTitle(ctx, text)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to search media items")
	}
	if len(items) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoResults,
			"no movies or series were found with the title: "+text, nil, "")
	}
	return items, nil
}

// ListByCategory returns active items for the category. Movies are returned
// directly; series are collapsed to one representative card per logical
// series.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]MediaItem, error) {
	category, ok := CategoryFromID(categoryID)
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"the categoryId parameter must be 1 (movie) or 2 (series)", nil, "")
	}

	items, err := s.repo.ListActiveByCategory(ctx, category)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list media items by category")
	}
	if len(items) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoResults,
			"no results found for the requested category", nil, "")
	}

	if category == CategorySeries {
		return seriesRepresentatives(items), nil
	}
	return items, nil
}

// EpisodesBySeries returns all active episodes of the logical series denoted
// by title, grouped by season in ascending order; within each season episodes
// ascend by episode number. When season is non-nil only that season's group
// is returned.
func (s *Service) EpisodesBySeries(ctx context.Context, title string, season *int) ([]SeasonGroup, error) {
	if strings.TrimSpace(title) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"the title parameter cannot be empty", nil, "")
	}

	all, err := s.repo.ListActiveByCategory(ctx, CategorySeries)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list series episodes")
	}

	key := NormalizeTitle(title)
	var episodes []MediaItem
	for _, item := range all {
		if NormalizeTitle(item.Title) != key {
			continue
		}
		if item.SeasonNumber == nil || item.EpisodeNumber == nil {
			continue
		}
		if season != nil && *item.SeasonNumber != *season {
			continue
		}
		episodes = append(episodes, item)
	}
	if len(episodes) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoResults,
			"no episodes were found for the indicated series", nil, "")
	}

	return groupBySeason(episodes), nil
}

// ListAll returns every catalog row, active or not. Administrative use only.
func (s *Service) ListAll(ctx context.Context) ([]MediaItem, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list media items")
	}
	return items, nil
}

// Update overwrites the metadata of an existing item. Asset key columns are
// left untouched; they belong to the upload pipeline.
func (s *Service) Update(ctx context.Context, id string, item *MediaItem) (*MediaItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"the title cannot be empty", nil, "")
	}

	item.ID = id
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update media item")
	}
	if !updated {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"no media item was found with the specified id", nil, "")
	}
	return s.FindByID(ctx, id)
}

// SetActiveStatus toggles the visibility of an item for non-admin queries.
func (s *Service) SetActiveStatus(ctx context.Context, id string, active bool) error {
	updated, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update media item status")
	}
	if !updated {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"no media item was found with the specified id", nil, "")
	}
	return nil
}

// seriesRepresentatives collapses episodes into one card per logical series:
// the episode with the smallest (season, episode) pair. Episodes lacking a
// season number never represent a series. A duplicate (season, episode) pair
// keeps the first-seen episode so the result stays deterministic.
func seriesRepresentatives(items []MediaItem) []MediaItem {
	type slot struct {
		item  MediaItem
		order int
	}
	best := make(map[string]slot)
	var keys []string

	for i, item := range items {
		if item.SeasonNumber == nil || item.EpisodeNumber == nil {
			continue
		}
		key := NormalizeTitle(item.Title)
		current, ok := best[key]
		if !ok {
			best[key] = slot{item: item, order: i}
			keys = append(keys, key)
			continue
		}
		if lessEpisode(item, current.item) {
			best[key] = slot{item: item, order: current.order}
		}
	}

	result := make([]MediaItem, 0, len(keys))
	for _, key := range keys {
		result = append(result, best[key].item)
	}
	return result
}

func lessEpisode(a, b MediaItem) bool {
	if *a.SeasonNumber != *b.SeasonNumber {
		return *a.SeasonNumber < *b.SeasonNumber
	}
	return *a.EpisodeNumber < *b.EpisodeNumber
}

func groupBySeason(episodes []MediaItem) []SeasonGroup {
	bySeason := make(map[int][]MediaItem)
	for _, ep := range episodes {
		bySeason[*ep.SeasonNumber] = append(bySeason[*ep.SeasonNumber], ep)
	}

	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	groups := make([]SeasonGroup, 0, len(seasons))
	for _, season := range seasons {
		eps := bySeason[season]
		sort.SliceStable(eps, func(i, j int) bool {
			return *eps[i].EpisodeNumber < *eps[j].EpisodeNumber
		})
		groups = append(groups, SeasonGroup{Season: season, Episodes: eps})
	}
	return groups
}
