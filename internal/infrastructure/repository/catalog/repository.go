package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/domain/upload"
	"streamvault/catalog-api/internal/infrastructure/database/entities"
	"streamvault/catalog-api/internal/utils/platformerrors"
)

// assetColumns maps pipeline asset types to their dedicated key columns.
// Keeping the mapping explicit bounds what the detached transfer can write:
// asset-key writes and admin metadata writes touch disjoint column sets.
// The single uploaded video backs every rendition column until per-rendition
// transcodes exist, so playback works for all supported qualities.
var assetColumns = map[upload.AssetType][]string{
	upload.AssetVideo:   {"video_key480p", "video_key720p", "video_key1080p"},
	upload.AssetAudioEn: {"audio_key_en"},
	upload.AssetAudioEs: {"audio_key_es"},
	upload.AssetSubsEn:  {"subtitle_key_en"},
	upload.AssetSubsEs:  {"subtitle_key_es"},
	upload.AssetBanner:  {"banner_key"},
}

// Repository handles media item persistence.
type Repository struct {
	db *gorm.DB
}

var (
	_ domain.Repository = (*Repository)(nil)
	_ upload.Catalog    = (*Repository)(nil)
)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, item *domain.MediaItem) error {
	entity := toEntity(item)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create media item", err, "3f6c1a9e-2d47-4b8a-9c50-8e1f2a7b4d63")
	}
	item.CreatedAt = entity.CreatedAt
	item.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.MediaItem, error) {
	var entity entities.MediaItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to get media item by id", err, "b4e8d21c-7f3a-4c96-8a1d-5e0c9f6b2a74")
	}
	item := toDomain(entity)
	return &item, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.MediaItem, error) {
	var rows []entities.MediaItem
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list media items", err, "9d2b6e70-1c58-4f3a-b7e9-4a8c0d5f1e26")
	}
	return toDomainSlice(rows), nil
}

func (r *Repository) ListActiveByCategory(ctx context.Context, category domain.Category) ([]domain.MediaItem, error) {
	var rows []entities.MediaItem
	err := r.db.WithContext(ctx).
		Where("category = ? AND active = ?", string(category), true).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list media items by category", err, "5a1f8c3d-6e29-4b07-9f4c-2d7e0a9b6c15")
	}
	return toDomainSlice(rows), nil
}

func (r *Repository) SearchActiveByTitle(ctx context.Context, text string) ([]domain.MediaItem, error) {
	var rows []entities.MediaItem
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? AND active = ?", "%"+text+"%", true).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to search media items by title", err, "c7d40e82-3b16-4a5f-8d29-6f1a9c0e7b38")
	}
	return toDomainSlice(rows), nil
}

// Update overwrites metadata columns only; asset key columns belong to
// SetAssetKey.
func (r *Repository) Update(ctx context.Context, item *domain.MediaItem) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entities.MediaItem{}).
		Where("id = ?", item.ID).
		Updates(metadataUpdates(item))
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update media item", result.Error, "e2a95f7b-8c04-4d6e-a1b3-7c5d2f8e0a49")
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entities.MediaItem{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update media item status", result.Error, "1b8e4d06-5f72-4c39-9e0a-3d6b8f2c7a51")
	}
	return result.RowsAffected > 0, nil
}

// metadataUpdates lists the columns the admin update is allowed to write.
// It must stay disjoint from assetColumns and the active flag.
func metadataUpdates(item *domain.MediaItem) map[string]interface{} {
	return map[string]interface{}{
		"title":            item.Title,
		"description":      item.Description,
		"category":         string(item.Category),
		"duration_minutes": item.DurationMinutes,
		"release_date":     item.ReleaseDate,
		"season_number":    item.SeasonNumber,
		"episode_number":   item.EpisodeNumber,
	}
}

// SetAssetKey fills the key columns backed by one uploaded asset.
func (r *Repository) SetAssetKey(ctx context.Context, id string, asset upload.AssetType, key string) error {
	columns, ok := assetColumns[asset]
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal,
			"unknown asset type "+string(asset), nil, "")
	}
	updates := make(map[string]interface{}, len(columns))
	for _, column := range columns {
		updates[column] = key
	}
	err := r.db.WithContext(ctx).Model(&entities.MediaItem{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to record asset key", err, "7f3a0c58-2e91-4b6d-8a47-0c9e5d1f3b82")
	}
	return nil
}

func toEntity(item *domain.MediaItem) *entities.MediaItem {
	return &entities.MediaItem{
		ID:              item.ID,
		Title:           item.Title,
		Description:     item.Description,
		Category:        string(item.Category),
		DurationMinutes: item.DurationMinutes,
		ReleaseDate:     item.ReleaseDate,
		Active:          item.Active,
		SeasonNumber:    item.SeasonNumber,
		EpisodeNumber:   item.EpisodeNumber,
		VideoKey480p:    item.VideoKey480p,
		VideoKey720p:    item.VideoKey720p,
		VideoKey1080p:   item.VideoKey1080p,
		AudioKeyEn:      item.AudioKeyEn,
		AudioKeyEs:      item.AudioKeyEs,
		SubtitleKeyEn:   item.SubtitleKeyEn,
		SubtitleKeyEs:   item.SubtitleKeyEs,
		BannerKey:       item.BannerKey,
	}
}

func toDomain(entity entities.MediaItem) domain.MediaItem {
	return domain.MediaItem{
		ID:              entity.ID,
		Title:           entity.Title,
		Description:     entity.Description,
		Category:        domain.Category(entity.Category),
		DurationMinutes: entity.DurationMinutes,
		ReleaseDate:     entity.ReleaseDate,
		Active:          entity.Active,
		SeasonNumber:    entity.SeasonNumber,
		EpisodeNumber:   entity.EpisodeNumber,
		VideoKey480p:    entity.VideoKey480p,
		VideoKey720p:    entity.VideoKey720p,
		VideoKey1080p:   entity.VideoKey1080p,
		AudioKeyEn:      entity.AudioKeyEn,
		AudioKeyEs:      entity.AudioKeyEs,
		SubtitleKeyEn:   entity.SubtitleKeyEn,
		SubtitleKeyEs:   entity.SubtitleKeyEs,
		BannerKey:       entity.BannerKey,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func toDomainSlice(rows []entities.MediaItem) []domain.MediaItem {
	result := make([]domain.MediaItem, len(rows))
	for i, row := range rows {
		result[i] = toDomain(row)
	}
	return result
}
