package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/infrastructure/metrics"
	"streamvault/catalog-api/internal/utils/catalogid"
	"streamvault/catalog-api/internal/utils/platformerrors"
)

// Catalog is the subset of catalog persistence the pipeline mutates.
type Catalog interface {
	Create(ctx context.Context, item *catalog.MediaItem) error
	SetAssetKey(ctx context.Context, id string, asset AssetType, key string) error
}

// Storage defines the object store write operation used by transfers.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// Service is the asynchronous multi-asset upload pipeline. Submit persists a
// provisional catalog row synchronously and hands the staged files to a
// detached transfer with bounded concurrency. Transfers are best-effort:
// each asset is attempted exactly once and a failure neither rolls back nor
// blocks sibling assets.
type Service struct {
	catalog Catalog
	storage Storage
	log     zerolog.Logger

	slots chan struct{}
	wg    sync.WaitGroup
}

func NewService(cat Catalog, storage Storage, workers int, log zerolog.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		catalog: cat,
		storage: storage,
		log:     log.With().Str("component", "upload-pipeline").Logger(),
		slots:   make(chan struct{}, workers),
	}
}

// Submit validates the staged payloads, persists item as a provisional row
// and returns it immediately; the asset transfer continues detached from the
// request. Validation failures remove the staging directory and leave the
// catalog untouched.
func (s *Service) Submit(ctx context.Context, item *catalog.MediaItem, files Files) (*catalog.MediaItem, error) {
	if missing := files.missing(); len(missing) > 0 {
		if err := files.Cleanup(); err != nil {
			s.log.Warn().Err(err).Str("dir", files.Dir).Msg("failed to remove staging dir")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("all media files are required, missing or empty: %v", missing), nil, "")
	}

	if item.ID == "" {
		item.ID = catalogid.New()
	}
	// Provisional row: every asset key starts empty and is filled one at a
	// time as transfers complete.
	item.VideoKey480p, item.VideoKey720p, item.VideoKey1080p = "", "", ""
	item.AudioKeyEn, item.AudioKeyEs = "", ""
	item.SubtitleKeyEn, item.SubtitleKeyEs = "", ""
	item.BannerKey = ""

	if err := s.catalog.Create(ctx, item); err != nil {
		if cerr := files.Cleanup(); cerr != nil {
			s.log.Warn().Err(cerr).Str("dir", files.Dir).Msg("failed to remove staging dir")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create media item")
	}

	s.wg.Add(1)
	go s.run(context.WithoutCancel(ctx), job{itemID: item.ID, files: files})

	return item, nil
}

// Wait blocks until every in-flight transfer job has finished. Called on
// shutdown so staged files are always released.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context, j job) {
	defer s.wg.Done()

	s.slots <- struct{}{}
	defer func() { <-s.slots }()

	started := time.Now()
	defer func() {
		if err := j.files.Cleanup(); err != nil {
			s.log.Warn().Err(err).Str("dir", j.files.Dir).Msg("failed to remove staging dir")
		}
	}()

	var failed int
	for _, asset := range j.files.assets() {
		if err := s.transfer(ctx, j.itemID, asset.kind, asset.file); err != nil {
			failed++
			metrics.RecordAssetTransfer(string(asset.kind), "failure", 0)
			// Best-effort: the failure is observable as a missing key when
			// the item is re-queried. Siblings keep going.
			s.log.Error().Err(err).
				Str("media_id", j.itemID).
				Str("asset", string(asset.kind)).
				Msg("asset transfer failed")
			continue
		}
		metrics.RecordAssetTransfer(string(asset.kind), "success", asset.file.Size)
	}

	s.log.Info().
		Str("media_id", j.itemID).
		Int("failed_assets", failed).
		Dur("elapsed", time.Since(started)).
		Msg("upload job finished")
}

func (s *Service) transfer(ctx context.Context, itemID string, kind AssetType, file StagedFile) error {
	key := StorageKey(itemID, kind)

	contentType := "application/octet-stream"
	if mime, err := mimetype.DetectFile(file.Path); err == nil {
		contentType = mime.String()
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	if err := s.storage.Upload(ctx, key, f, file.Size, contentType); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	if err := s.catalog.SetAssetKey(ctx, itemID, kind, key); err != nil {
		return fmt.Errorf("record key %s: %w", key, err)
	}
	return nil
}
