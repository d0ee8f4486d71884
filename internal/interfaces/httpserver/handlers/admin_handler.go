package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/domain/upload"
	"streamvault/catalog-api/internal/interfaces/httpserver/requests"
	"streamvault/catalog-api/internal/interfaces/httpserver/responses"
	"streamvault/catalog-api/internal/utils/platformerrors"
)

// metadataPart is the multipart field carrying the item JSON.
const metadataPart = "media"

// assetParts maps multipart field names to pipeline asset types.
var assetParts = []struct {
	field string
	kind  upload.AssetType
}{
	{"video", upload.AssetVideo},
	{"audio_en", upload.AssetAudioEn},
	{"audio_es", upload.AssetAudioEs},
	{"subs_en", upload.AssetSubsEn},
	{"subs_es", upload.AssetSubsEs},
	{"banner", upload.AssetBanner},
}

// AdminHandler exposes the write side of the catalog.
type AdminHandler struct {
	cfg      *config.Config
	service  *catalog.Service
	uploader *upload.Service
	log      zerolog.Logger
}

func NewAdminHandler(cfg *config.Config, service *catalog.Service, uploader *upload.Service, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		cfg:      cfg,
		service:  service,
		uploader: uploader,
		log:      log.With().Str("component", "admin-handler").Logger(),
	}
}

// Create accepts a multipart submission carrying the item metadata and all
// six asset payloads. It answers 202 as soon as the catalog row exists; the
// asset transfer continues in the background.
func (h *AdminHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	raw := c.PostForm(metadataPart)
	if raw == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"the media metadata part is required", "")
		return
	}

	var req requests.CreateMediaRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"the media metadata part is not valid JSON: "+err.Error(), "")
		return
	}
	if err := h.validateMetadata(ctx, req.Title, req.Category); err != nil {
		responses.HandleError(c, err, "invalid media metadata")
		return
	}

	files, err := h.stageFiles(c)
	if err != nil {
		responses.HandleError(c, err, "failed to stage uploaded files")
		return
	}

	item, err := h.uploader.Submit(ctx, req.ToDomain(), files)
	if err != nil {
		responses.HandleError(c, err, "failed to submit media item")
		return
	}

	c.JSON(http.StatusAccepted, responses.UploadAcceptedResponse{
		ID:     item.ID,
		Status: "processing",
	})
}

// ListAll returns every catalog row including inactive ones.
func (h *AdminHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list media items")
		return
	}

	out := make([]responses.MediaItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *responses.BuildMediaItemResponse(&items[i], ""))
	}
	c.JSON(http.StatusOK, out)
}

// Update replaces an item's metadata.
func (h *AdminHandler) Update(c *gin.Context) {
	var req requests.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		responses.HandleError(c, err, "failed to update media item")
		return
	}

	c.JSON(http.StatusOK, responses.BuildMediaItemResponse(item, ""))
}

// SetStatus toggles an item's visibility.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"the active parameter must be true or false", "")
		return
	}

	id := c.Param("id")
	if err := h.service.SetActiveStatus(c.Request.Context(), id, active); err != nil {
		responses.HandleError(c, err, "failed to update media item status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "active": active})
}

func (h *AdminHandler) validateMetadata(ctx context.Context, title, category string) error {
	if title == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"the title cannot be empty", nil, "")
	}
	switch catalog.Category(category) {
	case catalog.CategoryMovie, catalog.CategorySeries:
		return nil
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"the category must be movie or series", nil, "")
	}
}

// stageFiles copies every asset part into a fresh staging directory so the
// transfer can outlive the request. Missing parts stage as zero values and
// are rejected by the pipeline before any catalog write.
func (h *AdminHandler) stageFiles(c *gin.Context) (upload.Files, error) {
	ctx := c.Request.Context()

	dir, err := os.MkdirTemp(h.cfg.UploadTempDir, "catalog-upload-*")
	if err != nil {
		return upload.Files{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal,
			"failed to create staging directory", err, "")
	}

	files := upload.Files{Dir: dir}
	for _, part := range assetParts {
		header, err := c.FormFile(part.field)
		if err != nil {
			continue
		}
		if h.cfg.MaxAssetBytes > 0 && header.Size > h.cfg.MaxAssetBytes {
			_ = files.Cleanup()
			return upload.Files{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				"the "+part.field+" file exceeds the maximum allowed size", nil, "")
		}

		staged, err := h.saveUpload(c, header, dir, part.field)
		if err != nil {
			_ = files.Cleanup()
			return upload.Files{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal,
				"failed to stage the "+part.field+" file", err, "")
		}

		switch part.kind {
		case upload.AssetVideo:
			files.Video = staged
		case upload.AssetAudioEn:
			files.AudioEn = staged
		case upload.AssetAudioEs:
			files.AudioEs = staged
		case upload.AssetSubsEn:
			files.SubsEn = staged
		case upload.AssetSubsEs:
			files.SubsEs = staged
		case upload.AssetBanner:
			files.Banner = staged
		}
	}

	return files, nil
}

func (h *AdminHandler) saveUpload(c *gin.Context, header *multipart.FileHeader, dir, field string) (upload.StagedFile, error) {
	path := filepath.Join(dir, field+filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, path); err != nil {
		return upload.StagedFile{}, err
	}
	return upload.StagedFile{Path: path, Size: header.Size}, nil
}
