package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/domain/assets"
	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/interfaces/httpserver/responses"
	"streamvault/catalog-api/internal/utils/platformerrors"
)

// CatalogHandler exposes the read side of the catalog.
type CatalogHandler struct {
	cfg      *config.Config
	service  *catalog.Service
	resolver *assets.Resolver
	log      zerolog.Logger
}

func NewCatalogHandler(cfg *config.Config, service *catalog.Service, resolver *assets.Resolver, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		cfg:      cfg,
		service:  service,
		resolver: resolver,
		log:      log.With().Str("component", "catalog-handler").Logger(),
	}
}

// GetByID returns one catalog item with its signed banner URL.
func (h *CatalogHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.service.FindByID(ctx, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get media item")
		return
	}

	banner := h.resolver.BannerURL(ctx, item)
	c.JSON(http.StatusOK, responses.BuildMediaItemResponse(item, banner))
}

// Search returns active items whose title contains the query text.
func (h *CatalogHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.service.SearchByTitle(ctx, c.Query("title"))
	if err != nil {
		responses.HandleError(c, err, "failed to search media items")
		return
	}

	c.JSON(http.StatusOK, h.withBanners(c, items))
}

// ByCategory lists active items for a numeric category id. Series collapse
// to one representative card per logical series.
func (h *CatalogHandler) ByCategory(c *gin.Context) {
	ctx := c.Request.Context()

	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"the categoryId parameter must be a number", "")
		return
	}

	items, err := h.service.ListByCategory(ctx, categoryID)
	if err != nil {
		responses.HandleError(c, err, "failed to list media items by category")
		return
	}

	c.JSON(http.StatusOK, h.withBanners(c, items))
}

// Episodes lists a series' episodes grouped by season. An optional season
// query narrows the result to one season; in that view only the first
// episode carries a signed banner and clients reuse it for the whole
// group. The grouped view signs a banner for every episode.
func (h *CatalogHandler) Episodes(c *gin.Context) {
	ctx := c.Request.Context()

	var season *int
	if raw := c.Query("season"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"the season parameter must be a number", "")
			return
		}
		season = &value
	}

	groups, err := h.service.EpisodesBySeries(ctx, c.Param("title"), season)
	if err != nil {
		responses.HandleError(c, err, "failed to list series episodes")
		return
	}

	out := make([]responses.SeasonGroupResponse, 0, len(groups))
	for _, group := range groups {
		episodes := make([]responses.MediaItemResponse, 0, len(group.Episodes))
		for i := range group.Episodes {
			ep := group.Episodes[i]
			banner := ""
			if season == nil || i == 0 {
				banner = h.resolver.BannerURL(ctx, &ep)
			}
			episodes = append(episodes, *responses.BuildMediaItemResponse(&ep, banner))
		}
		out = append(out, responses.SeasonGroupResponse{Season: group.Season, Episodes: episodes})
	}

	c.JSON(http.StatusOK, out)
}

// Play issues a signed playback URL for the requested quality.
func (h *CatalogHandler) Play(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.service.FindByID(ctx, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get media item")
		return
	}

	quality := c.Param("quality")
	url, err := h.resolver.PlaybackURL(ctx, item, quality)
	if err != nil {
		responses.HandleError(c, err, "failed to generate playback url")
		return
	}

	c.JSON(http.StatusOK, responses.PlaybackResponse{
		ID:        item.ID,
		Quality:   quality,
		URL:       url,
		ExpiresIn: int(h.cfg.PresignTTL.Seconds()),
	})
}

// Assets issues signed URLs for the item's secondary assets.
func (h *CatalogHandler) Assets(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.service.FindByID(ctx, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get media item")
		return
	}

	bundle, err := h.resolver.AssetBundle(ctx, item)
	if err != nil {
		responses.HandleError(c, err, "failed to generate asset urls")
		return
	}

	c.JSON(http.StatusOK, responses.AssetBundleResponse{ID: item.ID, Assets: bundle})
}

func (h *CatalogHandler) withBanners(c *gin.Context, items []catalog.MediaItem) []responses.MediaItemResponse {
	ctx := c.Request.Context()
	out := make([]responses.MediaItemResponse, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, *responses.BuildMediaItemResponse(&item, h.resolver.BannerURL(ctx, &item)))
	}
	return out
}
