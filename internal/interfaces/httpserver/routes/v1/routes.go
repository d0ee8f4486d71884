package v1

import (
	"github.com/gin-gonic/gin"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/interfaces/httpserver/handlers"
	"streamvault/catalog-api/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	cfg      *config.Config
}

func NewRoutes(provider *handlers.Provider, cfg *config.Config) *Routes {
	return &Routes{handlers: provider, cfg: cfg}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	group.GET("/media/search", r.handlers.Catalog.Search)
	group.GET("/media/by-category/:categoryId", r.handlers.Catalog.ByCategory)
	group.GET("/media/series/:title/episodes", r.handlers.Catalog.Episodes)
	group.GET("/media/:id", r.handlers.Catalog.GetByID)
	group.GET("/media/:id/play/:quality", r.handlers.Catalog.Play)
	group.GET("/media/:id/assets", r.handlers.Catalog.Assets)

	admin := group.Group("/media")
	admin.Use(middlewares.RequireRole(r.cfg.AdminRole, r.cfg.AuthEnabled))
	admin.POST("", r.handlers.Admin.Create)
	admin.GET("", r.handlers.Admin.ListAll)
	admin.PUT("/:id", r.handlers.Admin.Update)
	admin.PUT("/:id/status", r.handlers.Admin.SetStatus)
}
