package handlers

import (
	"github.com/rs/zerolog"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/domain/assets"
	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/domain/upload"
)

// Provider wires HTTP handlers.
type Provider struct {
	Catalog *CatalogHandler
	Admin   *AdminHandler
}

func NewProvider(cfg *config.Config, catalogService *catalog.Service, resolver *assets.Resolver, uploader *upload.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Catalog: NewCatalogHandler(cfg, catalogService, resolver, log),
		Admin:   NewAdminHandler(cfg, catalogService, uploader, log),
	}
}
