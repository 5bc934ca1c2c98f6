package middleware

import (
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	cacheService *services.CacheService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, cacheService *services.CacheService) *Middleware {
	return &Middleware{
		logger:       logger,
		cfg:          cfg,
		cacheService: cacheService,
	}
}
