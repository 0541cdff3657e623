package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"mortgagemind/internal/config"
)

// SetupRouter configures and returns a gin engine serving the memory API.
func SetupRouter(h *Handler, cfg *config.AppConfig) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogMiddleware(cfg.App.Name))

	if cfg.Middleware.RateLimiter.Enabled {
		limiter, err := NewRateLimiter(cfg.Middleware.RateLimiter)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		r.Use(RateLimitMiddleware(limiter))
	}

	r.GET("/healthz", h.Health)

	apiV1 := r.Group("/api/v1")
	{
		memory := apiV1.Group("/memory")
		{
			memory.GET("/profile", h.GetProfile)
			memory.POST("/messages", h.RecordTurn)
		}
	}

	return r, nil
}
