// Package server собирает HTTP-обработчик: gin-маршруты плюс внешние
// net/http-обёртки (CORS, ограничение частоты).
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/valeevte/PurchaseReport/internal/config"
	"github.com/valeevte/PurchaseReport/internal/metrics"
	"github.com/valeevte/PurchaseReport/internal/middleware"
	"github.com/valeevte/PurchaseReport/internal/purchases"
)

// NewRouter возвращает готовый http.Handler для http.Server.
func NewRouter(cfg config.ServerConfig, sec config.SecurityConfig, h *purchases.Handler, m *metrics.Registry) http.Handler {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	h.Register(r)

	var handler http.Handler = r
	if sec.RateLimitReqs > 0 {
		handler = httprate.LimitByIP(sec.RateLimitReqs, sec.RateLimitWindow)(handler)
	}

	origins := sec.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler = cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(handler)

	return handler
}
