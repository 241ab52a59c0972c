// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lumenfab/kpi-dashboard/internal/api/handlers"
	"github.com/lumenfab/kpi-dashboard/internal/api/middleware"
	"github.com/lumenfab/kpi-dashboard/internal/service"
)

func NewRouter(reportService *service.ReportService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	tableHandler := handlers.NewTableHandler(reportService)
	tableGroup := apiGroup.Group("/tables")
	{
		tableGroup.GET("", tableHandler.List)
		tableGroup.POST("/:kind", tableHandler.Upload)
	}

	reportHandler := handlers.NewReportHandler(reportService)
	reportGroup := apiGroup.Group("/reports")
	{
		reportGroup.GET("", reportHandler.Overview)
		reportGroup.GET("/:name", reportHandler.Get)
		reportGroup.GET("/:name/history", reportHandler.History)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
