package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/database"
	"github.com/weatherfav/internal/events"
	"github.com/weatherfav/internal/handler"
	"github.com/weatherfav/internal/middleware"
	"github.com/weatherfav/internal/repository"
	"github.com/weatherfav/internal/service"
	"github.com/weatherfav/internal/weather"
)

// newRouter wires repositories, services and handlers over db.
func newRouter(cfg *config.Config, db *database.Client, publisher events.Publisher, checks []handler.Check) *gin.Engine {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	favoriteRepo := repository.NewFavoriteRepository(db.DB)

	// Initialize services
	credentialService := service.NewCredentialService(userRepo, publisher)
	favoriteService := service.NewFavoriteService(favoriteRepo, publisher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(credentialService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	weatherHandler := handler.NewWeatherHandler(weather.NewClient(cfg.Weather))
	healthHandler := handler.NewHealthHandler(handler.BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}, checks...)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggerMiddleware(),
		middleware.MetricsMiddleware(),
	)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler.RegisterRoutes(router)

	api := router.Group("/api")
	{
		favoriteHandler.RegisterRoutes(api)
		weatherHandler.RegisterRoutes(api)
		healthHandler.RegisterRoutes(api)
	}

	return router
}
