package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-finder/internal/config"
	"hospital-finder/internal/database"
	"hospital-finder/internal/handler"
	"hospital-finder/internal/middleware"
	"hospital-finder/internal/repository"
	"hospital-finder/internal/service"
	"hospital-finder/pkg/logger"
	"hospital-finder/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	logger.InitLogger("hospital-finder", cfg.Server.Env)
	log.Info().Str("dialect", cfg.Query.Dialect).Msg("configuration loaded")

	// 2. Initialize database connection
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	// 3. Initialize repositories and services
	queries := repository.NewQueryBuilder(cfg.Query.Dialect, cfg.Query.LegacySpecialtyFallthrough)
	hospitalRepo := repository.NewHospitalRepo(db, queries)
	hospitalService := service.NewHospitalService(hospitalRepo)

	// 4. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg))

	hospitalHandler := handler.NewHospitalHandler(hospitalService, cfg.Search.RadiusKm)

	// 5. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-finder",
		})
	})

	hospital := r.Group("/hospital")
	{
		hospital.GET("/search", hospitalHandler.SearchByName)
		hospital.GET("/filter", hospitalHandler.FilterHospitals)
		hospital.GET("/near", hospitalHandler.NearbyHospitals)
		hospital.GET("/desc/:id", hospitalHandler.GetHospitalDetail)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 6. Setup graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
