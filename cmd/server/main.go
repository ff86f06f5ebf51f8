package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dineshd07/audio-spoof-api/docs"
	"github.com/dineshd07/audio-spoof-api/internal/config"
	"github.com/dineshd07/audio-spoof-api/internal/detect"
	"github.com/dineshd07/audio-spoof-api/internal/handlers"
	"github.com/dineshd07/audio-spoof-api/internal/model"
)

// @title          Audio Spoof Detection API
// @version        1.0
// @description    Detects whether uploaded speech is human or AI-generated.

// @host     localhost:8080
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-API-Key

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	scorer, sampleRate, detectorName := loadScorer(cfg, logger)
	if closer, ok := scorer.(interface{ Close() }); ok {
		defer closer.Close()
	}

	thresholds := detect.Thresholds{
		Strong:   cfg.StrongThreshold,
		Moderate: cfg.ModerateThreshold,
	}
	detector := detect.NewDetector(scorer, sampleRate, thresholds)
	handler := handlers.NewHandler(detector, detectorName, logger)

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
	}
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", handlers.HeaderAPIKey},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health)
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.POST("/detect", handlers.APIKeyAuth(cfg.APIKey), handler.Detect)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("server starting",
			"addr", cfg.Addr,
			"detector", detectorName,
			"modelLoaded", detector.Ready(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}

// loadScorer picks the classifier. With a configured model path the ONNX
// session is used; a load failure leaves the service up but not ready
// rather than crashing it. Without a model path the built-in feature-based
// classifier serves instead.
func loadScorer(cfg *config.Config, logger *slog.Logger) (model.Scorer, int, string) {
	if cfg.ModelPath == "" {
		logger.Info("no model configured, using feature-based detection")
		fs := model.NewFeatureScorer(model.DefaultSampleRate)
		return fs, fs.SampleRate(), "feature-based"
	}

	logger.Info("loading model", "path", cfg.ModelPath)
	server, err := model.NewServer(cfg.ModelPath, cfg.ModelMetadataPath)
	if err != nil {
		logger.Error("model load failed, serving unavailable", "error", err)
		return nil, model.DefaultSampleRate, "onnx"
	}
	logger.Info("model loaded",
		"classes", server.Metadata.Classes,
		"sampleRate", server.SampleRate(),
	)
	return server, server.SampleRate(), "onnx"
}
