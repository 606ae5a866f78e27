package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ebp-edu/rubricas-api/api/swagger"
	"github.com/ebp-edu/rubricas-api/internal/ai"
	"github.com/ebp-edu/rubricas-api/internal/handler"
	"github.com/ebp-edu/rubricas-api/internal/repository"
	"github.com/ebp-edu/rubricas-api/internal/service"
	"github.com/ebp-edu/rubricas-api/pkg/cache"
	"github.com/ebp-edu/rubricas-api/pkg/config"
	"github.com/ebp-edu/rubricas-api/pkg/database"
	"github.com/ebp-edu/rubricas-api/pkg/logger"
	corsmiddleware "github.com/ebp-edu/rubricas-api/pkg/middleware/cors"
	metricsmiddleware "github.com/ebp-edu/rubricas-api/pkg/middleware/metrics"
	reqidmiddleware "github.com/ebp-edu/rubricas-api/pkg/middleware/requestid"
	"github.com/ebp-edu/rubricas-api/pkg/storage"
)

// @title Rubricas API
// @version 0.1.0
// @description AI-assisted educational rubric generation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// The generation client is optional. Without a credential the
	// generation endpoints answer with a configuration error while saved
	// rubrics, exports and curriculum lookups keep working.
	var aiClient *ai.Client
	if cfg.AI.Enabled() {
		aiClient, err = ai.NewClient(cfg.AI)
		if err != nil {
			log.Fatalf("failed to init generation client: %v", err)
		}
	} else {
		logr.Warn("GEMINI_API_KEY not set, generation endpoints disabled")
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, saved rubrics disabled", zap.Error(err))
		redisClient = nil
	}
	rubricStore := repository.NewRubricStore(redisClient, cfg.Store.Key)

	var curriculumRepo *repository.CurriculumRepository
	if cfg.Curriculum.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("postgres unavailable, curriculum lookups disabled", zap.Error(err))
		} else {
			defer db.Close() //nolint:errcheck
			curriculumRepo = repository.NewCurriculumRepository(db)
		}
	}

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		log.Fatalf("failed to init export storage: %v", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()
	metrics := service.NewMetricsService()

	storeSvc := service.NewStoreService(rubricStore, cfg.Store.MaxEntries, logr)
	rubricSvc := service.NewRubricService(aiClient, storeSvc, validate, metrics, logr,
		service.RubricConfig{Temperature: cfg.AI.RubricTemperature})
	suggestionSvc := service.NewSuggestionService(aiClient, curriculumRepo, validate, metrics, logr,
		service.SuggestionConfig{Temperature: cfg.AI.SuggestionTemperature})
	exportSvc := service.NewExportService(files, signer, metrics, service.ExportConfig{APIPrefix: cfg.APIPrefix}, logr)
	chatSvc := service.NewChatService(aiClient, logr, cfg.AI.SuggestionTemperature)

	rubricHandler := handler.NewRubricHandler(rubricSvc, storeSvc)
	suggestionHandler := handler.NewSuggestionHandler(suggestionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	curriculumHandler := handler.NewCurriculumHandler(curriculumRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metricsmiddleware.Middleware(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "generation": cfg.AI.Enabled(), "store": redisClient != nil})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		rubrics := api.Group("/rubrics")
		{
			rubrics.POST("/generate", rubricHandler.Generate)
			rubrics.POST("/suggestions", suggestionHandler.Suggest)
			rubrics.POST("/export", exportHandler.Export)
			rubrics.GET("/saved", rubricHandler.List)
			rubrics.POST("/saved", rubricHandler.Save)
			rubrics.GET("/saved/:id", rubricHandler.Get)
			rubrics.PUT("/saved/:id", rubricHandler.Update)
			rubrics.DELETE("/saved/:id", rubricHandler.Delete)
		}
		api.GET("/export/:token", exportHandler.Download)
		api.GET("/curriculum", curriculumHandler.List)
		api.POST("/chat", chatHandler.Chat)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "generation", cfg.AI.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
