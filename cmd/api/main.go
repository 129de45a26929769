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

	_ "github.com/noah-isme/sma-internship-api/api/swagger"
	"github.com/noah-isme/sma-internship-api/internal/handler"
	"github.com/noah-isme/sma-internship-api/internal/middleware"
	"github.com/noah-isme/sma-internship-api/internal/models"
	"github.com/noah-isme/sma-internship-api/internal/repository"
	"github.com/noah-isme/sma-internship-api/internal/service"
	"github.com/noah-isme/sma-internship-api/pkg/cache"
	"github.com/noah-isme/sma-internship-api/pkg/config"
	"github.com/noah-isme/sma-internship-api/pkg/database"
	"github.com/noah-isme/sma-internship-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-internship-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-internship-api/pkg/middleware/requestid"
)

// @title SMA Internship API
// @version 1.0.0
// @description Internship lifecycle, inspection reservations, and cohort reporting
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	graph := models.DefaultStateGraph()
	if cfg.Lifecycle.GraphFile != "" {
		graph, err = models.LoadStateGraph(cfg.Lifecycle.GraphFile)
		if err != nil {
			logr.Sugar().Fatalw("failed to load lifecycle graph", "error", err)
		}
	}

	var cacheRepo service.CacheRepository
	if cfg.Summaries.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close()
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, cfg.Summaries.CacheTTL, logr, cfg.Summaries.CacheEnabled)

	internshipRepo := repository.NewInternshipRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	setRepo := repository.NewSetRepository(db)
	userRepo := repository.NewUserRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validator.New(), logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	lifecycleSvc := service.NewLifecycleService(internshipRepo, graph, metricsSvc, cacheSvc, logr)
	reservationSvc := service.NewReservationService(internshipRepo, userRepo, metricsSvc, cacheSvc, logr)
	summarySvc := service.NewSummaryService(summaryRepo, cacheSvc, logr)
	inspectionSvc := service.NewInspectionService(inspectionRepo, internshipRepo, cacheSvc, logr)
	internshipSvc := service.NewInternshipService(internshipRepo, diaryRepo, logr)
	setSvc := service.NewSetService(setRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	internshipHandler := handler.NewInternshipHandler(internshipSvc, lifecycleSvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	inspectionHandler := handler.NewInspectionHandler(inspectionSvc)
	summaryHandler := handler.NewSummaryHandler(summarySvc)
	setHandler := handler.NewSetHandler(setSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/internships", internshipHandler.List)
	authed.GET("/internships/:id", internshipHandler.Get)
	authed.GET("/internships/:id/next-states", internshipHandler.NextStates)
	authed.PATCH("/internships/:id/state", internshipHandler.ChangeState)
	authed.GET("/internships/:id/diary", internshipHandler.ListDiary)
	authed.POST("/internships/:id/diary", internshipHandler.AddDiaryEntry)
	authed.GET("/internships/:id/inspections", inspectionHandler.List)
	authed.GET("/sets", setHandler.List)
	authed.GET("/sets/:id", setHandler.Get)

	staff := authed.Group("")
	staff.Use(middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))

	staff.PATCH("/internships/:id/highlighted", reservationHandler.SetHighlighted)
	staff.POST("/internships/:id/reservation", reservationHandler.ClaimSingle)
	staff.POST("/reservations/bulk-claim", reservationHandler.BulkClaim)
	staff.POST("/internships/:id/inspections", inspectionHandler.Create)
	staff.DELETE("/inspections/:id", inspectionHandler.Delete)
	staff.GET("/summaries/classrooms", summaryHandler.Classrooms)
	staff.GET("/summaries/companies", summaryHandler.Companies)
	staff.GET("/summaries/kinds", summaryHandler.Kinds)
	staff.GET("/summaries/inspectors", summaryHandler.Inspectors)
	staff.GET("/summaries/reservations", summaryHandler.Reservations)
	staff.GET("/summaries/results", summaryHandler.Results)
	if cfg.Exports.Enabled {
		staff.GET("/summaries/:report/export", summaryHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
