package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/acalderonq/registro-academico/api/swagger"
	"github.com/acalderonq/registro-academico/internal/handler"
	"github.com/acalderonq/registro-academico/internal/middleware"
	"github.com/acalderonq/registro-academico/internal/repository"
	"github.com/acalderonq/registro-academico/internal/service"
	"github.com/acalderonq/registro-academico/pkg/cache"
	"github.com/acalderonq/registro-academico/pkg/config"
	"github.com/acalderonq/registro-academico/pkg/database"
	"github.com/acalderonq/registro-academico/pkg/logger"
	corsmiddleware "github.com/acalderonq/registro-academico/pkg/middleware/cors"
	reqidmiddleware "github.com/acalderonq/registro-academico/pkg/middleware/requestid"
)

// @title Registro Academico API
// @version 1.0.0
// @description Academic records service: students, courses and enrollments
// @BasePath /
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}
	cancel()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
			redisClient = nil
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, metricsSvc, cfg.Cache.TTL, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, logr)
	exportSvc := service.NewExportService(studentRepo, logr)

	studentHandler := handler.NewStudentHandler(studentSvc, enrollmentSvc, exportSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	students := r.Group("/estudiantes")
	{
		students.GET("", studentHandler.List)
		students.POST("", studentHandler.Create)
		students.GET("/:id", studentHandler.Get)
		students.PUT("/:id", studentHandler.Update)
		students.DELETE("/:id", studentHandler.Delete)
		students.GET("/:id/cursos", studentHandler.Courses)
		students.GET("/:id/horario", studentHandler.ExportSchedule)
		students.POST("/:id/cancelar-semestre", studentHandler.CancelSemester)
	}

	courses := r.Group("/cursos")
	{
		courses.GET("", courseHandler.List)
		courses.POST("", courseHandler.Create)
		courses.GET("/:id", courseHandler.Get)
		courses.PUT("/:id", courseHandler.Update)
		courses.DELETE("/:id", courseHandler.Delete)
		courses.GET("/:id/estudiantes", courseHandler.Students)
	}

	enrollments := r.Group("/matriculas")
	{
		enrollments.POST("", enrollmentHandler.Create)
		enrollments.DELETE("", enrollmentHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
