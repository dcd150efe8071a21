package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/tutorlane/tutor-admin-api/api/swagger"
	"github.com/tutorlane/tutor-admin-api/internal/handler"
	"github.com/tutorlane/tutor-admin-api/internal/repository"
	"github.com/tutorlane/tutor-admin-api/internal/service"
	"github.com/tutorlane/tutor-admin-api/pkg/cache"
	"github.com/tutorlane/tutor-admin-api/pkg/config"
	"github.com/tutorlane/tutor-admin-api/pkg/database"
	"github.com/tutorlane/tutor-admin-api/pkg/logger"
)

// @title Tutor Admin API
// @version 1.0.0
// @description Administration backend for a multi-branch tutoring business
// @BasePath /api
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, report caching disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Reports.CacheTTL, logr, cfg.Reports.CacheEnabled)
	}

	validate := validator.New()

	branchRepo := repository.NewBranchRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	reportSvc := service.NewReportService(enrollmentRepo, cacheSvc, logr)

	svcs := handler.Services{
		Branches:    service.NewBranchService(branchRepo, validate, logr),
		Subjects:    service.NewSubjectService(subjectRepo, validate, logr),
		Courses:     service.NewCourseService(courseRepo, subjectRepo, validate, logr),
		Students:    service.NewStudentService(studentRepo, validate, logr),
		Enrollments: service.NewEnrollmentService(enrollmentRepo, courseRepo, cacheSvc, validate, logr),
		Sessions:    service.NewSessionService(sessionRepo, attendanceRepo, courseRepo, cacheSvc, validate, logr),
		Reports:     reportSvc,
		Exports:     service.NewExportService(reportSvc),
		Metrics:     metricsSvc,
	}

	r := handler.NewRouter(cfg, logr, svcs)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
