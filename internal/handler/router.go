package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	internalmiddleware "github.com/tutorlane/tutor-admin-api/internal/middleware"
	"github.com/tutorlane/tutor-admin-api/internal/service"
	"github.com/tutorlane/tutor-admin-api/pkg/config"
	"github.com/tutorlane/tutor-admin-api/pkg/logger"
	corsmiddleware "github.com/tutorlane/tutor-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tutorlane/tutor-admin-api/pkg/middleware/requestid"
	"github.com/tutorlane/tutor-admin-api/pkg/response"
)

// Services bundles everything the router needs.
type Services struct {
	Branches    *service.BranchService
	Subjects    *service.SubjectService
	Courses     *service.CourseService
	Students    *service.StudentService
	Enrollments *service.EnrollmentService
	Sessions    *service.SessionService
	Reports     *service.ReportService
	Exports     *service.ExportService
	Metrics     *service.MetricsService
}

// NewRouter assembles the Gin engine with all middleware and routes.
func NewRouter(cfg *config.Config, logr *zap.Logger, svcs Services) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(svcs.Metrics))

	r.NoRoute(response.NotFoundRoute)

	metricsHandler := NewMetricsHandler(svcs.Metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	branches := NewBranchHandler(svcs.Branches)
	api.GET("/branches", branches.List)
	api.POST("/branches", branches.Create)
	api.PATCH("/branches/:id", branches.Update)
	api.PATCH("/branches/:id/active", branches.SetActive)

	subjects := NewSubjectHandler(svcs.Subjects)
	api.GET("/subjects", subjects.List)
	api.POST("/subjects", subjects.Create)
	api.PATCH("/subjects/:id", subjects.Update)
	api.PATCH("/subjects/:id/active", subjects.SetActive)
	api.DELETE("/subjects/:id", subjects.Delete)

	courses := NewCourseHandler(svcs.Courses)
	api.GET("/courses", courses.List)
	api.POST("/courses", courses.Create)

	students := NewStudentHandler(svcs.Students)
	api.GET("/students", students.List)
	api.POST("/students", students.Create)
	api.GET("/students/:id", students.Get)
	api.PATCH("/students/:id", students.Update)
	api.PATCH("/students/:id/active", students.SetActive)
	api.GET("/students/:id/enrollments", students.Enrollments)
	api.GET("/students/:id/attendance", students.AttendanceHistory)

	enrollments := NewEnrollmentHandler(svcs.Enrollments)
	api.POST("/enrollments", enrollments.Create)

	sessions := NewSessionHandler(svcs.Sessions)
	api.GET("/sessions", sessions.List)
	api.POST("/sessions", sessions.Create)
	api.GET("/sessions/:id/attendance", sessions.Roster)
	api.POST("/sessions/:id/attendance", sessions.SaveAttendance)

	reports := NewReportHandler(svcs.Reports, svcs.Exports)
	api.GET("/reports/enrollments", reports.Enrollments)
	api.GET("/reports/enrollments/export", reports.Export)

	return r
}
