// Package apiserver assembles the HTTP API: routing, middleware and the
// handler dependency graph.
package apiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/apiserver/handlers"
	"github.com/workplan/workplan/pkg/apiserver/middleware"
	"github.com/workplan/workplan/pkg/auth"
	"github.com/workplan/workplan/pkg/config"
	"github.com/workplan/workplan/pkg/eventbus"
	"github.com/workplan/workplan/pkg/planner"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/timeline"
	"github.com/workplan/workplan/pkg/tracker"
	"github.com/workplan/workplan/pkg/workload"
)

type Server struct {
	router *gin.Engine
}

type Deps struct {
	Store  *postgres.Store
	Bus    *eventbus.Bus
	Syncer *tracker.Syncer
	Auth   *config.AuthConfig
	Logger *zap.Logger
}

func NewServer(deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(deps.Logger))

	db := deps.Store.DB()
	employeeRepo := postgres.NewEmployeeRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	epicRepo := postgres.NewEpicRepository(db)

	calculator := workload.NewCalculator(deps.Store)
	recalc := workload.NewRecalculator(deps.Store, deps.Logger)
	allocator := planner.NewAllocator(deps.Store)
	timelineBuilder := timeline.NewBuilder(deps.Store)

	tokens := auth.NewTokenManager([]byte(deps.Auth.JWTSecret), deps.Auth.TokenTTL)

	authHandler := handlers.NewAuthHandler(tokens, deps.Auth, deps.Logger)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, assignmentRepo, calculator, recalc, deps.Logger)
	projectHandler := handlers.NewProjectHandler(projectRepo, assignmentRepo, recalc, deps.Logger)
	assignmentHandler := handlers.NewAssignmentHandler(
		assignmentRepo, employeeRepo, projectRepo, calculator, recalc, deps.Bus, deps.Logger,
	)
	planningHandler := handlers.NewPlanningHandler(allocator, projectRepo, timelineBuilder, deps.Logger)
	statsHandler := handlers.NewStatsHandler(employeeRepo, projectRepo, calculator, deps.Logger)
	epicHandler := handlers.NewEpicHandler(epicRepo, deps.Syncer, deps.Logger)

	// A nil *Bus must stay a nil interface inside the handler.
	var subscriber handlers.EventSubscriber
	if deps.Bus != nil {
		subscriber = deps.Bus
	}
	eventsHandler := handlers.NewEventsHandler(subscriber, deps.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/v1/auth/login", authHandler.Login)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(tokens))
	{
		employees := api.Group("/employees")
		{
			employees.POST("", employeeHandler.Create)
			employees.GET("", employeeHandler.List)
			employees.GET("/stats", statsHandler.EmployeeStats)
			employees.GET("/:id", employeeHandler.Get)
			employees.GET("/:id/workload", employeeHandler.Workload)
			employees.PUT("/:id", employeeHandler.Update)
			employees.DELETE("/:id", employeeHandler.Delete)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/stats", statsHandler.ProjectStats)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		assignments := api.Group("/assignments")
		{
			assignments.POST("", assignmentHandler.Create)
			assignments.GET("", assignmentHandler.List)
			assignments.POST("/suggest", planningHandler.Suggest)
			assignments.GET("/:id", assignmentHandler.Get)
			assignments.PUT("/:id", assignmentHandler.Update)
			assignments.DELETE("/:id", assignmentHandler.Delete)
		}

		timelines := api.Group("/timeline")
		{
			timelines.GET("/employees", planningHandler.EmployeeTimeline)
			timelines.GET("/departments", planningHandler.DepartmentTimeline)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/dashboard", statsHandler.Dashboard)
			stats.GET("/departments/:department/utilization", statsHandler.DepartmentUtilization)
		}

		epics := api.Group("/epics")
		{
			epics.GET("", epicHandler.List)
			epics.GET("/estimates", epicHandler.Estimates)
			epics.GET("/:key", epicHandler.Get)
			epics.POST("/sync", epicHandler.Sync)
		}

		api.GET("/events/stream", eventsHandler.Stream)
	}

	return &Server{router: router}
}

func (s *Server) Handler() http.Handler {
	return s.router
}
