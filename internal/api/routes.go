package api

import (
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds a gin engine with the middleware stack and all routes.
func NewRouter(cfg config.ServerConfig, workoutService service.WorkoutService, log *logger.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log.WithComponent("http")), MetricsMiddleware(m), CORSMiddleware())
	SetupRoutes(router, cfg, workoutService, m)
	return router
}

func SetupRoutes(
	router *gin.Engine,
	cfg config.ServerConfig,
	workoutService service.WorkoutService,
	m *metrics.Metrics,
) {
	workoutHandler := NewWorkoutHandler(workoutService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	apiGroup := router.Group("/api")
	apiGroup.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))
	{
		// GET /api/workouts - whole collection
		apiGroup.GET("/workouts", workoutHandler.GetWorkouts)
		// POST /api/workouts - replace whole collection
		apiGroup.POST("/workouts", workoutHandler.SaveWorkouts)
	}

	// The built UI bundle is served from everything that is not an API route.
	if cfg.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(cfg.StaticDir))
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				abortWithError(c, http.StatusNotFound, "Not found")
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
	}
}
