package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pdfcompare/docs"
	"pdfcompare/internal/handler"
	"pdfcompare/internal/middleware"
	"pdfcompare/internal/service"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Compare    *handler.CompareHandler
	Comparison *handler.ComparisonHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware. A nil
// authSvc leaves the API unauthenticated.
func Setup(authSvc service.AuthService, corsOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/healthz", "/readyz"))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if authSvc != nil {
		v1.Use(middleware.AuthMiddleware(authSvc))
	}

	v1.POST("/pdf/compare", h.Compare.Compare)

	comparisons := v1.Group("/comparisons")
	comparisons.POST("", h.Compare.Submit)
	comparisons.GET("", h.Comparison.List)
	comparisons.GET("/:id", h.Comparison.GetByID)
	comparisons.GET("/:id/report", h.Comparison.Report)
	comparisons.DELETE("/:id", h.Comparison.Delete)

	return r
}
