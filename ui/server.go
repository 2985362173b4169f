package ui

import (
	"net/http"

	"collectorsdream/app"
	"collectorsdream/internal"
	"collectorsdream/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server is the JSON API over the collection service
type Server struct {
	router  *gin.Engine
	service *app.CollectionService
	logger  *internal.Logger
}

// NewServer creates the API server. The gin mode must be set beforehand.
func NewServer(service *app.CollectionService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.NewNopLogger()
	}

	s := &Server{
		router:  gin.New(),
		service: service,
		logger:  logger.Named("api"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.logger))
	s.router.Use(middleware.AccessLog(s.logger))
	s.router.Use(middleware.CORS())
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/test", s.handleTest)

	// Collection items
	api.GET("/collection", s.handleListItems)
	api.POST("/collection", s.handleCreateItem)
	api.GET("/collection/export.xlsx", s.handleExportItems)
	api.POST("/collection/import", s.handleImportItems)
	api.GET("/collection/:id", s.handleGetItem)
	api.PUT("/collection/:id", s.handleUpdateItem)
	api.DELETE("/collection/:id", s.handleDeleteItem)

	// Categories
	api.GET("/categories", s.handleListCategories)
	api.POST("/categories", s.handleSaveCategory)
	api.DELETE("/categories/:key", s.handleDeleteCategory)
	api.GET("/categories/:key/summary", s.handleCategorySummary)

	// Settings
	api.GET("/settings", s.handleGetSettings)
	api.POST("/settings", s.handleSaveSettings)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
}

// Handler returns the API as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is working with new routes"})
}
