package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookmarks/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	bookmarksController := NewBookmarksController(cfg.Bookmarks, cfg.Collections, cfg.Auditor)
	collectionsController := NewCollectionsController(cfg.Collections, cfg.CollectionCounts, cfg.Auditor)
	tagsController := NewTagsController(cfg.Tags)
	searchController := NewSearchController(cfg.Search)
	importController := NewImportController(cfg.Importer, cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Bookmark endpoints
	router.GET("/api/bookmarks", bookmarksController.ListBookmarks)
	router.GET("/api/bookmarks/stats", bookmarksController.GetStats)
	router.GET("/api/bookmarks/:id", bookmarksController.GetBookmark)
	router.POST("/api/bookmarks", bookmarksController.CreateBookmark)
	router.PUT("/api/bookmarks/:id", bookmarksController.UpdateBookmark)
	router.DELETE("/api/bookmarks/:id", bookmarksController.DeleteBookmark)

	// Collection endpoints
	router.GET("/api/collections", collectionsController.ListCollections)
	router.GET("/api/collections/:id", collectionsController.GetCollection)
	router.POST("/api/collections", collectionsController.CreateCollection)
	router.PUT("/api/collections/:id", collectionsController.UpdateCollection)
	router.DELETE("/api/collections/:id", collectionsController.DeleteCollection)

	// Tag endpoints
	router.GET("/api/tags", tagsController.ListTags)
	router.GET("/api/tags/:name/bookmarks", tagsController.GetBookmarksByTag)

	// Search endpoint
	router.GET("/api/search", searchController.Search)

	// Import endpoint
	router.POST("/api/import/bookmarks", importController.Import)

	// Audit log endpoint
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/api/audit", auditController.GetAuditEvents)
	}

	return router
}
