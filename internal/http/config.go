package http

import (
	"github.com/mrlokans/bookmarks/internal/audit"
	"github.com/mrlokans/bookmarks/internal/auth"
	"github.com/mrlokans/bookmarks/internal/config"
	"github.com/mrlokans/bookmarks/internal/database"
)

// Auditor records user-visible actions for the audit log.
type Auditor interface {
	LogImport(userID uint, description string, imported, skipped, collectionsCreated int, err error)
	LogDelete(userID uint, entityType string, entityID uint, entityName string)
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	Bookmarks    BookmarkStore
	Collections  CollectionStore
	Importer     BookmarkImporter
	AuditService *audit.Service
	Auditor      Auditor

	// Views served by the bookmarks repository
	Tags             TagStore
	Search           SearchStore
	CollectionCounts CollectionBookmarks

	// Authentication
	AuthService    *auth.Service
	AuthController *auth.AuthController
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
