package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Catalogue Catalogue
	Changes   ChangeSource
	Database  *database.Database
	Audit     AuditReader

	// Exports and Backups are nil when the task queue is disabled.
	Exports ExportQueue
	Backups BackupStatus

	// Sessions and CSRF are optional; without them the list screen does not
	// remember its query and forms are unprotected.
	SessionManager *SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// ReadOnly rejects every write, for serving a demo catalogue.
	ReadOnly bool

	Version string
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())
	if cfg.ReadOnly {
		router.Use(ReadOnlyMiddleware())
	}

	// CSRF runs before the session middleware because it replaces the request.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	router.SetHTMLTemplate(loadTemplates())

	health := NewHealthController(cfg.Database, cfg.Backups, cfg.Version)
	books := NewBooksController(cfg.Catalogue)
	ui := NewUIController(cfg.Catalogue, cfg.SessionManager)

	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// UI routes
	router.GET("/", ui.ListPage)
	router.GET("/books/new", ui.NewBookPage)
	router.POST("/books", ui.CreateBook)
	router.GET("/books/:id", ui.BookPage)
	router.GET("/books/:id/edit", ui.EditBookPage)
	router.POST("/books/:id", ui.UpdateBook)
	router.POST("/books/:id/delete", ui.DeleteBook)
	router.POST("/rows/:index/delete", ui.DeleteRow)

	if cfg.Changes != nil {
		router.GET("/events", NewEventsController(cfg.Catalogue, cfg.Changes).Stream)
	}

	api := router.Group("/api", RequireJSONMiddleware())
	api.GET("/books", books.ListBooks)
	api.POST("/books", books.CreateBook)
	api.GET("/books/:id", books.GetBook)
	api.PUT("/books/:id", books.UpdateBook)
	api.DELETE("/books/:id", books.DeleteBook)
	api.GET("/genres", books.ListGenres)
	api.GET("/sort-orders", books.ListSortOrders)

	if cfg.Audit != nil {
		audit := NewAuditController(cfg.Audit)
		api.GET("/audit", audit.GetAuditEvents)
		api.GET("/books/:id/history", audit.GetBookHistory)
	}

	if cfg.Exports != nil {
		exports := NewExportsController(cfg.Exports)
		api.POST("/exports", exports.CreateExport)
		api.GET("/exports/:id", exports.GetExportStatus)
	} else {
		api.POST("/exports", exportsDisabled)
		api.GET("/exports/:id", exportsDisabled)
	}

	return router
}
