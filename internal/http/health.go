package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
)

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version,omitempty"`
	Books      *int64            `json:"books,omitempty"`
	NextBackup *time.Time        `json:"next_backup,omitempty"`
	Checks     map[string]string `json:"checks"`
}

// BackupStatus reports on the backup schedule.
type BackupStatus interface {
	IsRunning() bool
	NextBackup() *time.Time
}

type HealthController struct {
	db      *database.Database
	backups BackupStatus
	version string
}

// NewHealthController reports on db and, when not nil, the backup schedule.
func NewHealthController(db *database.Database, backups BackupStatus, version string) *HealthController {
	return &HealthController{
		db:      db,
		backups: backups,
		version: version,
	}
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			health.Status = "unhealthy"
		} else if count, err := h.db.Books().CountBooks(); err != nil {
			checks["database"] = "error: " + err.Error()
			health.Status = "unhealthy"
		} else {
			checks["database"] = "ok"
			health.Books = &count
		}
	} else {
		checks["database"] = "not configured"
	}

	// A stopped schedule is reported but does not make the service unhealthy.
	if h.backups != nil {
		if h.backups.IsRunning() {
			checks["scheduler"] = "running"
			health.NextBackup = h.backups.NextBackup()
		} else {
			checks["scheduler"] = "stopped"
		}
	} else {
		checks["scheduler"] = "disabled"
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Ping handles GET /ping
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
