package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportQueue schedules catalogue snapshots on the task queue.
type ExportQueue interface {
	EnqueueExport(format, reason string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

type ExportsController struct {
	queue ExportQueue
}

func NewExportsController(queue ExportQueue) *ExportsController {
	return &ExportsController{queue: queue}
}

type exportRequest struct {
	Format string `json:"format"`
}

// CreateExport handles POST /api/exports
func (ec *ExportsController) CreateExport(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	format, err := exporters.ParseFormat(req.Format)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	taskID, err := ec.queue.EnqueueExport(string(format), "manual")
	if err != nil {
		respondInternalError(c, err, "enqueue export")
		return
	}

	respondAccepted(c, "export queued", gin.H{"task_id": taskID, "format": format})
}

// GetExportStatus handles GET /api/exports/:id
func (ec *ExportsController) GetExportStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "export status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondError(c, http.StatusNotFound, "export not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "status": taskStatusToString(status)})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	default:
		return "not_found"
	}
}

func exportsDisabled(c *gin.Context) {
	respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
}
