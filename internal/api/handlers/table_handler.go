// internal/api/handlers/table_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfab/kpi-dashboard/internal/domain"
	"github.com/lumenfab/kpi-dashboard/internal/service"
)

// TableHandler accepts spreadsheet uploads and exposes which table
// snapshots are currently cached.
type TableHandler struct {
	service *service.ReportService
}

func NewTableHandler(service *service.ReportService) *TableHandler {
	return &TableHandler{service: service}
}

// Upload replaces the cached snapshot for one table kind with the
// uploaded xlsx/csv file.
func (h *TableHandler) Upload(c *gin.Context) {
	kind, ok := domain.ParseTableKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown table kind: " + c.Param("kind")})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field 'file'"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	rows, err := h.service.IngestUpload(c.Request.Context(), kind, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": kind, "rows": rows})
}

// List returns the table kinds with a cached snapshot.
func (h *TableHandler) List(c *gin.Context) {
	kinds, err := h.service.AvailableTables(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": kinds})
}
