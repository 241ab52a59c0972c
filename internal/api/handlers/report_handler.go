// internal/api/handlers/report_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenfab/kpi-dashboard/internal/report"
	"github.com/lumenfab/kpi-dashboard/internal/service"
)

// ReportHandler exposes the KPI reports.
type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// asOf resolves the reference date for dormancy math. Tests and
// reproducible runs pass ?as_of=YYYY-MM-DD; the default is today.
func asOf(c *gin.Context) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("as_of"))
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

// Get computes one report from the cached table snapshots.
func (h *ReportHandler) Get(c *gin.Context) {
	ref, err := asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of date, expected YYYY-MM-DD"})
		return
	}

	result, err := h.service.Compute(c.Request.Context(), c.Param("name"), ref)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Overview computes every report whose inputs have been uploaded.
func (h *ReportHandler) Overview(c *gin.Context) {
	ref, err := asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of date, expected YYYY-MM-DD"})
		return
	}

	results, err := h.service.ComputeAll(c.Request.Context(), ref)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// History returns persisted KPI snapshots for one report.
func (h *ReportHandler) History(c *gin.Context) {
	limit := 100
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && v > 0 {
		limit = v
	}

	snapshots, err := h.service.History(c.Request.Context(), c.Param("name"), c.Query("metric"), limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// statusFor maps engine errors onto HTTP statuses: a missing table or
// column is the caller's configuration problem, not a server fault.
func statusFor(err error) int {
	var missingTable *report.MissingTableError
	var missingColumn *report.MissingColumnError
	if errors.As(err, &missingTable) {
		return http.StatusConflict
	}
	if errors.As(err, &missingColumn) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
