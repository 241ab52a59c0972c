package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lumenfab/kpi-dashboard/internal/cache"
	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewReportService(cache.NewMemoryTableStore(), nil, config.ReportConfig{
		VendorSLADays:     10,
		DeliverySLADays:   15,
		SlowMovingDays:    60,
		DeadStockDays:     365,
		StockRedMaxQty:    50000,
		StockYellowMaxQty: 200000,
		O2CMaxValidDays:   365,
		LocationPrefix:    "LF-",
		RawMaterialGroup:  "RM",
		PackagingGroup:    "PM",
		VendorTargetPct:   95,
	})
	return NewRouter(svc, nil)
}

func uploadCSV(t *testing.T, router *gin.Engine, kind, csv string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", kind+".csv")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tables/"+kind, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("upload %s returned %d: %s", kind, w.Code, w.Body.String())
	}
}

func TestUploadListCompute(t *testing.T) {
	router := newTestRouter()

	uploadCSV(t, router, "sales_orders",
		"No.,Document Date,Completely Shipped,Short Closed\nSO-001,2025-01-10,FALSE,TRUE\n")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list tables returned %d", w.Code)
	}
	var listed struct {
		Tables []string `json:"tables"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode table list: %v", err)
	}
	if len(listed.Tables) != 1 || listed.Tables[0] != "sales_orders" {
		t.Errorf("tables = %v, want [sales_orders]", listed.Tables)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/reports/short_closure?as_of=2025-06-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("compute returned %d: %s", w.Code, w.Body.String())
	}
	var result struct {
		Report  string             `json:"report"`
		Metrics map[string]float64 `json:"metrics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Report != "short_closure" {
		t.Errorf("report = %q, want short_closure", result.Report)
	}
	if got := result.Metrics["Short_Closed"]; got != 1 {
		t.Errorf("Short_Closed = %v, want 1", got)
	}
}

func TestComputeWithoutUploadConflicts(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/short_closure", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("compute without upload returned %d, want 409", w.Code)
	}
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tables/unknown_kind", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown kind returned %d, want 400", w.Code)
	}
}

func TestComputeRejectsBadAsOf(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/reports/short_closure?as_of=yesterday", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad as_of returned %d, want 400", w.Code)
	}
}

func TestMissingColumnIsUnprocessable(t *testing.T) {
	router := newTestRouter()

	// The upload itself is well formed, but the report cannot resolve
	// its required columns against this header.
	uploadCSV(t, router, "sales_orders", "Wrong Header\nvalue\n")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/short_closure", nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing column returned %d, want 422", w.Code)
	}
}
