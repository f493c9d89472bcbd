package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/request"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/aquaflow/sachet-api/pkg/printer"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := period.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestParseRangeMakesEndInclusive(t *testing.T) {
	r, err := parseRange(request.DateRangeQuery{StartDate: "2026-10-01", EndDate: "2026-10-02"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	day := mustDate(t, "2026-10-01")
	if !r.From.Equal(day) || !r.To.Equal(day) {
		t.Fatalf("expected the single day 2026-10-01, got %s", r)
	}
}

func TestParseRangeOpenBounds(t *testing.T) {
	r, err := parseRange(request.DateRangeQuery{StartDate: "2026-10-01"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !r.To.IsZero() {
		t.Fatalf("missing endDate must leave the range open, got %s", r)
	}

	r, err = parseRange(request.DateRangeQuery{})
	if err != nil || !r.Unbounded() {
		t.Fatalf("expected an unbounded range, got %s (%v)", r, err)
	}
}

func TestParseRangeRejects(t *testing.T) {
	tests := []struct {
		name  string
		query request.DateRangeQuery
		field string
	}{
		{"bad start", request.DateRangeQuery{StartDate: "01/10/2026"}, "startDate"},
		{"bad end", request.DateRangeQuery{EndDate: "tomorrow"}, "endDate"},
		{"empty window", request.DateRangeQuery{StartDate: "2026-10-02", EndDate: "2026-10-02"}, "endDate"},
		{"reversed", request.DateRangeQuery{StartDate: "2026-10-05", EndDate: "2026-10-01"}, "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRange(tt.query)
			appErr := apperror.GetAppError(err)
			if err == nil || appErr.Code != http.StatusBadRequest {
				t.Fatalf("expected a 400, got %v", err)
			}
			if len(appErr.Errors) == 0 || appErr.Errors[0].Field != tt.field {
				t.Fatalf("expected field %s, got %+v", tt.field, appErr.Errors)
			}
		})
	}
}

func TestReportWindowDefaultsToPeriodOfAnchor(t *testing.T) {
	h := &ReportHandler{now: func() time.Time { return mustDate(t, "2026-10-16") }}

	kind, r, err := h.reportWindow(&request.ReportQuery{Period: "weekly"})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if kind != period.Weekly || !r.From.Equal(mustDate(t, "2026-10-12")) || !r.To.Equal(mustDate(t, "2026-10-18")) {
		t.Fatalf("unexpected window %s %s", kind, r)
	}

	kind, r, err = h.reportWindow(&request.ReportQuery{Anchor: "2026-02-10"})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if kind != period.Monthly || !r.To.Equal(mustDate(t, "2026-02-28")) {
		t.Fatalf("expected February, got %s %s", kind, r)
	}

	if _, _, err := h.reportWindow(&request.ReportQuery{Period: "fortnightly"}); err == nil {
		t.Fatalf("expected an error for an unknown period")
	}
}

func TestReportWindowExplicitDates(t *testing.T) {
	h := &ReportHandler{now: time.Now}
	kind, r, err := h.reportWindow(&request.ReportQuery{
		DateRangeQuery: request.DateRangeQuery{StartDate: "2026-10-01", EndDate: "2026-11-01"},
	})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if kind != period.Custom || r.Days() != 31 {
		t.Fatalf("expected a 31 day custom window, got %s %s", kind, r)
	}
}

func TestPathIDRejectsMalformedID(t *testing.T) {
	router := gin.New()
	router.GET("/sales/:id", func(c *gin.Context) {
		if _, ok := pathID(c, "id"); ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTrendRejectsMalformedPoints(t *testing.T) {
	h := &ReportHandler{now: time.Now}

	router := gin.New()
	router.GET("/reports/trend", h.Trend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/trend?period=daily&points=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestQueryRangeRejectsMalformedDate(t *testing.T) {
	router := gin.New()
	router.GET("/sales", func(c *gin.Context) {
		if _, ok := queryRange(c); ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales?startDate=16-10-2026", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTestPrintWithoutPrinterReturnsReceipt(t *testing.T) {
	svc := service.NewPrinterService(printer.Discard{}, nil, "Clear Springs", "none", 32)
	h := NewPrinterHandler(svc)

	router := gin.New()
	router.POST("/printer/test", h.TestPrint)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/printer/test", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Printed bool `json:"printed"`
			Receipt struct {
				BusinessName string `json:"businessName"`
			} `json:"receipt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data.Printed || body.Data.Receipt.BusinessName != "Clear Springs" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
