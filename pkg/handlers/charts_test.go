package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/charts"
)

func TestChartsEndpoint(t *testing.T) {
	h := NewChartsHandler(profileStore(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/tables/people/charts", nil)
	req.SetPathValue("table", "people")
	rec := httptest.NewRecorder()
	h.Charts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    ChartsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.TemplateID != "single-dataset" {
		t.Errorf("expected single-dataset template, got %q", resp.Data.TemplateID)
	}
	if len(resp.Data.Charts) == 0 {
		t.Fatal("expected at least one chart")
	}

	// The summary table closes every dashboard at full width.
	last := resp.Data.Charts[len(resp.Data.Charts)-1]
	if last.Type != charts.TypeTable {
		t.Errorf("expected final chart to be a table, got %q", last.Type)
	}
	if last.Width != 12 {
		t.Errorf("expected final chart width 12, got %d", last.Width)
	}
}

func TestChartsEndpointTableNotFound(t *testing.T) {
	h := NewChartsHandler(profileStore(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/tables/missing/charts", nil)
	req.SetPathValue("table", "missing")
	rec := httptest.NewRecorder()
	h.Charts(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
