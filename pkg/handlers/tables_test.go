package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/store"
)

func TestListTables(t *testing.T) {
	mock := &store.Mock{
		TablesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"campaigns", "contacts"}, nil
		},
	}
	h := NewTablesHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    TableListResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Total != 2 {
		t.Errorf("expected total 2, got %d", resp.Data.Total)
	}
	if len(resp.Data.Tables) != 2 || resp.Data.Tables[0] != "campaigns" {
		t.Errorf("unexpected tables: %v", resp.Data.Tables)
	}
}

func TestIngestEndpoint(t *testing.T) {
	mock := &store.Mock{
		IngestFunc: func(ctx context.Context, path, table string) (*store.IngestResult, error) {
			if path != "data/leads.csv" {
				t.Errorf("expected path data/leads.csv, got %q", path)
			}
			if table != "leads" {
				t.Errorf("expected table leads, got %q", table)
			}
			return &store.IngestResult{Rows: 42, Columns: []string{"name", "title"}}, nil
		},
	}
	h := NewTablesHandler(mock, zap.NewNop())

	body, _ := json.Marshal(IngestRequest{Path: "data/leads.csv"})
	req := httptest.NewRequest(http.MethodPost, "/api/tables/leads/ingest", bytes.NewReader(body))
	req.SetPathValue("table", "leads")
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if mock.IngestCalls != 1 {
		t.Errorf("expected 1 ingest call, got %d", mock.IngestCalls)
	}

	var resp struct {
		Success bool               `json:"success"`
		Data    store.IngestResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Rows != 42 {
		t.Errorf("expected 42 rows, got %d", resp.Data.Rows)
	}
}

func TestIngestEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ingestErr  error
		wantStatus int
	}{
		{
			name:       "missing path",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "path outside data dirs",
			body:       `{"path": "/etc/passwd"}`,
			ingestErr:  apperrors.ErrPathNotAllowed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "read-only store",
			body:       `{"path": "data/leads.csv"}`,
			ingestErr:  apperrors.ErrUnsupported,
			wantStatus: http.StatusNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &store.Mock{
				IngestFunc: func(ctx context.Context, path, table string) (*store.IngestResult, error) {
					return nil, tt.ingestErr
				},
			}
			h := NewTablesHandler(mock, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/tables/leads/ingest", bytes.NewReader([]byte(tt.body)))
			req.SetPathValue("table", "leads")
			rec := httptest.NewRecorder()
			h.Ingest(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
