package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// IngestRequest for POST /api/tables/{table}/ingest
type IngestRequest struct {
	Path string `json:"path"`
}

// TableListResponse for GET /api/tables
type TableListResponse struct {
	Tables []string `json:"tables"`
	Total  int      `json:"total"`
}

// TablesHandler handles table listing and CSV ingestion HTTP requests.
type TablesHandler struct {
	store  store.Store
	logger *zap.Logger
}

// NewTablesHandler creates a new tables handler.
func NewTablesHandler(st store.Store, logger *zap.Logger) *TablesHandler {
	return &TablesHandler{store: st, logger: logger}
}

// RegisterRoutes registers the tables handler's routes on the given mux.
func (h *TablesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tables", h.List)
	mux.HandleFunc("POST /api/tables/{table}/ingest", h.Ingest)
}

// List handles GET /api/tables
func (h *TablesHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.Tables(r.Context())
	if err != nil {
		h.logger.Error("Failed to list tables", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_tables_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := TableListResponse{Tables: tables, Total: len(tables)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Ingest handles POST /api/tables/{table}/ingest
func (h *TablesHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	table, ok := ParseTableName(w, r, h.logger)
	if !ok {
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must include a file path"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.store.Ingest(r.Context(), req.Path, table)
	if err != nil {
		status := http.StatusInternalServerError
		code := "ingest_failed"
		switch {
		case errors.Is(err, apperrors.ErrPathNotAllowed):
			status = http.StatusBadRequest
			code = "path_not_allowed"
		case errors.Is(err, apperrors.ErrUnsupported):
			status = http.StatusNotImplemented
			code = "ingest_unsupported"
		}
		h.logger.Error("Failed to ingest file",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.logger.Info("Ingested file",
		zap.String("table", table),
		zap.Int("rows", result.Rows))

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
