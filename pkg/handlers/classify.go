package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/contacts"
	"github.com/glytehq/glyte-engine/pkg/icp"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// ClassifyRequest for POST /api/tables/{table}/classify
// Column names are optional; contact detection fills in anything missing.
type ClassifyRequest struct {
	TitleColumn   string `json:"title_column,omitempty"`
	CompanyColumn string `json:"company_column,omitempty"`
}

// ClassifyHandler handles contact detection and ICP classification requests.
type ClassifyHandler struct {
	store  store.Store
	logger *zap.Logger
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(st store.Store, logger *zap.Logger) *ClassifyHandler {
	return &ClassifyHandler{store: st, logger: logger}
}

// RegisterRoutes registers the classify handler's routes on the given mux.
func (h *ClassifyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tables/{table}/contact-detection", h.DetectContacts)
	mux.HandleFunc("POST /api/tables/{table}/classify", h.Classify)
}

// DetectContacts handles GET /api/tables/{table}/contact-detection
// Runs the column-name heuristic over the table's schema and reports whether
// the table looks like a contact list.
func (h *ClassifyHandler) DetectContacts(w http.ResponseWriter, r *http.Request) {
	table, ok := ParseTableName(w, r, h.logger)
	if !ok {
		return
	}

	names, ok := h.columnNames(w, r, table)
	if !ok {
		return
	}

	result := contacts.Detect(names)
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Classify handles POST /api/tables/{table}/classify
// Classifies every row of a contact table into ICP tiers. The title and
// company columns come from the request body, falling back to contact
// detection over the schema.
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	table, ok := ParseTableName(w, r, h.logger)
	if !ok {
		return
	}

	var req ClassifyRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON request body"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
	}

	if req.TitleColumn == "" || req.CompanyColumn == "" {
		names, ok := h.columnNames(w, r, table)
		if !ok {
			return
		}
		detection := contacts.Detect(names)
		if req.TitleColumn == "" {
			req.TitleColumn = detection.TitleColumn
		}
		if req.CompanyColumn == "" {
			req.CompanyColumn = detection.CompanyColumn
		}
	}
	if req.TitleColumn == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "no_title_column", "No title column given or detected; classification needs job titles"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	records, err := h.store.Query(r.Context(),
		fmt.Sprintf("SELECT * FROM %s", sqlutil.QuoteIdent(table)))
	if err != nil {
		h.logger.Error("Failed to read rows for classification",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "classify_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	rows := make([]icp.ContactRow, len(records))
	for i, record := range records {
		row := make(icp.ContactRow, len(record))
		for k, v := range record {
			if v != nil {
				row[k] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}

	result := icp.ClassifyContacts(rows, req.TitleColumn, req.CompanyColumn)

	h.logger.Info("Classified contacts",
		zap.String("table", table),
		zap.Int("total", result.Total),
		zap.Int("classified", result.Classified))

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// columnNames loads a table's column names, writing the error response itself
// on failure.
func (h *ClassifyHandler) columnNames(w http.ResponseWriter, r *http.Request, table string) ([]string, bool) {
	cols, err := h.store.Columns(r.Context(), table)
	if err != nil {
		if errors.Is(err, apperrors.ErrTableNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "table_not_found", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, false
		}
		h.logger.Error("Failed to read columns",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "read_columns_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names, true
}
