package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/llm"
	"github.com/glytehq/glyte-engine/pkg/relationships"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// DetectRelationshipsRequest for POST /api/relationships/detect
// Tables may be empty, in which case every user table is considered.
type DetectRelationshipsRequest struct {
	Tables  []string `json:"tables,omitempty"`
	Enhance bool     `json:"enhance,omitempty"`
}

// DetectRelationshipsResponse for POST /api/relationships/detect
type DetectRelationshipsResponse struct {
	Suggestions []relationships.Suggestion `json:"suggestions"`
	Total       int                        `json:"total"`
	Enhanced    bool                       `json:"enhanced"`
}

// RelationshipsHandler handles relationship detection HTTP requests.
type RelationshipsHandler struct {
	store    store.Store
	detector *relationships.Detector
	llm      llm.Client
	logger   *zap.Logger
}

// NewRelationshipsHandler creates a new relationships handler. client may be
// nil, in which case enhancement requests fall back to heuristic results.
func NewRelationshipsHandler(st store.Store, client llm.Client, logger *zap.Logger) *RelationshipsHandler {
	return &RelationshipsHandler{
		store:    st,
		detector: relationships.NewDetector(st, logger),
		llm:      client,
		logger:   logger,
	}
}

// RegisterRoutes registers the relationships handler's routes on the given mux.
func (h *RelationshipsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/relationships/detect", h.Detect)
}

// Detect handles POST /api/relationships/detect
func (h *RelationshipsHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRelationshipsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON request body"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
	}

	tables := req.Tables
	if len(tables) == 0 {
		var err error
		tables, err = h.store.Tables(r.Context())
		if err != nil {
			h.logger.Error("Failed to list tables for detection", zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "list_tables_failed", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
	}

	suggestions, err := h.detector.Detect(r.Context(), tables)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotEnoughTables) {
			if err := ErrorResponse(w, http.StatusBadRequest, "not_enough_tables", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to detect relationships", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "detect_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	enhanced := false
	if req.Enhance && h.llm != nil {
		suggestions = h.detector.EnhanceWithLLM(r.Context(), h.llm, suggestions)
		enhanced = true
	}

	response := DetectRelationshipsResponse{
		Suggestions: suggestions,
		Total:       len(suggestions),
		Enhanced:    enhanced,
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
