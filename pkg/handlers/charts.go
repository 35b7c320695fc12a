package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/charts"
	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// ChartsResponse for GET /api/tables/{table}/charts
type ChartsResponse struct {
	TemplateID string                  `json:"template_id"`
	Score      float64                 `json:"score"`
	Confidence float64                 `json:"confidence"`
	Reason     string                  `json:"reason"`
	Charts     []charts.Recommendation `json:"charts"`
}

// ChartsHandler handles dashboard recommendation HTTP requests.
type ChartsHandler struct {
	profiler *profiler.Profiler
	logger   *zap.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(st store.Store, logger *zap.Logger) *ChartsHandler {
	return &ChartsHandler{
		profiler: profiler.New(st, logger),
		logger:   logger,
	}
}

// RegisterRoutes registers the charts handler's routes on the given mux.
func (h *ChartsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tables/{table}/charts", h.Charts)
}

// Charts handles GET /api/tables/{table}/charts
// Profiles the table, picks the best-matching dashboard template, and returns
// its generated chart set.
func (h *ChartsHandler) Charts(w http.ResponseWriter, r *http.Request) {
	table, ok := ParseTableName(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.profiler.Profile(r.Context(), table)
	if err != nil {
		if errors.Is(err, apperrors.ErrTableNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "table_not_found", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to profile table for charts",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "profile_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	selection := charts.SelectTemplate(profile)
	response := ChartsResponse{
		TemplateID: selection.TemplateID,
		Score:      selection.Score,
		Confidence: selection.Confidence,
		Reason:     selection.Reason,
		Charts:     selection.Template.Generate(profile),
	}

	h.logger.Info("Generated dashboard recommendation",
		zap.String("table", table),
		zap.String("template", selection.TemplateID),
		zap.Int("charts", len(response.Charts)))

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
