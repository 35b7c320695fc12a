package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// ProfileHandler handles table profiling HTTP requests.
type ProfileHandler struct {
	profiler *profiler.Profiler
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(st store.Store, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiler: profiler.New(st, logger),
		logger:   logger,
	}
}

// RegisterRoutes registers the profile handler's routes on the given mux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tables/{table}/profile", h.Profile)
}

// Profile handles GET /api/tables/{table}/profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Error("Failed to profile table",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "profile_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: profile}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
