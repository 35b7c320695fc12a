package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/analyst"
	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/llm"
	"github.com/glytehq/glyte-engine/pkg/profiler"
	"github.com/glytehq/glyte-engine/pkg/sqlutil"
	"github.com/glytehq/glyte-engine/pkg/store"
)

// AskRequest for POST /api/tables/{table}/ask
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse for POST /api/tables/{table}/ask
type AskResponse struct {
	SQL  string           `json:"sql"`
	Rows []map[string]any `json:"rows"`
}

// AskHandler turns natural-language questions into guarded SQL and runs it.
type AskHandler struct {
	store    store.Store
	profiler *profiler.Profiler
	llm      llm.Client
	logger   *zap.Logger
}

// NewAskHandler creates a new ask handler. client may be nil when no AI
// provider is configured; requests then get a 503.
func NewAskHandler(st store.Store, client llm.Client, logger *zap.Logger) *AskHandler {
	return &AskHandler{
		store:    st,
		profiler: profiler.New(st, logger),
		llm:      client,
		logger:   logger,
	}
}

// RegisterRoutes registers the ask handler's routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tables/{table}/ask", h.Ask)
}

// Ask handles POST /api/tables/{table}/ask
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	table, ok := ParseTableName(w, r, h.logger)
	if !ok {
		return
	}

	if h.llm == nil {
		if err := ErrorResponse(w, http.StatusServiceUnavailable, "ai_not_configured", "No AI provider is configured"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must include a question"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	// The question reaches the model prompt verbatim; screen it before it
	// enters the SQL-generation pipeline.
	if err := sqlutil.CheckInjection("question", req.Question); err != nil {
		h.logger.Warn("Rejected question",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadRequest, "question_rejected", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
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
		h.logger.Error("Failed to profile table for question",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "profile_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	systemPrompt := analyst.BuildSystemPrompt(analyst.PromptConfig{Title: table}, profile)
	raw, err := h.llm.GenerateResponse(r.Context(), req.Question, systemPrompt, 0)
	if err != nil {
		h.logger.Error("Model call failed",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "model_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sqlText, err := analyst.GuardSQL(raw)
	if err != nil {
		h.logger.Warn("Rejected generated SQL",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusUnprocessableEntity, "sql_rejected", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	rows, err := h.store.Query(r.Context(), sqlText)
	if err != nil {
		h.logger.Error("Generated query failed",
			zap.String("table", table),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "query_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := AskResponse{SQL: sqlText, Rows: rows}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
