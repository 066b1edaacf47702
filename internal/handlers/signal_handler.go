package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
)

// SignalHandler serves persisted trade signals
type SignalHandler struct {
	signalStorage interfaces.SignalStorage
	logger        arbor.ILogger
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signalStorage interfaces.SignalStorage, logger arbor.ILogger) *SignalHandler {
	return &SignalHandler{
		signalStorage: signalStorage,
		logger:        logger,
	}
}

// ListSignalsHandler returns signal history, optionally filtered by ticker
// GET /api/signals?ticker=GME&limit=20
func (h *SignalHandler) ListSignalsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	signals, err := h.signalStorage.ListSignals(r.Context(), r.URL.Query().Get("ticker"), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list signals")
		WriteError(w, http.StatusInternalServerError, "Failed to list signals")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"signals": signals,
		"count":   len(signals),
	})
}
