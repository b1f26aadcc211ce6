package api

import (
	"context"
	"net/http"

	"github.com/okian/standings/internal/domain/types"
)

// HistoryDependencies defines the interface for reading the history log.
type HistoryDependencies interface {
	History(ctx context.Context, name string) (types.HistoryView, error)
}

// HistoryHandler handles history requests.
type HistoryHandler struct {
	deps HistoryDependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

// HandleGetHistory handles GET /api/history?name=N requests. Without a name
// every entry is returned.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.History(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
