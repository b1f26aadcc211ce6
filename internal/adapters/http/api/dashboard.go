package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/internal/domain/types"
)

// DashboardHandler renders the HTML dashboard.
type DashboardHandler struct {
	standings StandingsDependencies
	history   HistoryDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(standings StandingsDependencies, history HistoryDependencies) *DashboardHandler {
	return &DashboardHandler{standings: standings, history: history}
}

type dashboardPage struct {
	Board   types.Board
	History types.HistoryView
	// Error replaces the ranking table, e.g. when a column is missing.
	Error string
}

// HandleDashboard handles GET / requests. The name query parameter filters
// the history section to one competitor.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var page dashboardPage
	board, err := h.standings.Standings(r.Context())
	switch {
	case errors.Is(err, ranking.ErrMissingColumn):
		page.Error = err.Error()
	case err != nil:
		http.Error(w, Wrap(op, err).Error(), http.StatusInternalServerError)
		return
	}
	page.Board = board

	view, err := h.history.History(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		http.Error(w, Wrap(op, err).Error(), http.StatusInternalServerError)
		return
	}
	page.History = view

	renderPage(w, http.StatusOK, "dashboard.html", page)
}

// renderPage executes a template into a buffer first so a failed render does
// not leave a half-written page.
func renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, WrapKind("api.render", ErrRender, err).Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
