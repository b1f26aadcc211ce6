package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/internal/domain/types"
)

// StandingsDependencies defines the interface for reading the ranked board.
type StandingsDependencies interface {
	Standings(ctx context.Context) (types.Board, error)
}

// StandingsHandler handles standings requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleGetStandings handles GET /api/standings requests.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Standings(r.Context())
	switch {
	case errors.Is(err, ranking.ErrMissingColumn):
		writeError(w, http.StatusUnprocessableEntity, "missing_column", Wrap(op, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, board)
}
