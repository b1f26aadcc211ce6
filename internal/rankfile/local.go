package rankfile

import (
	"fmt"
	"os"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/pkg/tabular"
)

// ErrUnsupportedFormat is returned for files that are neither delimited text
// nor XLSX workbooks.
var ErrUnsupportedFormat = tabular.ErrUnsupportedFormat

// Local is a table read from disk and ranked.
type Local struct {
	Strategy  string
	Standings model.Standings
}

// loadFile reads path with the same strategies the service uses for uploads.
func loadFile(path string) (tabular.Result, error) {
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied flag
	if err != nil {
		return tabular.Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return tabular.ReadFile(path, f)
}

// rankFile loads and ranks path.
func rankFile(path string, r *ranking.Ranker) (Local, error) {
	res, err := loadFile(path)
	if err != nil {
		return Local{}, err
	}
	st, err := r.Rank(res.Table.TrimHeader())
	if err != nil {
		return Local{}, fmt.Errorf("rank %s: %w", path, err)
	}
	return Local{Strategy: res.Strategy.String(), Standings: st}, nil
}
