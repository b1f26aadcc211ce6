// Package model contains domain models passed between layers.
package model

// Default column names of the published table.
const (
	DefaultIDColumn     = "ID"
	DefaultNameColumn   = "Nombre"
	DefaultTeamColumn   = "Equipo que integra en la competencia"
	DefaultPointsColumn = "PUNTOS ACUMULADOS"
	DefaultDateColumn   = "Fecha"
)

// DefaultCounterColumns are the optional per-competitor counters.
var DefaultCounterColumns = []string{"CLIENTES REACTIVADOS", "CLIENTES 11 MESES"} //nolint:gochecknoglobals // default column set

// Columns names the table columns the leaderboard reads.
type Columns struct {
	ID       string
	Name     string
	Team     string
	Points   string
	Counters []string
	// Date is the history column holding the day/month/year stamp.
	Date string
}

// DefaultColumns returns the column names of the standard export.
func DefaultColumns() Columns {
	return Columns{
		ID:       DefaultIDColumn,
		Name:     DefaultNameColumn,
		Team:     DefaultTeamColumn,
		Points:   DefaultPointsColumn,
		Counters: append([]string(nil), DefaultCounterColumns...),
		Date:     DefaultDateColumn,
	}
}

// HistoryColumns returns the columns copied into each historical entry, in
// output order, date first.
func (c Columns) HistoryColumns() []string {
	cols := []string{c.Date, c.Name, c.Team}
	cols = append(cols, c.Counters...)
	return append(cols, c.Points)
}

// Counter is one optional named counter on a competitor row.
type Counter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Competitor is one valid data row of the published table.
type Competitor struct {
	RawID    string    `json:"id"`
	ID       float64   `json:"-"`
	Name     string    `json:"name"`
	Team     string    `json:"team"`
	Points   int       `json:"points"`
	Counters []Counter `json:"counters,omitempty"`
	// Row is the position of the row in the source table.
	Row int `json:"-"`
}

// Standing is a competitor placed in the ranking.
type Standing struct {
	Competitor
	Rank   int    `json:"rank"`
	Label  string `json:"label"`
	Bucket string `json:"bucket"`
}

// TeamTotal is the derived points sum of one team bucket.
type TeamTotal struct {
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Members int    `json:"members"`
	Leading bool   `json:"leading"`
}

// Standings is the ranked table plus team aggregates.
type Standings struct {
	Rows []Standing `json:"rows"`
	// Teams holds the named buckets in configured order.
	Teams []TeamTotal `json:"teams"`
	Other TeamTotal   `json:"other"`
	// Leader is the name of the leading team, empty on a tie.
	Leader string `json:"leader,omitempty"`
	Total  int    `json:"total"`
}
