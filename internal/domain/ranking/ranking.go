// Package ranking turns a raw competitor table into ordered standings with
// rank labels and team totals.
package ranking

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/pkg/tabular"
)

// Rank labels for the podium.
const (
	MedalGold   = "🥇"
	MedalSilver = "🥈"
	MedalBronze = "🥉"
)

// DefaultOtherLabel names the bucket for team labels matching no known team.
const DefaultOtherLabel = "Other"

// DefaultTeams are the two competing teams.
var DefaultTeams = []string{"Tandem", "Cartera Propia"} //nolint:gochecknoglobals // default team set

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithColumns sets the column names the ranker reads.
func WithColumns(cols model.Columns) Option {
	return func(r *Ranker) {
		r.columns = cols
	}
}

// WithTeams sets the team names labels are bucketed against. Blank names are
// ignored; an empty result keeps the defaults.
func WithTeams(teams []string) Option {
	return func(r *Ranker) {
		cleaned := make([]string, 0, len(teams))
		for _, t := range teams {
			if t = strings.TrimSpace(t); t != "" {
				cleaned = append(cleaned, t)
			}
		}
		if len(cleaned) > 0 {
			r.teams = cleaned
		}
	}
}

// WithOtherLabel sets the name of the catch-all bucket.
func WithOtherLabel(label string) Option {
	return func(r *Ranker) {
		if label != "" {
			r.other = label
		}
	}
}

// Ranker ranks competitor tables.
type Ranker struct {
	columns model.Columns
	teams   []string
	other   string
}

// New creates a Ranker with configuration options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		columns: model.DefaultColumns(),
		teams:   append([]string(nil), DefaultTeams...),
		other:   DefaultOtherLabel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Columns returns the column names the ranker reads.
func (r *Ranker) Columns() model.Columns { return r.columns }

// Teams returns the configured team names.
func (r *Ranker) Teams() []string { return append([]string(nil), r.teams...) }

// Rank filters t to valid rows, orders them by points descending and sums
// points per team bucket.
func (r *Ranker) Rank(t tabular.Table) (model.Standings, error) {
	if t.Empty() || t.Len() == 0 {
		return model.Standings{}, ErrNoData
	}
	t = t.TrimHeader()

	valid, err := FilterValid(t, r.columns.ID)
	if err != nil {
		return model.Standings{}, err
	}
	if !t.Has(r.columns.Points) {
		return model.Standings{}, &MissingColumnError{Column: r.columns.Points}
	}
	if valid.Len() == 0 {
		return model.Standings{}, ErrNoData
	}

	competitors := r.competitors(valid)
	sort.SliceStable(competitors, func(i, j int) bool {
		return competitors[i].Points > competitors[j].Points
	})

	out := model.Standings{
		Rows:  make([]model.Standing, len(competitors)),
		Teams: make([]model.TeamTotal, len(r.teams)),
		Other: model.TeamTotal{Name: r.other},
	}
	for i, name := range r.teams {
		out.Teams[i].Name = name
	}

	for i, c := range competitors {
		bucket := r.Bucket(c.Team)
		out.Rows[i] = model.Standing{
			Competitor: c,
			Rank:       i + 1,
			Label:      Label(i + 1),
			Bucket:     bucket,
		}
		out.Total += c.Points

		total := &out.Other
		for k := range out.Teams {
			if out.Teams[k].Name == bucket {
				total = &out.Teams[k]
				break
			}
		}
		total.Points += c.Points
		total.Members++
	}

	out.Leader = leader(out.Teams)
	for k := range out.Teams {
		out.Teams[k].Leading = out.Teams[k].Name == out.Leader && out.Leader != ""
	}
	return out, nil
}

func (r *Ranker) competitors(valid tabular.Table) []model.Competitor {
	idIdx := valid.Index(r.columns.ID)
	nameIdx := valid.Index(r.columns.Name)
	teamIdx := valid.Index(r.columns.Team)
	pointsIdx := valid.Index(r.columns.Points)

	out := make([]model.Competitor, valid.Len())
	for i := range valid.Rows {
		raw := strings.TrimSpace(valid.Cell(i, idIdx))
		id, _ := ParseID(raw)
		c := model.Competitor{
			RawID:  raw,
			ID:     id,
			Name:   strings.TrimSpace(valid.Cell(i, nameIdx)),
			Team:   strings.TrimSpace(valid.Cell(i, teamIdx)),
			Points: CoercePoints(valid.Cell(i, pointsIdx)),
			Row:    i,
		}
		for _, counter := range r.columns.Counters {
			if idx := valid.Index(counter); idx >= 0 {
				c.Counters = append(c.Counters, model.Counter{
					Name:  counter,
					Value: strings.TrimSpace(valid.Cell(i, idx)),
				})
			}
		}
		out[i] = c
	}
	return out
}

// Bucket classifies a free-text team label. A label containing exactly one
// known team name (case-insensitive) belongs to that team; anything else,
// including a label naming several teams, goes to the catch-all bucket.
func (r *Ranker) Bucket(label string) string {
	lower := strings.ToLower(label)
	match := ""
	for _, team := range r.teams {
		if strings.Contains(lower, strings.ToLower(team)) {
			if match != "" {
				return r.other
			}
			match = team
		}
	}
	if match == "" {
		return r.other
	}
	return match
}

// leader returns the team whose total is strictly greater than every other
// named team, or "" on a tie for first.
func leader(teams []model.TeamTotal) string {
	best := -1
	tied := false
	for i, t := range teams {
		switch {
		case best < 0 || t.Points > teams[best].Points:
			best = i
			tied = false
		case t.Points == teams[best].Points:
			tied = true
		}
	}
	if best < 0 || tied {
		return ""
	}
	return teams[best].Name
}

// Label returns the display label for a 1-based rank.
func Label(rank int) string {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return strconv.Itoa(rank)
	}
}

// ParseID reports whether s is a numeric identifier.
func ParseID(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// CoercePoints parses a points cell, truncating toward zero. Blank or
// unparseable values count as zero; values beyond the int range are clamped.
func CoercePoints(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Trunc(v)
	switch {
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	}
	return int(v)
}

// FilterValid keeps the rows of t whose identifier cell is numeric. Rows such
// as a date line under the header are dropped.
func FilterValid(t tabular.Table, idColumn string) (tabular.Table, error) {
	idx := t.Index(idColumn)
	if idx < 0 {
		return tabular.Table{}, &MissingColumnError{Column: strings.TrimSpace(idColumn)}
	}
	keep := make([]int, 0, t.Len())
	for i := range t.Rows {
		if _, ok := ParseID(t.Cell(i, idx)); ok {
			keep = append(keep, i)
		}
	}
	return t.Select(keep), nil
}
