package ranking_test

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/pkg/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

var header = []string{"ID", " Nombre ", "Equipo que integra en la competencia", "PUNTOS ACUMULADOS "}

func TestRanker_Rank(t *testing.T) {
	Convey("Given a ranker with default options", t, func() {
		r := ranking.New()

		Convey("When ranking the reference table", func() {
			tbl := tabular.Table{
				Header: header,
				Rows: [][]string{
					{"1", "Ana", "Tandem", "50"},
					{"2", "Eva", "Cartera Propia", "75"},
					{"X", "header", "", ""},
				},
			}
			st, err := r.Rank(tbl)

			Convey("Then the stray row should be dropped and the rest ranked", func() {
				So(err, ShouldBeNil)
				So(st.Rows, ShouldHaveLength, 2)
				So(st.Rows[0].Name, ShouldEqual, "Eva")
				So(st.Rows[0].Points, ShouldEqual, 75)
				So(st.Rows[0].Label, ShouldEqual, ranking.MedalGold)
				So(st.Rows[1].Name, ShouldEqual, "Ana")
				So(st.Rows[1].Label, ShouldEqual, ranking.MedalSilver)
			})

			Convey("And team totals should name the leader", func() {
				So(st.Teams[0], ShouldResemble, model.TeamTotal{Name: "Tandem", Points: 50, Members: 1})
				So(st.Teams[1], ShouldResemble, model.TeamTotal{Name: "Cartera Propia", Points: 75, Members: 1, Leading: true})
				So(st.Leader, ShouldEqual, "Cartera Propia")
				So(st.Total, ShouldEqual, 125)
			})
		})

		Convey("When the points column is missing", func() {
			tbl := tabular.Table{
				Header: []string{"ID", "Nombre"},
				Rows:   [][]string{{"1", "Ana"}},
			}
			_, err := r.Rank(tbl)

			Convey("Then the error should name the column", func() {
				So(errors.Is(err, ranking.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "PUNTOS ACUMULADOS")
			})
		})

		Convey("When the identifier column is missing", func() {
			tbl := tabular.Table{
				Header: []string{"Nombre", "PUNTOS ACUMULADOS"},
				Rows:   [][]string{{"Ana", "1"}},
			}
			_, err := r.Rank(tbl)

			Convey("Then the error should name the identifier column", func() {
				var mc *ranking.MissingColumnError
				So(errors.As(err, &mc), ShouldBeTrue)
				So(mc.Column, ShouldEqual, "ID")
			})
		})

		Convey("When no row has a numeric identifier", func() {
			tbl := tabular.Table{
				Header: header,
				Rows:   [][]string{{"01/03/2025", "", "", ""}, {"", "total", "", "999"}},
			}
			_, err := r.Rank(tbl)

			Convey("Then it should report no data", func() {
				So(errors.Is(err, ranking.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When the table is empty", func() {
			_, err := r.Rank(tabular.Table{})

			Convey("Then it should report no data", func() {
				So(errors.Is(err, ranking.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When points are blank, fractional or garbage", func() {
			tbl := tabular.Table{
				Header: header,
				Rows: [][]string{
					{"1", "Ana", "Tandem", ""},
					{"2", "Eva", "Tandem", "12.9"},
					{"3", "Luz", "Tandem", "n/a"},
					{"4.0", "Sol", "Tandem", " 3 "},
				},
			}
			st, err := r.Rank(tbl)

			Convey("Then they should be coerced to integers", func() {
				So(err, ShouldBeNil)
				So(st.Rows[0].Points, ShouldEqual, 12)
				So(st.Rows[1].Points, ShouldEqual, 3)
				So(st.Rows[2].Points, ShouldEqual, 0)
				So(st.Rows[3].Points, ShouldEqual, 0)
			})

			Convey("And ties should keep input order", func() {
				So(st.Rows[2].Name, ShouldEqual, "Ana")
				So(st.Rows[3].Name, ShouldEqual, "Luz")
			})

			Convey("And rank four should render as a numeral", func() {
				So(st.Rows[3].Label, ShouldEqual, "4")
			})
		})

		Convey("When both teams have the same total", func() {
			tbl := tabular.Table{
				Header: header,
				Rows: [][]string{
					{"1", "Ana", "equipo TANDEM", "40"},
					{"2", "Eva", "cartera propia norte", "40"},
				},
			}
			st, err := r.Rank(tbl)

			Convey("Then no team should lead", func() {
				So(err, ShouldBeNil)
				So(st.Leader, ShouldEqual, "")
				So(st.Teams[0].Leading, ShouldBeFalse)
				So(st.Teams[1].Leading, ShouldBeFalse)
			})
		})

		Convey("When counters are present", func() {
			tbl := tabular.Table{
				Header: []string{"ID", "Nombre", "PUNTOS ACUMULADOS", "CLIENTES REACTIVADOS"},
				Rows:   [][]string{{"1", "Ana", "5", "3"}},
			}
			st, err := r.Rank(tbl)

			Convey("Then only the present counters should be carried", func() {
				So(err, ShouldBeNil)
				So(st.Rows[0].Counters, ShouldResemble, []model.Counter{{Name: "CLIENTES REACTIVADOS", Value: "3"}})
			})
		})
	})
}

func TestRanker_Bucket(t *testing.T) {
	Convey("Given a ranker with custom teams", t, func() {
		r := ranking.New(ranking.WithTeams([]string{"Norte", " ", "Sur"}), ranking.WithOtherLabel("Otros"))

		Convey("Then blank team names should be ignored", func() {
			So(r.Teams(), ShouldResemble, []string{"Norte", "Sur"})
		})

		Convey("Then labels should be matched case-insensitively by substring", func() {
			So(r.Bucket("Equipo NORTE"), ShouldEqual, "Norte")
			So(r.Bucket("sur-2"), ShouldEqual, "Sur")
		})

		Convey("Then labels matching neither or both should go to the catch-all", func() {
			So(r.Bucket("Este"), ShouldEqual, "Otros")
			So(r.Bucket(""), ShouldEqual, "Otros")
			So(r.Bucket("Norte y Sur"), ShouldEqual, "Otros")
		})
	})
}

func TestCoercePoints(t *testing.T) {
	Convey("Given points cells", t, func() {
		Convey("Then fractions should truncate toward zero", func() {
			So(ranking.CoercePoints("12.9"), ShouldEqual, 12)
			So(ranking.CoercePoints("-3.7"), ShouldEqual, -3)
			So(ranking.CoercePoints(" 50 "), ShouldEqual, 50)
		})

		Convey("Then blank and unparseable cells should count as zero", func() {
			So(ranking.CoercePoints(""), ShouldEqual, 0)
			So(ranking.CoercePoints("n/a"), ShouldEqual, 0)
			So(ranking.CoercePoints("NaN"), ShouldEqual, 0)
		})

		Convey("Then values beyond 32 bits should be kept", func() {
			So(ranking.CoercePoints("3000000000"), ShouldEqual, 3000000000)
			So(ranking.CoercePoints("-3000000000"), ShouldEqual, -3000000000)
		})

		Convey("Then values beyond the int range should be clamped", func() {
			So(ranking.CoercePoints("1e30"), ShouldEqual, math.MaxInt)
			So(ranking.CoercePoints("-1e30"), ShouldEqual, math.MinInt)
		})
	})
}

func TestLabel(t *testing.T) {
	Convey("Given rank positions", t, func() {
		So(ranking.Label(1), ShouldEqual, "🥇")
		So(ranking.Label(2), ShouldEqual, "🥈")
		So(ranking.Label(3), ShouldEqual, "🥉")
		So(ranking.Label(4), ShouldEqual, "4")
		So(ranking.Label(120), ShouldEqual, "120")
	})
}

func TestRankProperties(t *testing.T) {
	Convey("Given randomly generated tables", t, func() {
		rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic fixtures
		teams := []string{"Tandem", "Cartera Propia", "tandem sur", "Libre", ""}
		r := ranking.New()

		for round := 0; round < 50; round++ {
			tbl := tabular.Table{Header: header}
			validIDs := map[string]bool{}
			sum := 0
			n := 1 + rng.Intn(30)
			for i := 0; i < n; i++ {
				id := strconv.Itoa(i + 1)
				if rng.Intn(5) == 0 {
					id = "nota " + id
				}
				pts := rng.Intn(200) - 20
				tbl.Rows = append(tbl.Rows, []string{id, "c" + id, teams[rng.Intn(len(teams))], strconv.Itoa(pts)})
				if _, ok := ranking.ParseID(id); ok {
					validIDs[id] = true
					sum += pts
				}
			}

			st, err := r.Rank(tbl)
			if len(validIDs) == 0 {
				So(errors.Is(err, ranking.ErrNoData), ShouldBeTrue)
				continue
			}
			So(err, ShouldBeNil)

			// only valid identifiers survive
			So(st.Rows, ShouldHaveLength, len(validIDs))
			for _, row := range st.Rows {
				So(validIDs[row.RawID], ShouldBeTrue)
			}

			// order is non-increasing and labels follow rank
			for i, row := range st.Rows {
				if i > 0 {
					So(row.Points, ShouldBeLessThanOrEqualTo, st.Rows[i-1].Points)
				}
				So(row.Label, ShouldEqual, ranking.Label(i+1))
			}

			// bucket sums add up to the filtered total
			bucketSum := st.Other.Points
			for _, tt := range st.Teams {
				bucketSum += tt.Points
			}
			So(bucketSum, ShouldEqual, st.Total)
			So(st.Total, ShouldEqual, sum)
		}
	})
}

func TestFilterValid(t *testing.T) {
	Convey("Given a table with annotation rows", t, func() {
		tbl := tabular.Table{
			Header: []string{"ID", "Nombre"},
			Rows:   [][]string{{"", "fecha"}, {"7", "Ana"}, {"NaN", "x"}, {" 8 ", "Eva"}},
		}

		Convey("Then only numeric identifiers should remain", func() {
			valid, err := ranking.FilterValid(tbl, "ID")
			So(err, ShouldBeNil)
			So(valid.Len(), ShouldEqual, 2)
			So(valid.Value(0, "Nombre"), ShouldEqual, "Ana")
			So(valid.Value(1, "Nombre"), ShouldEqual, "Eva")
		})
	})
}
