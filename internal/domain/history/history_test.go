package history_test

import (
	"testing"
	"time"

	"github.com/okian/standings/internal/domain/history"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/pkg/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntries(t *testing.T) {
	Convey("Given valid rows without counter columns", t, func() {
		cols := model.DefaultColumns()
		valid := tabular.Table{
			Header: []string{"ID", "Nombre", "Equipo que integra en la competencia", "PUNTOS ACUMULADOS", "Extra"},
			Rows:   [][]string{{"1", "Ana", "Tandem", "50", "x"}},
		}

		Convey("When deriving history entries", func() {
			out := history.Entries(valid, cols, "05/03/2025")

			Convey("Then only present history columns should be kept, date first", func() {
				So(out.Header, ShouldResemble, []string{"Fecha", "Nombre", "Equipo que integra en la competencia", "PUNTOS ACUMULADOS"})
				So(out.Rows, ShouldResemble, [][]string{{"05/03/2025", "Ana", "Tandem", "50"}})
			})
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given a log with entries from two days", t, func() {
		existing := tabular.Table{
			Header: []string{"Fecha", "Nombre", "PUNTOS ACUMULADOS"},
			Rows: [][]string{
				{"04/03/2025", "Ana", "10"},
				{"05/03/2025", "Ana", "20"},
				{"05/03/2025", "Eva", "30"},
			},
		}
		today := tabular.Table{
			Header: []string{"Fecha", "Nombre", "PUNTOS ACUMULADOS"},
			Rows:   [][]string{{"05/03/2025", "Ana", "25"}, {"05/03/2025", "Eva", "35"}},
		}

		Convey("When merging a republish for the same day", func() {
			out := history.Merge(existing, today, "Fecha", "05/03/2025")

			Convey("Then the day's old entries should be replaced", func() {
				So(out.Rows, ShouldResemble, [][]string{
					{"04/03/2025", "Ana", "10"},
					{"05/03/2025", "Ana", "25"},
					{"05/03/2025", "Eva", "35"},
				})
			})

			Convey("And merging the same entries again should be idempotent", func() {
				again := history.Merge(out, today, "Fecha", "05/03/2025")
				So(again, ShouldResemble, out)
			})
		})

		Convey("When new entries carry an extra column", func() {
			withCounter := tabular.Table{
				Header: []string{"Fecha", "Nombre", "CLIENTES REACTIVADOS", "PUNTOS ACUMULADOS"},
				Rows:   [][]string{{"06/03/2025", "Ana", "4", "40"}},
			}
			out := history.Merge(existing, withCounter, "Fecha", "06/03/2025")

			Convey("Then the header should be the union and rows realigned", func() {
				So(out.Header, ShouldResemble, []string{"Fecha", "Nombre", "PUNTOS ACUMULADOS", "CLIENTES REACTIVADOS"})
				So(out.Rows[0], ShouldResemble, []string{"04/03/2025", "Ana", "10", ""})
				So(out.Rows[3], ShouldResemble, []string{"06/03/2025", "Ana", "40", "4"})
			})
		})

		Convey("When the log is empty", func() {
			out := history.Merge(tabular.Table{}, today, "Fecha", "05/03/2025")

			Convey("Then the entries should become the log", func() {
				So(out.Header, ShouldResemble, today.Header)
				So(out.Rows, ShouldHaveLength, 2)
			})
		})
	})
}

func TestFilterAndNames(t *testing.T) {
	Convey("Given a history log", t, func() {
		log := tabular.Table{
			Header: []string{"Fecha", "Nombre"},
			Rows:   [][]string{{"1", "Eva"}, {"1", "ana "}, {"2", "Ana"}, {"2", ""}},
		}

		Convey("Then names should be distinct and sorted", func() {
			So(history.Names(log, "Nombre"), ShouldResemble, []string{"Ana", "Eva", "ana"})
		})

		Convey("Then filtering should ignore case and whitespace", func() {
			So(history.Filter(log, "Nombre", " ANA").Len(), ShouldEqual, 2)
		})

		Convey("Then a blank filter should keep everything", func() {
			So(history.Filter(log, "Nombre", "").Len(), ShouldEqual, 4)
		})
	})
}

func TestStamp(t *testing.T) {
	Convey("Given a calendar date", t, func() {
		day := time.Date(2025, time.March, 5, 23, 59, 0, 0, time.UTC)

		Convey("Then the stamp should be day/month/year", func() {
			So(history.Stamp(day), ShouldEqual, "05/03/2025")
		})
	})
}
