package repository

import (
	"context"
	"testing"

	"github.com/okian/standings/pkg/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store with an initial table", t, func() {
		ctx := context.Background()
		initial := tabular.Table{Header: []string{"ID", "Nombre"}, Rows: [][]string{{"1", "Ana"}}}
		s := NewMemoryStore(initial)

		Convey("When nothing has been published", func() {
			snap, err := s.ReadSnapshot(ctx)

			Convey("Then the initial table should be returned", func() {
				So(err, ShouldBeNil)
				So(snap.Source, ShouldEqual, SourceInitial)
				So(snap.Table.Value(0, "Nombre"), ShouldEqual, "Ana")
			})

			Convey("And mutating the result should not touch the store", func() {
				snap.Table.Rows[0][1] = "changed"
				again, _ := s.ReadSnapshot(ctx)
				So(again.Table.Value(0, "Nombre"), ShouldEqual, "Ana")
			})
		})

		Convey("When a snapshot is written", func() {
			So(s.WriteSnapshot(ctx, tabular.Table{Header: []string{"ID", "Nombre"}, Rows: [][]string{{"2", "Eva"}}}), ShouldBeNil)
			snap, err := s.ReadSnapshot(ctx)

			Convey("Then it should take precedence", func() {
				So(err, ShouldBeNil)
				So(snap.Source, ShouldEqual, SourceSnapshot)
				So(snap.Table.Value(0, "Nombre"), ShouldEqual, "Eva")
				So(s.Writes(), ShouldEqual, 1)
			})
		})

		Convey("When history is appended twice on the same day", func() {
			entries := tabular.Table{Header: []string{"Fecha", "Nombre"}, Rows: [][]string{{"05/04/2025", "Ana"}}}
			_, err := s.AppendHistory(ctx, "05/04/2025", entries)
			So(err, ShouldBeNil)
			n, err := s.AppendHistory(ctx, "05/04/2025", entries)

			Convey("Then the day should hold one entry per competitor", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				hist, _ := s.ReadHistory(ctx)
				So(hist.Rows, ShouldResemble, [][]string{{"05/04/2025", "Ana"}})
			})
		})
	})

	Convey("Given an empty memory store", t, func() {
		s := NewMemoryStore(tabular.Table{}).WithMemoryDateColumn("Dia")

		Convey("Then reads should report no source", func() {
			snap, err := s.ReadSnapshot(context.Background())
			So(err, ShouldBeNil)
			So(snap.Source, ShouldEqual, SourceNone)
			So(s.dateColumn, ShouldEqual, "Dia")
		})
	})
}
