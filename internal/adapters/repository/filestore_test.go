package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/pkg/tabular"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewFileStore(
		WithSnapshotPath(filepath.Join(dir, "db_competencia.csv")),
		WithInitialPath(filepath.Join(dir, "Datos.csv")),
		WithHistoryPath(filepath.Join(dir, "data", "historial.csv")),
	)
	return s, dir
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFileStore_ReadSnapshot_NoFiles(t *testing.T) {
	s, _ := newTestStore(t)

	snap, err := s.ReadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != SourceNone {
		t.Errorf("expected source none, got %s", snap.Source)
	}
	if !snap.Table.Empty() {
		t.Errorf("expected empty table, got %v", snap.Table)
	}
}

func TestFileStore_ReadSnapshot_InitialFallback(t *testing.T) {
	s, dir := newTestStore(t)

	// Windows-1252 export with semicolons, as spreadsheet tools produce.
	writeFile(t, filepath.Join(dir, "Datos.csv"), []byte("ID;Nombre;PUNTOS ACUMULADOS\r\n1;Jos\xe9;10\r\n"))

	snap, err := s.ReadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != SourceInitial {
		t.Errorf("expected source initial, got %s", snap.Source)
	}
	if got := snap.Table.Value(0, "Nombre"); got != "José" {
		t.Errorf("expected José, got %q", got)
	}
	if snap.Strategy.Encoding != tabular.Windows1252 || snap.Strategy.Delimiter != ';' {
		t.Errorf("unexpected strategy %s", snap.Strategy)
	}
}

func TestFileStore_ReadSnapshot_SnapshotWins(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(dir, "Datos.csv"), []byte("ID,Nombre\n1,Initial\n"))
	if err := s.WriteSnapshot(ctx, tabular.Table{Header: []string{"ID", "Nombre"}, Rows: [][]string{{"2", "Saved"}}}); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	snap, err := s.ReadSnapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != SourceSnapshot {
		t.Errorf("expected source snapshot, got %s", snap.Source)
	}
	if got := snap.Table.Value(0, "Nombre"); got != "Saved" {
		t.Errorf("expected Saved, got %q", got)
	}
	if snap.Strategy != tabular.Canonical {
		t.Errorf("expected canonical strategy, got %s", snap.Strategy)
	}
}

func TestFileStore_ReadSnapshot_Unparseable(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(dir, "db_competencia.csv"), []byte("just one column\nvalue\n"))

	t.Run("falls back to the initial table", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "Datos.csv"), []byte("ID,Nombre\n1,Ana\n"))
		defer os.Remove(filepath.Join(dir, "Datos.csv"))

		snap, err := s.ReadSnapshot(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Source != SourceInitial {
			t.Errorf("expected source initial, got %s", snap.Source)
		}
	})

	t.Run("soft fails when nothing parses", func(t *testing.T) {
		snap, err := s.ReadSnapshot(ctx)
		if !errors.Is(err, tabular.ErrNoStrategy) {
			t.Fatalf("expected ErrNoStrategy, got %v", err)
		}
		if snap.Source != SourceNone || !snap.Table.Empty() {
			t.Errorf("expected empty snapshot, got %+v", snap)
		}
	})
}

func TestFileStore_ReadSnapshot_BlankFile(t *testing.T) {
	for name, content := range map[string][]byte{
		"zero bytes":      {},
		"whitespace only": []byte("  \r\n\n\t\n"),
	} {
		t.Run(name, func(t *testing.T) {
			s, dir := newTestStore(t)
			writeFile(t, filepath.Join(dir, "Datos.csv"), content)

			snap, err := s.ReadSnapshot(context.Background())
			if !errors.Is(err, tabular.ErrNoStrategy) {
				t.Fatalf("expected ErrNoStrategy, got %v", err)
			}
			if snap.Source != SourceNone || !snap.Table.Empty() {
				t.Errorf("expected empty snapshot, got %+v", snap)
			}
		})
	}

	t.Run("blank snapshot falls back to the initial table", func(t *testing.T) {
		s, dir := newTestStore(t)
		writeFile(t, filepath.Join(dir, "db_competencia.csv"), nil)
		writeFile(t, filepath.Join(dir, "Datos.csv"), []byte("ID,Nombre\n1,Ana\n"))

		snap, err := s.ReadSnapshot(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Source != SourceInitial {
			t.Errorf("expected source initial, got %s", snap.Source)
		}
	})
}

func TestFileStore_SnapshotRoundTrip(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	in := tabular.Table{
		Header: []string{"ID", "Nombre", "Equipo que integra en la competencia", "PUNTOS ACUMULADOS"},
		Rows: [][]string{
			{"1", "Ana, la \"grande\"", "Tandem", "50"},
			{"X", "header", "", ""},
			{"2", "Eva", "Cartera Propia", "75.9"},
			{"3", "Ñandú", "Tandem"},
		},
	}
	if err := s.WriteSnapshot(ctx, in); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "db_competencia.csv"))
	if err != nil {
		t.Fatalf("read raw snapshot: %v", err)
	}
	if !strings.HasPrefix(string(raw), "ID,Nombre,") {
		t.Errorf("expected comma-delimited header, got %q", raw)
	}

	snap, err := s.ReadSnapshot(ctx)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	r := ranking.New()
	want, err := r.Rank(in)
	if err != nil {
		t.Fatalf("rank input: %v", err)
	}
	got, err := r.Rank(snap.Table)
	if err != nil {
		t.Fatalf("rank snapshot: %v", err)
	}
	if len(got.Rows) != len(want.Rows) {
		t.Fatalf("expected %d rows, got %d", len(want.Rows), len(got.Rows))
	}
	for i := range want.Rows {
		if got.Rows[i].RawID != want.Rows[i].RawID || got.Rows[i].Points != want.Rows[i].Points || got.Rows[i].Name != want.Rows[i].Name {
			t.Errorf("row %d: expected %+v, got %+v", i, want.Rows[i].Competitor, got.Rows[i].Competitor)
		}
	}
}

func TestFileStore_AppendHistory(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	entries := tabular.Table{
		Header: []string{"Fecha", "Nombre", "PUNTOS ACUMULADOS"},
		Rows:   [][]string{{"01/03/2025", "Ana", "10"}, {"01/03/2025", "Eva", "20"}},
	}

	n, err := s.AppendHistory(ctx, "01/03/2025", entries)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "historial.csv")); err != nil {
		t.Fatalf("expected history file to be created: %v", err)
	}

	// Same day again replaces instead of duplicating.
	n, err = s.AppendHistory(ctx, "01/03/2025", entries)
	if err != nil {
		t.Fatalf("append again: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 entries after same-day republish, got %d", n)
	}

	next := tabular.Table{
		Header: []string{"Fecha", "Nombre", "PUNTOS ACUMULADOS", "CLIENTES REACTIVADOS"},
		Rows:   [][]string{{"02/03/2025", "Ana", "15", "4"}},
	}
	n, err = s.AppendHistory(ctx, "02/03/2025", next)
	if err != nil {
		t.Fatalf("append next day: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 entries, got %d", n)
	}

	hist, err := s.ReadHistory(ctx)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if !hist.Has("CLIENTES REACTIVADOS") {
		t.Errorf("expected header union, got %v", hist.Header)
	}
	if got := hist.Value(0, "CLIENTES REACTIVADOS"); got != "" {
		t.Errorf("expected blank counter on older entry, got %q", got)
	}
	if got := hist.Value(2, "CLIENTES REACTIVADOS"); got != "4" {
		t.Errorf("expected counter 4, got %q", got)
	}
}

func TestFileStore_ReadHistory_Missing(t *testing.T) {
	s, _ := newTestStore(t)

	hist, err := s.ReadHistory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hist.Empty() {
		t.Errorf("expected empty history, got %v", hist)
	}
}

func TestFileStore_WriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, []byte("x"))

	s := NewFileStore(WithSnapshotPath(filepath.Join(blocker, "db.csv")))
	err := s.WriteSnapshot(context.Background(), tabular.Table{Header: []string{"a", "b"}})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}
