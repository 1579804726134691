package repo

import (
	"context"
	"errors"
	"testing"

	perr "salus/internal/platform/errors"
	"salus/internal/platform/store"
	"salus/internal/services/ingest/domain"
)

// fakeQueryer serves canned source rows for LoadSources
type fakeQueryer struct {
	rows     [][2]string
	queryErr error
	rowsErr  error
	gotSQL   string
}

func (f *fakeQueryer) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQueryer) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.gotSQL = sql
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeSourceRows{rows: f.rows, err: f.rowsErr}, nil
}

func (f *fakeQueryer) QueryRow(context.Context, string, ...any) store.Row { return nil }

type fakeSourceRows struct {
	rows [][2]string
	idx  int
	err  error
}

func (r *fakeSourceRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeSourceRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	*dest[0].(*string) = row[0]
	*dest[1].(*string) = row[1]
	return nil
}

func (r *fakeSourceRows) Err() error { return r.err }
func (r *fakeSourceRows) Close() {}
func (r *fakeSourceRows) Columns() []string { return []string{"api_key", "site"} }

func TestLoadSources_BuildsSnapshot(t *testing.T) {
	q := &fakeQueryer{rows: [][2]string{
		{"k1", "shop.example.com"},
		{" k2 ", " blog.example.com "},
		{"k1", "docs.example.com"},
	}}
	reg := NewSources().Bind(q)

	set, err := reg.LoadSources(context.Background())
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("got %d sources want 3", set.Len())
	}
	trimmed := domain.EventSource{ApiKey: "k2", Site: "blog.example.com"}
	if !set.Contains(trimmed) {
		t.Fatal("expected trimmed pair to be registered")
	}
}

func TestLoadSources_QueryErrorWrapsStorage(t *testing.T) {
	q := &fakeQueryer{queryErr: errors.New("server down")}
	reg := NewSources().Bind(q)

	_, err := reg.LoadSources(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("code: got %v want storage", perr.CodeOf(err))
	}
	if !errors.Is(err, q.queryErr) {
		t.Fatal("cause should be preserved")
	}
}

func TestLoadSources_BlankPairFails(t *testing.T) {
	q := &fakeQueryer{rows: [][2]string{{"k1", "  "}}}
	reg := NewSources().Bind(q)

	_, err := reg.LoadSources(context.Background())
	if !errors.Is(err, domain.ErrSite) {
		t.Fatalf("got %v want ErrSite", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeConversion) {
		t.Fatalf("code: got %v want conversion", perr.CodeOf(err))
	}
}

func TestLoadSources_IterationErrorSurfaces(t *testing.T) {
	q := &fakeQueryer{rowsErr: errors.New("read interrupted")}
	reg := NewSources().Bind(q)

	_, err := reg.LoadSources(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, q.rowsErr) {
		t.Fatal("cause should be preserved")
	}
}
