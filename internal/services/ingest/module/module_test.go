package module

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	modkit "salus/internal/modkit"
	phttp "salus/internal/platform/net/http"
	"salus/internal/platform/store"
)

// fakePG serves the api_key registry without a database
type fakePG struct {
	pairs [][2]string
}

func (f *fakePG) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePG) Query(context.Context, string, ...any) (store.Rows, error) {
	return &regRows{pairs: f.pairs}, nil
}

func (f *fakePG) QueryRow(context.Context, string, ...any) store.Row { return nil }

func (f *fakePG) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

type regRows struct {
	pairs [][2]string
	idx   int
}

func (r *regRows) Next() bool {
	if r.idx >= len(r.pairs) {
		return false
	}
	r.idx++
	return true
}

func (r *regRows) Scan(dest ...any) error {
	p := r.pairs[r.idx-1]
	*dest[0].(*string) = p[0]
	*dest[1].(*string) = p[1]
	return nil
}

func (r *regRows) Err() error { return nil }
func (r *regRows) Close() {}
func (r *regRows) Columns() []string { return []string{"api_key", "site"} }

type chSpy struct {
	inserts int
	rows    [][]any
}

func (s *chSpy) Insert(_ context.Context, _ string, data any) error {
	s.inserts++
	s.rows, _ = data.([][]any)
	return nil
}

func (s *chSpy) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (s *chSpy) Close() error { return nil }

func v7Now() uuid.UUID {
	ms := time.Now().UnixMilli()
	var id uuid.UUID
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)
	id[6] = 0x70 | 0x0c
	id[7] = 0x11
	id[8] = 0x80 | 0x02
	id[9] = 0x55
	return id
}

func newTestModule(t *testing.T, ch *chSpy) *Module {
	t.Helper()
	deps := modkit.Deps{
		PG: &fakePG{pairs: [][2]string{{"k1", "shop.example.com"}}},
		CH: ch,
	}
	return New(deps).(*Module)
}

func TestModule_NameAndPrefix(t *testing.T) {
	m := newTestModule(t, &chSpy{})
	if m.Name() != "ingest" {
		t.Fatalf("name: got %q", m.Name())
	}
	if m.Prefix() != "/events" {
		t.Fatalf("prefix: got %q", m.Prefix())
	}
	if _, ok := m.Ports().(Ports); !ok {
		t.Fatalf("ports type %T", m.Ports())
	}
}

func TestModule_MountedEndToEnd(t *testing.T) {
	ch := &chSpy{}
	m := newTestModule(t, ch)

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	payload, _ := json.Marshal([]map[string]any{
		{"event_type": "Visitor", "id": v7Now().String()},
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/events", strings.NewReader(string(payload)))
	req.Header.Set("api-key", "k1")
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	w := httptest.NewRecorder()
	r.Mux().ServeHTTP(w, req)

	if w.Code != stdhttp.StatusCreated {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}
	if ch.inserts != 1 || len(ch.rows) != 1 {
		t.Fatalf("clickhouse saw %d inserts with %d rows", ch.inserts, len(ch.rows))
	}
}

func TestModule_UnregisteredSourceIsRejected(t *testing.T) {
	ch := &chSpy{}
	m := newTestModule(t, ch)

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	payload, _ := json.Marshal([]map[string]any{
		{"event_type": "Visitor", "id": v7Now().String()},
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/events", strings.NewReader(string(payload)))
	req.Header.Set("api-key", "k1")
	req.Header.Set("Origin", "https://rogue.example.com")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	w := httptest.NewRecorder()
	r.Mux().ServeHTTP(w, req)

	if w.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	if ch.inserts != 0 {
		t.Fatalf("clickhouse saw %d inserts", ch.inserts)
	}
}
