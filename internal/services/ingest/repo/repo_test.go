package repo

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"salus/internal/services/ingest/domain"
)

// v7Now hand assembles a version 7 uuid stamped at time.Now
func v7Now(t *testing.T) uuid.UUID {
	t.Helper()
	return v7At(t, time.Now())
}

func v7At(t *testing.T, ts time.Time) uuid.UUID {
	t.Helper()
	ms := ts.UnixMilli()
	var id uuid.UUID
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)
	id[6] = 0x70 | 0x03
	id[7] = 0x9c
	id[8] = 0x80 | 0x14
	id[9] = 0x42
	return id
}

func mustVisitor(t *testing.T, apiKey, site string) domain.Visitor {
	t.Helper()
	v, err := domain.NewVisitor(apiKey, site, v7Now(t))
	if err != nil {
		t.Fatalf("NewVisitor: %v", err)
	}
	return v
}

func mustSession(t *testing.T, apiKey, site string, parent uuid.UUID) domain.Session {
	t.Helper()
	s, err := domain.NewSession(apiKey, site, v7Now(t), parent)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func mustSources(t *testing.T, pairs ...[2]string) domain.SourceSet {
	t.Helper()
	set := make(domain.SourceSet, len(pairs))
	for _, p := range pairs {
		src, err := domain.NewEventSource(p[0], p[1])
		if err != nil {
			t.Fatalf("NewEventSource(%q, %q): %v", p[0], p[1], err)
		}
		set[src] = struct{}{}
	}
	return set
}
