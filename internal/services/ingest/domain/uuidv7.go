package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ingest window relative to wall clock at construction time
// both bounds are exclusive
const (
	maxEventAge  = time.Hour
	maxEventSkew = 5 * time.Minute
)

// maxEventUnix caps derived timestamps at 9999-12-31T23:59:59Z
const maxEventUnix = 253402300799

// EventTime derives the event timestamp from a version 7 id
// precision is whole seconds, matching the storage column
func EventTime(id uuid.UUID) (time.Time, error) {
	if id.Version() != 7 {
		return time.Time{}, ErrUUIDVersion
	}
	ms := int64(id[0])<<40 | int64(id[1])<<32 | int64(id[2])<<24 |
		int64(id[3])<<16 | int64(id[4])<<8 | int64(id[5])
	sec := ms / 1000
	if sec > maxEventUnix {
		return time.Time{}, ErrUUIDTimestamp
	}
	return time.Unix(sec, 0).UTC(), nil
}

// WithinIngestRange reports whether ts lies strictly inside (now-1h, now+5m)
func WithinIngestRange(ts, now time.Time) bool {
	return ts.After(now.Add(-maxEventAge)) && ts.Before(now.Add(maxEventSkew))
}
