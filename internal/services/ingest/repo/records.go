// Package repo provides storage access for the ingest service
package repo

import (
	"salus/internal/core/cleanse"
	perr "salus/internal/platform/errors"
	"salus/internal/services/ingest/domain"
)

// EventTable is the columnar destination for ingested events
const EventTable = "EVENT"

// eventTypeCode maps a kind to its storage code
// these values are part of the data contract and never change
func eventTypeCode(k domain.Kind) uint8 {
	switch k {
	case domain.KindVisitor:
		return 1
	case domain.KindSession:
		return 2
	case domain.KindSection:
		return 3
	case domain.KindClick:
		return 4
	default:
		return 0
	}
}

// buildRow maps one event onto the EVENT column order
// (api_key, site, event_type, id, ts, attrs)
func buildRow(san *cleanse.Sanitizer, ev domain.Event) ([]any, error) {
	code := eventTypeCode(ev.Kind())
	if code == 0 {
		return nil, perr.Conversionf("unknown event kind %d", ev.Kind())
	}
	c := ev.Core()
	attrs := ev.Attrs()
	pairs := make([][]any, 0, len(attrs))
	for _, a := range attrs {
		pairs = append(pairs, []any{a.Key, san.Value(a.Value)})
	}
	return []any{
		string(c.ApiKey()),
		string(c.Site()),
		code,
		c.ID().String(),
		c.Timestamp().UTC(),
		pairs,
	}, nil
}
