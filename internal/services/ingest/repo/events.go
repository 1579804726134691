package repo

import (
	"context"

	"salus/internal/core/cleanse"
	perr "salus/internal/platform/errors"
	"salus/internal/platform/store"
	"salus/internal/services/ingest/domain"
)

// Events persists event batches into ClickHouse
// every event is authorized and mapped before a single byte is written,
// so a rejected batch leaves no partial rows behind
type Events struct {
	ch      store.Clickhouse
	allowed domain.SourceSet
	san     *cleanse.Sanitizer
}

// NewEvents constructs the recorder against the given seam and source snapshot
func NewEvents(ch store.Clickhouse, allowed domain.SourceSet) *Events {
	if ch == nil {
		panic("ingest repo: nil clickhouse seam")
	}
	return &Events{ch: ch, allowed: allowed, san: cleanse.New()}
}

// SaveBatch implements domain.RecorderPort
func (r *Events) SaveBatch(ctx context.Context, events []domain.Event) (domain.ActionSummary, error) {
	if len(events) == 0 {
		return domain.ActionSummary{}, domain.ErrEmptyBatch
	}

	for _, ev := range events {
		src := ev.Core().Source()
		if !r.allowed.Contains(src) {
			return domain.ActionSummary{}, perr.WithField(domain.ErrSourceNotAllowed, string(src.Site))
		}
	}

	rows := make([][]any, 0, len(events))
	for _, ev := range events {
		row, err := buildRow(r.san, ev)
		if err != nil {
			return domain.ActionSummary{}, err
		}
		rows = append(rows, row)
	}

	if err := r.ch.Insert(ctx, EventTable, rows); err != nil {
		return domain.ActionSummary{}, perr.FromClickhouse(err, "insert event batch")
	}
	return domain.ActionSummary{EventCount: len(rows)}, nil
}
