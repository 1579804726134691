package repo

import (
	"context"

	"salus/internal/modkit/repokit"
	perr "salus/internal/platform/errors"
	"salus/internal/services/ingest/domain"
)

type (
	// PG is the binder for the postgres backed source registry
	PG struct{}

	// sources reads the registered (api_key, site) pairs
	sources struct{ q repokit.Queryer }
)

// NewSources creates a postgres registry binder
func NewSources() repokit.Binder[domain.SourcesPort] { return PG{} }

// Bind binds a queryer to the registry implementation
func (PG) Bind(q repokit.Queryer) domain.SourcesPort { return &sources{q: q} }

// LoadSources implements domain.SourcesPort
// the snapshot is read once at startup and never refreshed
func (r *sources) LoadSources(ctx context.Context) (domain.SourceSet, error) {
	const sql = `select api_key, site from api_key`

	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStorage, "load event sources")
	}
	defer rows.Close()

	set := make(domain.SourceSet)
	for rows.Next() {
		var key, site string
		if err := rows.Scan(&key, &site); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeStorage, "scan event source")
		}
		src, err := domain.NewEventSource(key, site)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConversion, "registered source is invalid")
		}
		set[src] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStorage, "read event sources")
	}
	return set, nil
}
