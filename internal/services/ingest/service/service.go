// Package service provides the ingest service implementation
package service

import (
	"context"

	perr "salus/internal/platform/errors"
	dom "salus/internal/services/ingest/domain"
)

// Service accepts translated event batches for persistence
type Service interface {
	Save(ctx context.Context, events []dom.Event) (dom.ActionSummary, error)
}

type service struct {
	rec dom.RecorderPort
}

// New constructs the ingest service with a required recorder
func New(rec dom.RecorderPort) Service {
	if rec == nil {
		panic("ingest service: nil recorder")
	}
	return &service{rec: rec}
}

// Save persists the batch all or nothing
func (s *service) Save(ctx context.Context, events []dom.Event) (dom.ActionSummary, error) {
	if len(events) == 0 {
		return dom.ActionSummary{}, dom.ErrEmptyBatch
	}
	sum, err := s.rec.SaveBatch(ctx, events)
	if err != nil {
		return dom.ActionSummary{}, perr.WithOp(err, "ingest.save")
	}
	return sum, nil
}
