package domain

import "context"

// SourceSet is the startup snapshot of registered event sources
type SourceSet map[EventSource]struct{}

// Contains reports whether src is registered
func (s SourceSet) Contains(src EventSource) bool {
	_, ok := s[src]
	return ok
}

// Len returns the number of registered sources
func (s SourceSet) Len() int { return len(s) }

// ActionSummary reports what a persisted batch contained
type ActionSummary struct {
	EventCount int
}

// RecorderPort persists batches all or nothing
type RecorderPort interface {
	SaveBatch(ctx context.Context, events []Event) (ActionSummary, error)
}

// SourcesPort loads the registered source snapshot
type SourcesPort interface {
	LoadSources(ctx context.Context) (SourceSet, error)
}
