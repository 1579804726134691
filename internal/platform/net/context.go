// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keySite ctxKey = "site"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, site string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if site != "" {
		ctx = context.WithValue(ctx, keySite, site)
	}
	return ctx
}

// WithSite annotates context with the submitting site once headers parse
func WithSite(ctx context.Context, site string) context.Context {
	if site != "" {
		ctx = context.WithValue(ctx, keySite, site)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// Site returns the submitting site on the context if present
func Site(ctx context.Context) string {
	if v, ok := ctx.Value(keySite).(string); ok {
		return v
	}
	return ""
}
