package domain

import perr "salus/internal/platform/errors"

// Sentinel errors for batch translation and construction
// callers match these with errors.Is even through wrapping
var (
	// ErrApiKey rejects a missing or blank api key
	ErrApiKey = perr.New(perr.ErrorCodeValidation, "api key is required")

	// ErrSite rejects a missing or blank site
	ErrSite = perr.New(perr.ErrorCodeValidation, "site is required")

	// ErrParent rejects a missing parent event id on kinds that need one
	ErrParent = perr.New(perr.ErrorCodeValidation, "parent event id is required")

	// ErrUUIDVersion rejects event ids that are not version 7
	ErrUUIDVersion = perr.New(perr.ErrorCodeValidation, "event id must be a version 7 uuid")

	// ErrUUIDTimestamp rejects event ids whose embedded timestamp cannot be used
	ErrUUIDTimestamp = perr.New(perr.ErrorCodeValidation, "event id carries an unusable timestamp")

	// ErrTimestampRange rejects events stamped outside the accepted ingest window
	ErrTimestampRange = perr.New(perr.ErrorCodeValidation, "event timestamp is outside the accepted window")

	// ErrEmptyBatch rejects batches with no events
	ErrEmptyBatch = perr.New(perr.ErrorCodeInvalidRequest, "batch must not be empty")

	// ErrSourceNotAllowed rejects events from an unregistered (api key, site) pair
	ErrSourceNotAllowed = perr.New(perr.ErrorCodeInvalidRequest, "event source is not registered")

	// ErrRequestHeaders rejects requests missing required source headers
	ErrRequestHeaders = perr.New(perr.ErrorCodeInvalidRequest, "request headers are incomplete")

	// ErrRequestBody rejects payload records that cannot be translated
	ErrRequestBody = perr.New(perr.ErrorCodeInvalidRequest, "request body is malformed")
)
