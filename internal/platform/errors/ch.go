package errors

// ClickHouse-specific helpers for mapping driver errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"net"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Server exception codes we care about (ClickHouse ErrorCodes.cpp)
const (
	chErrUnknownDatabase           = 81
	chErrUnknownTable              = 60
	chErrReadonly                  = 164
	chErrTooManySimultaneousQuery  = 202
	chErrSocketTimeout             = 209
	chErrNetworkError              = 210
	chErrMemoryLimitExceeded       = 241
	chErrTooManyParts              = 252
	chErrUnknownStatusOfInsert     = 319
	chErrAuthenticationFailed      = 516
	chErrTypeMismatch              = 53
	chErrCannotParseInsertedValue  = 26
	chErrValueOutOfRangeOfDataType = 69
)

// ExtractCHException returns (*clickhouse.Exception, true) if the root cause is a server exception
func ExtractCHException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(Root(err), &ex) {
		return ex, true
	}
	return nil, false
}

// IsCHCode reports whether the error is a ClickHouse exception with the given code
func IsCHCode(err error, code int32) bool {
	ex, ok := ExtractCHException(err)
	return ok && ex.Code == code
}

// IsTooManyParts reports whether the server is pushing back on insert frequency
func IsTooManyParts(err error) bool { return IsCHCode(err, chErrTooManyParts) }

// IsInsertStatusUnknown reports whether an insert may or may not have landed.
// Callers must treat the batch as possibly written (at-least-once)
func IsInsertStatusUnknown(err error) bool { return IsCHCode(err, chErrUnknownStatusOfInsert) }

// CHErrorCode maps a ClickHouse error to an ErrorCode with an ok flag
// !ok means err wasn't a server exception; caller may fall back to generic handling
func CHErrorCode(err error) (ErrorCode, bool) {
	ex, ok := ExtractCHException(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch int(ex.Code) {
	case chErrTypeMismatch, chErrCannotParseInsertedValue, chErrValueOutOfRangeOfDataType:
		// Row shape disagrees with the table schema: a mapping bug, not a transient fault
		return ErrorCodeConversion, true

	case chErrReadonly, chErrTooManySimultaneousQuery, chErrSocketTimeout,
		chErrNetworkError, chErrMemoryLimitExceeded, chErrTooManyParts,
		chErrUnknownStatusOfInsert:
		return ErrorCodeUnavailable, true

	case chErrUnknownDatabase, chErrUnknownTable, chErrAuthenticationFailed:
		return ErrorCodeStorage, true
	}

	return ErrorCodeStorage, true
}

// FromClickhouse wraps a ClickHouse error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromClickhouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := CHErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeStorage, msg)
}

// IsRetryable reports whether a storage error is worth retrying.
// Context cancellation is never retryable; network level failures and
// transient server exceptions are
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	var nerr net.Error
	if stderrs.As(err, &nerr) && nerr.Timeout() {
		return true
	}

	if ex, ok := ExtractCHException(err); ok {
		switch int(ex.Code) {
		case chErrReadonly, chErrTooManySimultaneousQuery, chErrSocketTimeout,
			chErrNetworkError, chErrMemoryLimitExceeded, chErrTooManyParts:
			return true
		}
		return false
	}

	return IsCode(err, ErrorCodeUnavailable)
}
