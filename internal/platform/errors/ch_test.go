package errors

import (
	"context"
	stderrs "errors"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func chEx(code int32) error {
	return &clickhouse.Exception{Code: code, Name: "test", Message: "test exception"}
}

func TestExtractCHException(t *testing.T) {
	if _, ok := ExtractCHException(nil); ok {
		t.Fatal("nil should not extract")
	}
	if _, ok := ExtractCHException(stderrs.New("plain")); ok {
		t.Fatal("plain error should not extract")
	}

	wrapped := Wrap(chEx(252), ErrorCodeStorage, "insert failed")
	ex, ok := ExtractCHException(wrapped)
	if !ok || ex.Code != 252 {
		t.Fatalf("extract through wrap: ok=%v ex=%+v", ok, ex)
	}
	if !IsTooManyParts(wrapped) {
		t.Fatal("IsTooManyParts should see code 252 through a wrap")
	}
}

func TestCHErrorCode(t *testing.T) {
	cases := []struct {
		name string
		code int32
		want ErrorCode
	}{
		{"type mismatch", 53, ErrorCodeConversion},
		{"cannot parse inserted value", 26, ErrorCodeConversion},
		{"readonly", 164, ErrorCodeUnavailable},
		{"too many simultaneous queries", 202, ErrorCodeUnavailable},
		{"socket timeout", 209, ErrorCodeUnavailable},
		{"network error", 210, ErrorCodeUnavailable},
		{"memory limit", 241, ErrorCodeUnavailable},
		{"too many parts", 252, ErrorCodeUnavailable},
		{"unknown insert status", 319, ErrorCodeUnavailable},
		{"unknown table", 60, ErrorCodeStorage},
		{"unknown database", 81, ErrorCodeStorage},
		{"auth failed", 516, ErrorCodeStorage},
		{"anything else", 999, ErrorCodeStorage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := CHErrorCode(chEx(c.code))
			if !ok || got != c.want {
				t.Fatalf("CHErrorCode(%d) = (%d, %v), want (%d, true)", c.code, got, ok, c.want)
			}
		})
	}

	if _, ok := CHErrorCode(stderrs.New("not an exception")); ok {
		t.Fatal("non-exception should report !ok")
	}
}

func TestFromClickhouse(t *testing.T) {
	if FromClickhouse(nil, "ignored") != nil {
		t.Fatal("nil in, nil out")
	}

	err := FromClickhouse(chEx(60), "save batch")
	if !IsCode(err, ErrorCodeStorage) {
		t.Fatalf("code = %d, want storage", CodeOf(err))
	}

	err = FromClickhouse(chEx(252), "save batch")
	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("code = %d, want unavailable", CodeOf(err))
	}

	err = FromClickhouse(stderrs.New("dial tcp: refused"), "ping")
	if !IsCode(err, ErrorCodeStorage) {
		t.Fatalf("non-exception fallback code = %d, want storage", CodeOf(err))
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatal("nil is not retryable")
	}
	if IsRetryable(context.Canceled) || IsRetryable(context.DeadlineExceeded) {
		t.Fatal("context errors are never retryable")
	}
	if !IsRetryable(chEx(252)) {
		t.Fatal("too many parts should be retryable")
	}
	if !IsRetryable(Wrap(chEx(210), ErrorCodeUnavailable, "insert")) {
		t.Fatal("network error should be retryable through a wrap")
	}
	if IsRetryable(chEx(319)) {
		t.Fatal("unknown insert status must not be blindly retried")
	}
	if IsRetryable(chEx(60)) {
		t.Fatal("unknown table is not retryable")
	}
	if !IsRetryable(Unavailablef("backend warming up")) {
		t.Fatal("unavailable without an exception should be retryable")
	}
	if IsRetryable(Storagef("schema drift")) {
		t.Fatal("storage errors are not retryable")
	}
}
