package service

import "fmt"

// ErrorKind classifies a fetch failure for the retry loop.
type ErrorKind int

const (
	// ErrorKindTransient covers timeouts, connection failures and retryable
	// server errors. Retried up to the policy's attempt budget.
	ErrorKindTransient ErrorKind = iota
	// ErrorKindFatal covers client errors and malformed response bodies.
	// Never retried.
	ErrorKindFatal
)

// FetchError is a classified failure from a single fetch attempt.
type FetchError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the error should be retried.
func (e *FetchError) Retryable() bool {
	return e.Kind == ErrorKindTransient
}

// classifyStatus maps an HTTP status code to an error kind. Server errors
// are worth retrying; client errors indicate a request we should not repeat.
func classifyStatus(statusCode int) ErrorKind {
	if statusCode >= 500 {
		return ErrorKindTransient
	}
	return ErrorKindFatal
}
