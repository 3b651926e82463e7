package rxtest

import (
	"fmt"
	"time"
)

// ErrKVs is an utility interface used to get key-values out of rxtest errors
type ErrKVs interface {
	KVs() map[string]interface{}
}

// AwaitTimeoutError is returned by AwaitEvent when the expected number of
// matching notifications was not recorded before the timeout. The failure is
// also reported to the test.
type AwaitTimeoutError struct {
	recorderName string
	predDesc     string
	times        int
	remaining    int
	timeout      time.Duration
}

func (err *AwaitTimeoutError) Error() string {
	return fmt.Sprintf(
		"timed out after %v waiting for %d event(s) matching: %s",
		err.timeout,
		err.times,
		err.predDesc,
	)
}

// Remaining returns how many matches were still missing when the wait expired
func (err *AwaitTimeoutError) Remaining() int {
	return err.remaining
}

// KVs returns a metadata map for structured logging
func (err *AwaitTimeoutError) KVs() map[string]interface{} {
	return map[string]interface{}{
		"recorder.name":   err.recorderName,
		"await.predicate": err.predDesc,
		"await.times":     err.times,
		"await.remaining": err.remaining,
		"await.timeout":   err.timeout,
		"await.failure":   "timeout",
	}
}

// AwaitInterruptedError is returned by AwaitEvent when the given context was
// done before enough matching notifications were recorded. It wraps the
// context error, so errors.Is(err, context.Canceled) works as expected. This
// error is not reported to the test as an assertion failure.
type AwaitInterruptedError struct {
	recorderName string
	predDesc     string
	remaining    int
	err          error
}

func (err *AwaitInterruptedError) Error() string {
	return err.err.Error()
}

// Unwrap returns the context error that interrupted the wait
func (err *AwaitInterruptedError) Unwrap() error {
	return err.err
}

// Remaining returns how many matches were still missing when the wait got
// interrupted
func (err *AwaitInterruptedError) Remaining() int {
	return err.remaining
}

// KVs returns a metadata map for structured logging
func (err *AwaitInterruptedError) KVs() map[string]interface{} {
	return map[string]interface{}{
		"recorder.name":   err.recorderName,
		"await.predicate": err.predDesc,
		"await.remaining": err.remaining,
		"await.failure":   "interrupted",
		"await.error":     err.err,
	}
}
