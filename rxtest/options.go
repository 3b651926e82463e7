package rxtest

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout is the maximum time AwaitEvent blocks when no WithTimeout
// option is given
const DefaultTimeout = 5 * time.Second

// recorderSettings contains settings and collaborators of a Recorder instance
type recorderSettings struct {
	name           string
	defaultTimeout time.Duration
	failNow        bool
	log            *logrus.Entry
	metrics        *Metrics
}

// RecorderOpt allows clients to tweak the behavior of a Recorder instance
type RecorderOpt func(*recorderSettings)

// WithName sets the name of the recorder; it is used as a field on log entries
// and as a label on metrics (defaults to "recorder").
func WithName(name string) RecorderOpt {
	return func(settings *recorderSettings) {
		settings.name = name
	}
}

// WithDefaultTimeout sets the maximum time AwaitEvent calls of this recorder
// block when they don't specify a WithTimeout option (defaults to 5 seconds).
func WithDefaultTimeout(timeout time.Duration) RecorderOpt {
	return func(settings *recorderSettings) {
		settings.defaultTimeout = timeout
	}
}

// WithFailNow makes every failed assertion stop the running test (via
// FailNow) instead of only flagging it as failed.
func WithFailNow() RecorderOpt {
	return func(settings *recorderSettings) {
		settings.failNow = true
	}
}

// WithLogger sets the logger used to trace recorded notifications, waits and
// failures. By default nothing is logged.
func WithLogger(log *logrus.Entry) RecorderOpt {
	return func(settings *recorderSettings) {
		settings.log = log
	}
}

// WithMetrics reports recorded notifications and wait outcomes to the given
// Metrics
func WithMetrics(metrics *Metrics) RecorderOpt {
	return func(settings *recorderSettings) {
		settings.metrics = metrics
	}
}

// discardLogger returns a logger that drops every entry
func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithFields(logrus.Fields{})
}

func defaultRecorderSettings() recorderSettings {
	return recorderSettings{
		name:           "recorder",
		defaultTimeout: DefaultTimeout,
		log:            discardLogger(),
	}
}

////////////////////////////////////////////////////////////////////////////////

// awaitSettings contains the settings of a single AwaitEvent call
type awaitSettings struct {
	times   int
	timeout time.Duration
}

// AwaitOpt allows clients to tweak a single AwaitEvent call
type AwaitOpt func(*awaitSettings)

// WithTimes sets how many matching notifications need to be recorded before
// AwaitEvent returns (defaults to 1). Matches recorded before the call count
// towards this number.
func WithTimes(times int) AwaitOpt {
	return func(settings *awaitSettings) {
		settings.times = times
	}
}

// WithTimeout sets the maximum time AwaitEvent blocks waiting for matches
func WithTimeout(timeout time.Duration) AwaitOpt {
	return func(settings *awaitSettings) {
		settings.timeout = timeout
	}
}
