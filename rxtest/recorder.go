package rxtest

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/capatazlib/go-streamtest/internal/evlog"
	"github.com/capatazlib/go-streamtest/internal/gate"
	"github.com/capatazlib/go-streamtest/match"
	"github.com/capatazlib/go-streamtest/notification"
)

// Recorder is a stream subscriber that records every notification it gets so
// that tests can make assertions against them. The producer side (OnNext,
// OnError, OnCompleted) may be called from any number of goroutines; the
// assertion side is meant to be used by the test goroutine.
//
// Only one AwaitEvent call may be blocked on a Recorder at a time.
type Recorder[T any] struct {
	events   *evlog.Log[T]
	settings recorderSettings
	rep      reporter
}

// NewRecorder returns a Recorder that reports failed assertions to the given
// TestingT
func NewRecorder[T any](t TestingT, opts ...RecorderOpt) *Recorder[T] {
	settings := defaultRecorderSettings()
	for _, optFn := range opts {
		optFn(&settings)
	}
	log := settings.log.WithField("recorder", settings.name)
	settings.log = log

	return &Recorder[T]{
		events:   evlog.New[T](),
		settings: settings,
		rep: reporter{
			t:       t,
			failNow: settings.failNow,
			log:     log,
		},
	}
}

////////////////////////////////////////////////////////////////////////////////
// producer side

// Notify records the given notification
func (r *Recorder[T]) Notify(n notification.Notification[T]) {
	ix, matched := r.events.Append(n)
	r.settings.metrics.notificationRecorded(r.settings.name, n.Kind())
	if !r.settings.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	r.settings.log.WithFields(logrus.Fields{
		"index":         ix,
		"kind":          n.Kind().String(),
		"await.matched": matched,
	}).Debug(n.String())
}

// OnNext records a value emitted by the stream
func (r *Recorder[T]) OnNext(value T) {
	r.Notify(notification.Next(value))
}

// OnError records the failure that ended the stream
func (r *Recorder[T]) OnError(err error) {
	r.Notify(notification.Error[T](err))
}

// OnCompleted records the successful end of the stream
func (r *Recorder[T]) OnCompleted() {
	r.Notify(notification.Completed[T]())
}

// Notifier returns a callback that records every notification it receives;
// it is handy when the producer reports through a single function
func (r *Recorder[T]) Notifier() func(notification.Notification[T]) {
	return r.Notify
}

////////////////////////////////////////////////////////////////////////////////
// inspection

// Len returns the number of notifications recorded so far
func (r *Recorder[T]) Len() int {
	return r.events.Len()
}

// Snapshot returns a copy of the notifications recorded so far
func (r *Recorder[T]) Snapshot() []notification.Notification[T] {
	return r.events.Snapshot()
}

// HasMatch returns true if any notification recorded so far matches the given
// predicate
func (r *Recorder[T]) HasMatch(pred match.EventP[T]) bool {
	return r.events.HasMatch(pred)
}

// CountMatches returns how many notifications recorded so far match the given
// predicate
func (r *Recorder[T]) CountMatches(pred match.EventP[T]) int {
	return r.events.CountMatches(pred)
}

////////////////////////////////////////////////////////////////////////////////
// assertions

// AssertHasEvent asserts a notification matching the given predicate has been
// recorded. It returns true when the assertion holds.
func (r *Recorder[T]) AssertHasEvent(pred match.EventP[T]) bool {
	r.rep.helper()
	if r.events.HasMatch(pred) {
		return true
	}
	r.rep.fail(
		pred.String(),
		"There was no matching event in the event chain",
		notification.RenderChain(r.events.Snapshot(), notification.NoMark),
	)
	return false
}

// AssertDoesNotHaveEvent asserts no notification matching the given predicate
// has been recorded. On failure the first matching notification is marked on
// the rendered event chain. It returns true when the assertion holds.
func (r *Recorder[T]) AssertDoesNotHaveEvent(pred match.EventP[T]) bool {
	r.rep.helper()
	snapshot := r.events.Snapshot()
	for i, n := range snapshot {
		if pred.Call(n) {
			r.rep.fail(
				"no event matching: "+pred.String(),
				"There was a matching event "+n.String(),
				notification.RenderChain(snapshot, i),
			)
			return false
		}
	}
	return true
}

// AwaitEvent blocks the calling goroutine until the number of recorded
// notifications matching the given predicate reaches the WithTimes option
// (1 by default). Notifications recorded before the call count towards this
// number; when there are enough of them AwaitEvent returns right away.
//
// When the timeout (see WithTimeout and WithDefaultTimeout) is reached first,
// the failure is reported to the test and an *AwaitTimeoutError is returned.
//
// When the given context is done first, AwaitEvent returns an
// *AwaitInterruptedError that wraps the context error; this is not reported as
// an assertion failure.
func (r *Recorder[T]) AwaitEvent(
	ctx context.Context,
	pred match.EventP[T],
	opts ...AwaitOpt,
) error {
	r.rep.helper()

	settings := awaitSettings{
		times:   1,
		timeout: r.settings.defaultTimeout,
	}
	for _, optFn := range opts {
		optFn(&settings)
	}

	log := r.settings.log.WithFields(logrus.Fields{
		"await.predicate": pred.String(),
		"await.times":     settings.times,
		"await.timeout":   settings.timeout,
	})

	start := time.Now()
	// the gate is installed before the log lock is released, any matching
	// notification recorded from now on is offered to it
	g, armed := r.events.Arm(pred, settings.times, start.Add(settings.timeout))
	if !armed {
		r.settings.metrics.waitFinished(r.settings.name, waitImmediate, 0)
		log.Debug("await satisfied by recorded events")
		return nil
	}
	defer r.events.Disarm(g)

	log.WithField("await.remaining", g.Remaining()).Debug("await armed")
	state := g.Wait(ctx)
	elapsed := time.Since(start)

	switch state {
	case gate.Satisfied:
		r.settings.metrics.waitFinished(r.settings.name, waitSatisfied, elapsed)
		log.WithField("await.elapsed", elapsed).Debug("await satisfied")
		return nil

	case gate.Interrupted:
		r.settings.metrics.waitFinished(r.settings.name, waitInterrupted, elapsed)
		err := &AwaitInterruptedError{
			recorderName: r.settings.name,
			predDesc:     pred.String(),
			remaining:    g.Remaining(),
			err:          errors.Wrapf(ctx.Err(), "await of %s interrupted", pred.String()),
		}
		log.WithFields(logrus.Fields(err.KVs())).Warn("await interrupted")
		return err

	default:
		r.settings.metrics.waitFinished(r.settings.name, waitExpired, elapsed)
		err := &AwaitTimeoutError{
			recorderName: r.settings.name,
			predDesc:     pred.String(),
			times:        settings.times,
			remaining:    g.Remaining(),
			timeout:      settings.timeout,
		}
		log.WithFields(logrus.Fields(err.KVs())).Warn("await timed out")
		r.rep.fail(
			pred.String(),
			"Timed out waiting for event",
			notification.RenderChain(r.events.Snapshot(), notification.NoMark),
		)
		return err
	}
}

// BeginAssertionChain returns a Chain that walks the notifications recorded
// at the time of this call. Notifications recorded afterwards are not visible
// to the Chain; use AwaitEvent first when the stream is produced on other
// goroutines.
func (r *Recorder[T]) BeginAssertionChain() *Chain[T] {
	return newChain(r.events.Snapshot(), r.rep)
}
