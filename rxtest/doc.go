/*
Package rxtest offers a stream subscriber that records every notification it
gets, and assertions to verify those notifications from a test.

Streams are usually produced on goroutines other than the one running the test,
which makes it tricky to know when it is safe to assert. The Recorder deals with
this by letting the test block until the notifications it cares about arrive,
and by taking snapshots for in-order assertions.

Recorder

A Recorder is created with the TestingT that receives the failures

	rec := rxtest.NewRecorder[string](t)

The producer side is made of OnNext, OnError and OnCompleted (or the function
returned by Notifier). These may be called from any goroutine.

	go func() {
		rec.OnNext("Glork")
		rec.OnNext("spoon")
		rec.OnError(errors.New("There is no spoon"))
	}()

Waiting for notifications

AwaitEvent blocks until enough notifications match a predicate, or until the
timeout is reached

	err := rec.AwaitEvent(
		ctx,
		match.IsErrorContaining[string]("no spoon"),
		rxtest.WithTimeout(1*time.Second),
	)

A timeout is reported to the test as a failure. When ctx is done first, the
returned error wraps the context error and nothing is reported to the test.

Assertion chains

BeginAssertionChain takes a snapshot of the recorded notifications and returns
a Chain that walks them in order

	rec.BeginAssertionChain().
		AssertNextEvent(match.IsValue("Glork")).
		IgnoreUntilEvent(match.IsValue("spoon")).
		AssertNextEvent(match.IsErrorContaining[string]("no spoon"))

Every failure message renders the full event chain, with the relevant
notification marked

	   Expected: onNext with value matching: is "fmoiefn"
	        but: was onNext("spoon")
	event chain:
	             onNext("Glork")
	    -------> onNext("spoon")
	             onError(There is no spoon)

Observability

WithLogger traces recorded notifications, waits and failures with logrus, and
WithMetrics reports them to prometheus collectors created by NewMetrics.
*/
package rxtest
