package rxtest

import (
	"fmt"
	"strings"

	"github.com/capatazlib/go-streamtest/match"
	"github.com/capatazlib/go-streamtest/notification"
)

// verifyExactMatch checks the input slice of EventP predicates match 1 to 1
// with a given list of notifications. It returns the index of the first
// notification that did not match (or NoMark) and a failure description.
func verifyExactMatch[T any](
	preds []match.EventP[T],
	given []notification.Notification[T],
) (int, string, bool) {
	if len(preds) != len(given) {
		return notification.NoMark, fmt.Sprintf(
			"length is not the same: want %d, given %d",
			len(preds),
			len(given),
		), false
	}
	for i, pred := range preds {
		if !pred.Call(given[i]) {
			return i, fmt.Sprintf(
				"entry %d did not match %s: %s",
				i,
				pred.String(),
				match.Mismatch(pred, given[i]),
			), false
		}
	}
	return notification.NoMark, "", true
}

// verifyPartialMatch matches (in order) a list of EventP predicates to a list
// of notifications.
//
// The notifications need to match in order all the list of given predicates,
// however, there does not need to be a one to one match between the input
// notifications and the predicates; it is ok to skip some notifications in
// between matches.
//
// This function returns all predicates that didn't match (in order) the given
// input notifications. If the returned slice is empty, it means there was a
// succesful match.
func verifyPartialMatch[T any](
	preds []match.EventP[T],
	given []notification.Notification[T],
) []match.EventP[T] {
	for len(preds) > 0 {
		// if we went through all the given notifications, we did not partially
		// match
		if len(given) == 0 {
			return preds
		}

		// if predicate matches given, we move forward on both predicates and
		// given, if not, we move forward only on given
		if preds[0].Call(given[0]) {
			preds = preds[1:]
		}
		given = given[1:]
	}

	// once preds is empty, we know we did all the partial matches
	return preds
}

func describePreds[T any](preds []match.EventP[T]) string {
	acc := make([]string, 0, len(preds))
	for _, pred := range preds {
		acc = append(acc, pred.String())
	}
	return "[" + strings.Join(acc, ", ") + "]"
}

// AssertExactMatch asserts the recorded notifications match 1 to 1 the given
// predicates. It returns true when the assertion holds.
func (r *Recorder[T]) AssertExactMatch(preds ...match.EventP[T]) bool {
	r.rep.helper()
	snapshot := r.events.Snapshot()
	ix, but, ok := verifyExactMatch(preds, snapshot)
	if !ok {
		r.rep.fail(
			"exact match of "+describePreds(preds),
			but,
			notification.RenderChain(snapshot, ix),
		)
	}
	return ok
}

// AssertPartialMatch asserts the recorded notifications contain, in order,
// notifications matching the given predicates. Unlike AssertExactMatch, other
// notifications may appear in between matches.
//
// This is useful in test-cases where a stream emits an overwhelming number of
// notifications and only a few of them are relevant.
func (r *Recorder[T]) AssertPartialMatch(preds ...match.EventP[T]) bool {
	r.rep.helper()
	snapshot := r.events.Snapshot()
	pending := verifyPartialMatch(preds, snapshot)
	if len(pending) > 0 {
		r.rep.fail(
			"partial match of "+describePreds(preds),
			fmt.Sprintf(
				"last match(es) didn't work - pending count %d: %s",
				len(pending),
				describePreds(pending),
			),
			notification.RenderChain(snapshot, notification.NoMark),
		)
		return false
	}
	return true
}
