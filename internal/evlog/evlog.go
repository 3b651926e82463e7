package evlog

import (
	"sync"
	"time"

	"github.com/capatazlib/go-streamtest/internal/gate"
	"github.com/capatazlib/go-streamtest/notification"
)

// Log is an append-only store of the notifications delivered to a single
// subscription. The same lock guards the entries and the single wait gate
// slot, so a gate armed by Arm sees every notification appended after the
// pre-scan.
type Log[T any] struct {
	mux     sync.Mutex
	entries []notification.Notification[T]
	wait    *gate.Gate[notification.Notification[T]]
}

// New returns an empty Log
func New[T any]() *Log[T] {
	return &Log[T]{
		entries: make([]notification.Notification[T], 0, 100),
	}
}

// Append adds the notification at the end of the log and offers it to the
// armed gate (if any). It returns the index of the stored notification and
// whether the armed gate counted it as a match.
func (l *Log[T]) Append(n notification.Notification[T]) (int, bool) {
	l.mux.Lock()
	defer l.mux.Unlock()

	l.entries = append(l.entries, n)
	matched := false
	if l.wait != nil {
		matched = l.wait.Offer(n)
	}
	return len(l.entries) - 1, matched
}

// Len returns the number of notifications stored so far
func (l *Log[T]) Len() int {
	l.mux.Lock()
	defer l.mux.Unlock()
	return len(l.entries)
}

// Snapshot returns a copy of the notifications stored so far; appends that
// happen after this call are not visible on the returned slice
func (l *Log[T]) Snapshot() []notification.Notification[T] {
	l.mux.Lock()
	defer l.mux.Unlock()
	return append(l.entries[:0:0], l.entries...)
}

// FirstMatch returns the index of the first stored notification that matches
// the given predicate
func (l *Log[T]) FirstMatch(pred gate.Pred[notification.Notification[T]]) (int, bool) {
	l.mux.Lock()
	defer l.mux.Unlock()
	for i, n := range l.entries {
		if pred.Call(n) {
			return i, true
		}
	}
	return -1, false
}

// HasMatch returns true if any stored notification matches the given predicate
func (l *Log[T]) HasMatch(pred gate.Pred[notification.Notification[T]]) bool {
	_, ok := l.FirstMatch(pred)
	return ok
}

// CountMatches returns how many stored notifications match the given predicate
func (l *Log[T]) CountMatches(pred gate.Pred[notification.Notification[T]]) int {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.countMatches(pred)
}

func (l *Log[T]) countMatches(pred gate.Pred[notification.Notification[T]]) int {
	count := 0
	for _, n := range l.entries {
		if pred.Call(n) {
			count++
		}
	}
	return count
}

// Arm counts the stored notifications that match the given predicate and, if
// they are fewer than times, installs a gate that needs the missing matches
// before the given deadline. It returns the gate and whether it got installed;
// when enough matches are already stored the returned gate is Satisfied and
// nothing gets installed.
//
// Only one gate may be armed at a time; arming while another gate is still
// installed replaces it.
func (l *Log[T]) Arm(
	pred gate.Pred[notification.Notification[T]],
	times int,
	deadline time.Time,
) (*gate.Gate[notification.Notification[T]], bool) {
	l.mux.Lock()
	defer l.mux.Unlock()

	existing := l.countMatches(pred)
	g := gate.New(pred, times-existing, deadline)
	if g.State() != gate.Armed {
		return g, false
	}
	l.wait = g
	return g, true
}

// Disarm removes the given gate from the wait slot, if it is still installed
func (l *Log[T]) Disarm(g *gate.Gate[notification.Notification[T]]) {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.wait == g {
		l.wait = nil
	}
}

// Armed returns true if a gate is installed in the wait slot
func (l *Log[T]) Armed() bool {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.wait != nil
}
