package match

import (
	"strings"

	"github.com/capatazlib/go-streamtest/notification"
)

////////////////////////////////////////////////////////////////////////////////

// EventP represents a predicate function that allows us to assert properties of
// a Notification delivered by a stream
type EventP[T any] interface {

	// Call will execute the logic of this event predicate
	Call(notification.Notification[T]) bool

	// Returns an string representation of this event predicate (used on
	// failure messages)
	String() string
}

// Mismatcher is implemented by EventP values that want to explain why a given
// Notification did not match. Predicates that do not implement it get the
// default "was <notification>" explanation.
type Mismatcher[T any] interface {
	Mismatch(notification.Notification[T]) string
}

// Mismatch returns a human-friendly explanation of why the given Notification
// did not match the given predicate
func Mismatch[T any](p EventP[T], n notification.Notification[T]) string {
	if m, ok := p.(Mismatcher[T]); ok {
		return m.Mismatch(n)
	}
	return "was " + n.String()
}

////////////////////////////////////////////////////////////////////////////////

// KindP is a predicate that asserts the Kind of a given Notification
type KindP[T any] struct {
	kind notification.Kind
}

// Call will execute predicate that checks the kind of the notification
func (p KindP[T]) Call(n notification.Notification[T]) bool {
	return n.Kind() == p.kind
}

func (p KindP[T]) String() string {
	switch p.kind {
	case notification.OnNext:
		return "onNext(<any>)"
	case notification.OnError:
		return "onError(<any>)"
	case notification.OnCompleted:
		return "onCompleted()"
	default:
		return "kind == " + p.kind.String()
	}
}

// NextValueP is a predicate that matches OnNext notifications with a value
// matching the given ValueP
type NextValueP[T any] struct {
	valueP ValueP[T]
}

// Call will verify the notification is an OnNext and its value matches
func (p NextValueP[T]) Call(n notification.Notification[T]) bool {
	return n.Kind() == notification.OnNext && p.valueP.Call(n.Value())
}

func (p NextValueP[T]) String() string {
	return "onNext with value matching: " + p.valueP.String()
}

// ErrorP is a predicate that matches OnError notifications with an error
// matching the given ValueP
type ErrorP[T any] struct {
	errP ValueP[error]
}

// Call will verify the notification is an OnError and its error matches
func (p ErrorP[T]) Call(n notification.Notification[T]) bool {
	return n.Kind() == notification.OnError && p.errP.Call(n.Err())
}

func (p ErrorP[T]) String() string {
	return "onError with error matching: " + p.errP.String()
}

// AndP is a predicate that builds the conjunction of a group EventP predicates
// (e.g. join EventP predicates with &&)
type AndP[T any] struct {
	Preds []EventP[T]
}

// Call will try and verify that all it's grouped predicates return true, if any
// returns false, this predicate function will return false
func (p AndP[T]) Call(n notification.Notification[T]) bool {
	for _, pred := range p.Preds {
		if !pred.Call(n) {
			return false
		}
	}
	return true
}

func (p AndP[T]) String() string {
	acc := make([]string, 0, len(p.Preds))
	for _, pred := range p.Preds {
		acc = append(acc, pred.String())
	}
	return strings.Join(acc, " && ")
}

// OrP is a predicate that builds the adjunction of a group EventP predicates
// (e.g. join EventP predicates with ||)
type OrP[T any] struct {
	Preds []EventP[T]
}

// Call will return true as soon as one of the grouped predicates returns true.
// An empty OrP always matches.
func (p OrP[T]) Call(n notification.Notification[T]) bool {
	if len(p.Preds) == 0 {
		return true
	}
	for _, pred := range p.Preds {
		if pred.Call(n) {
			return true
		}
	}
	return false
}

func (p OrP[T]) String() string {
	acc := make([]string, 0, len(p.Preds))
	for _, pred := range p.Preds {
		acc = append(acc, pred.String())
	}
	return strings.Join(acc, " || ")
}

// NotP negates the result of a given EventP
type NotP[T any] struct {
	Pred EventP[T]
}

// Call returns the opposite of the wrapped predicate
func (p NotP[T]) Call(n notification.Notification[T]) bool {
	return !p.Pred.Call(n)
}

func (p NotP[T]) String() string {
	return "not (" + p.Pred.String() + ")"
}

// Criteria is a function that can be used as an EventP once it gets a
// description with Describe
type Criteria[T any] func(notification.Notification[T]) bool

type criteriaP[T any] struct {
	desc string
	crit Criteria[T]
}

func (p criteriaP[T]) Call(n notification.Notification[T]) bool {
	return p.crit(n)
}

func (p criteriaP[T]) String() string {
	return p.desc
}

////////////////////////////////////////////////////////////////////////////////

// Describe transforms a plain function into an EventP with the given
// description
func Describe[T any](desc string, crit Criteria[T]) EventP[T] {
	return criteriaP[T]{desc: desc, crit: crit}
}

// Any matches every notification
func Any[T any]() EventP[T] {
	return Describe[T]("<any notification>", func(notification.Notification[T]) bool { return true })
}

// IsNext matches any OnNext notification
func IsNext[T any]() EventP[T] {
	return KindP[T]{kind: notification.OnNext}
}

// IsError matches any OnError notification
func IsError[T any]() EventP[T] {
	return KindP[T]{kind: notification.OnError}
}

// IsCompleted matches an OnCompleted notification
func IsCompleted[T any]() EventP[T] {
	return KindP[T]{kind: notification.OnCompleted}
}

// IsTerminal matches either an OnError or an OnCompleted notification
func IsTerminal[T any]() EventP[T] {
	return OrP[T]{Preds: []EventP[T]{IsError[T](), IsCompleted[T]()}}
}

// IsValueThat matches OnNext notifications with a value matching the given
// value predicate
func IsValueThat[T any](valueP ValueP[T]) EventP[T] {
	return NextValueP[T]{valueP: valueP}
}

// IsValue matches OnNext notifications with a value equal to the given value
func IsValue[T any](value T) EventP[T] {
	return IsValueThat(EqualTo(value))
}

// IsErrorThat matches OnError notifications with an error matching the given
// error predicate
func IsErrorThat[T any](errP ValueP[error]) EventP[T] {
	return ErrorP[T]{errP: errP}
}

// IsErrorContaining matches OnError notifications whose error message contains
// the given substring
func IsErrorContaining[T any](substr string) EventP[T] {
	return IsErrorThat[T](HasMessageThat(ContainsSubstring(substr)))
}

// IsErrorMatching matches OnError notifications with an error that is (see
// errors.Is) the given target
func IsErrorMatching[T any](target error) EventP[T] {
	return IsErrorThat[T](IsErr(target))
}

// And joins the given predicates with &&
func And[T any](preds ...EventP[T]) EventP[T] {
	return AndP[T]{Preds: preds}
}

// Or joins the given predicates with ||
func Or[T any](preds ...EventP[T]) EventP[T] {
	return OrP[T]{Preds: preds}
}

// Not negates the given predicate
func Not[T any](pred EventP[T]) EventP[T] {
	return NotP[T]{Pred: pred}
}
