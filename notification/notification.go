package notification

import (
	"fmt"
	"strings"
)

// Kind specifies the type of signal a Notification carries
type Kind uint32

const (
	// ignore zero value of iota
	_ Kind = iota
	// OnNext is a Notification that carries a value emitted by the stream
	OnNext
	// OnError is a Notification that carries the failure that ended the stream
	OnError
	// OnCompleted is a Notification that indicates the stream ended without
	// errors
	OnCompleted
)

// String returns a string representation of the current Kind
func (k Kind) String() string {
	switch k {
	case OnNext:
		return "OnNext"
	case OnError:
		return "OnError"
	case OnCompleted:
		return "OnCompleted"
	default:
		return "<Unknown>"
	}
}

// Notification is a record of a single signal emitted by a stream. Values are
// immutable once built with Next, Error or Completed.
type Notification[T any] struct {
	kind  Kind
	value T
	err   error
}

// Next builds a Notification of kind OnNext that carries the given value
func Next[T any](value T) Notification[T] {
	return Notification[T]{kind: OnNext, value: value}
}

// Error builds a Notification of kind OnError that carries the given error
func Error[T any](err error) Notification[T] {
	return Notification[T]{kind: OnError, err: err}
}

// Completed builds a Notification of kind OnCompleted
func Completed[T any]() Notification[T] {
	return Notification[T]{kind: OnCompleted}
}

// Kind returns the Kind of this Notification
func (n Notification[T]) Kind() Kind {
	return n.kind
}

// Value returns the value carried by an OnNext Notification. For other kinds
// it returns the zero value of T.
func (n Notification[T]) Value() T {
	return n.value
}

// Err returns the error carried by an OnError Notification
func (n Notification[T]) Err() error {
	return n.err
}

// IsTerminal returns true when no other Notification may follow this one on
// a well-formed stream
func (n Notification[T]) IsTerminal() bool {
	return n.kind == OnError || n.kind == OnCompleted
}

// String renders the notification the way it was delivered to the subscriber,
// e.g. onNext("spoon"), onError(boom) or onCompleted()
func (n Notification[T]) String() string {
	var buffer strings.Builder
	switch n.kind {
	case OnNext:
		buffer.WriteString("onNext(")
		buffer.WriteString(DescribeValue(n.value))
		buffer.WriteString(")")
	case OnError:
		buffer.WriteString("onError(")
		buffer.WriteString(DescribeValue(n.err))
		buffer.WriteString(")")
	case OnCompleted:
		buffer.WriteString("onCompleted()")
	default:
		buffer.WriteString("<Unknown>")
	}
	return buffer.String()
}

// DescribeValue renders a payload for failure messages. Strings are quoted so
// that whitespace differences are visible. Errors and Stringers go through fmt,
// which renders a nil pointer receiver as <nil> instead of panicking.
func DescribeValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
