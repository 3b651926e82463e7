package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/capatazlib/go-streamtest/notification"
)

// ValueP represents a predicate over a payload carried by a notification (the
// value of an OnNext or the error of an OnError)
type ValueP[T any] interface {
	Call(T) bool
	String() string
}

type valueFnP[T any] struct {
	desc string
	fn   func(T) bool
}

func (p valueFnP[T]) Call(v T) bool {
	return p.fn(v)
}

func (p valueFnP[T]) String() string {
	return p.desc
}

// ValueFn transforms a plain function into a ValueP with the given description
func ValueFn[T any](desc string, fn func(T) bool) ValueP[T] {
	return valueFnP[T]{desc: desc, fn: fn}
}

// AnyValue matches every value
func AnyValue[T any]() ValueP[T] {
	return ValueFn("anything", func(T) bool { return true })
}

// EqualTo matches values that are equal to the expected value. Equality
// follows testify's ObjectsAreEqual, so byte slices and structs compare by
// content.
func EqualTo[T any](expected T) ValueP[T] {
	return ValueFn(
		"is "+notification.DescribeValue(expected),
		func(actual T) bool {
			return assert.ObjectsAreEqual(expected, actual)
		},
	)
}

// ContainsSubstring matches strings that contain the given substring
func ContainsSubstring(substr string) ValueP[string] {
	return ValueFn(
		fmt.Sprintf("a string containing %q", substr),
		func(s string) bool { return strings.Contains(s, substr) },
	)
}

// StartsWith matches strings that start with the given prefix
func StartsWith(prefix string) ValueP[string] {
	return ValueFn(
		fmt.Sprintf("a string starting with %q", prefix),
		func(s string) bool { return strings.HasPrefix(s, prefix) },
	)
}

// EndsWith matches strings that end with the given suffix
func EndsWith(suffix string) ValueP[string] {
	return ValueFn(
		fmt.Sprintf("a string ending with %q", suffix),
		func(s string) bool { return strings.HasSuffix(s, suffix) },
	)
}

// MatchesRegexp matches strings that match the given regular expression. It
// panics when the expression does not compile.
func MatchesRegexp(expr string) ValueP[string] {
	re := regexp.MustCompile(expr)
	return ValueFn(
		fmt.Sprintf("a string matching /%s/", expr),
		re.MatchString,
	)
}

// HasMessageThat matches errors with a message matching the given predicate.
// A nil error never matches.
func HasMessageThat(msgP ValueP[string]) ValueP[error] {
	return ValueFn(
		"message "+msgP.String(),
		func(err error) bool {
			return err != nil && msgP.Call(err.Error())
		},
	)
}

// HasCauseThat matches errors whose direct cause (see errors.Unwrap) matches
// the given predicate
func HasCauseThat(causeP ValueP[error]) ValueP[error] {
	return ValueFn(
		"cause "+causeP.String(),
		func(err error) bool {
			return err != nil && causeP.Call(errors.Unwrap(err))
		},
	)
}

// IsErr matches errors that are (see errors.Is) the given target
func IsErr(target error) ValueP[error] {
	return ValueFn(
		"is error "+notification.DescribeValue(target),
		func(err error) bool { return errors.Is(err, target) },
	)
}
