package rxtest

import (
	"github.com/capatazlib/go-streamtest/match"
	"github.com/capatazlib/go-streamtest/notification"
)

// Chain walks, in order, the notifications a Recorder had when
// BeginAssertionChain was called. Every method returns the Chain itself so
// calls can be chained:
//
//	rec.BeginAssertionChain().
//		AssertNextEvent(match.IsValue("Glork")).
//		IgnoreUntilEvent(match.IsValue("spoon")).
//		AssertNextEvent(match.IsErrorContaining[string]("no spoon"))
//
// A Chain is not safe for concurrent use.
type Chain[T any] struct {
	events   []notification.Notification[T]
	position int
	rep      reporter
}

func newChain[T any](events []notification.Notification[T], rep reporter) *Chain[T] {
	return &Chain[T]{events: events, rep: rep}
}

func (c *Chain[T]) hasNext() bool {
	return c.position < len(c.events)
}

// next advances the cursor and returns the index of the consumed notification
func (c *Chain[T]) next() int {
	ix := c.position
	c.position++
	return ix
}

// Remaining returns how many notifications the chain has not walked yet
func (c *Chain[T]) Remaining() int {
	return len(c.events) - c.position
}

// AssertNextEvent asserts the next notification matches the given predicate.
// It fails when the notification does not match or when there are no more
// notifications.
func (c *Chain[T]) AssertNextEvent(pred match.EventP[T]) *Chain[T] {
	c.rep.helper()
	if !c.hasNext() {
		c.rep.fail(
			pred.String(),
			"There were no remaining events",
			notification.RenderChain(c.events, notification.NoMark),
		)
		return c
	}

	ix := c.next()
	n := c.events[ix]
	if !pred.Call(n) {
		c.rep.fail(
			pred.String(),
			match.Mismatch(pred, n),
			notification.RenderChain(c.events, ix),
		)
	}
	return c
}

// IgnoreNextEvent skips the next notification. It never fails, not even when
// there are no more notifications; a later AssertNextEvent will.
func (c *Chain[T]) IgnoreNextEvent() *Chain[T] {
	if c.hasNext() {
		c.next()
	}
	return c
}

// IgnoreNextEvents skips up to count notifications. It never fails.
func (c *Chain[T]) IgnoreNextEvents(count int) *Chain[T] {
	for i := 0; i < count && c.hasNext(); i++ {
		c.next()
	}
	return c
}

// IgnoreUntilEvent skips notifications until one matches the given predicate.
// The matching notification is skipped as well, so the next assertion checks
// the notification right after it.
func (c *Chain[T]) IgnoreUntilEvent(pred match.EventP[T]) *Chain[T] {
	c.rep.helper()
	return c.IgnoreUntilEventN(pred, 1)
}

// IgnoreUntilEventN skips notifications until times of them matched the given
// predicate, the last match included. It fails when the chain runs out of
// notifications first.
func (c *Chain[T]) IgnoreUntilEventN(pred match.EventP[T], times int) *Chain[T] {
	c.rep.helper()
	for matched := 0; matched < times; {
		if !c.hasNext() {
			c.rep.fail(
				pred.String(),
				"There was no such event",
				notification.RenderChain(c.events, notification.NoMark),
			)
			return c
		}
		if pred.Call(c.events[c.next()]) {
			matched++
		}
	}
	return c
}

// AssertNoMoreEvents asserts the chain walked all the notifications. On
// failure the first notification left is marked.
func (c *Chain[T]) AssertNoMoreEvents() *Chain[T] {
	c.rep.helper()
	if c.hasNext() {
		c.rep.fail(
			"no remaining events",
			"There were remaining events",
			notification.RenderChain(c.events, c.position),
		)
	}
	return c
}
