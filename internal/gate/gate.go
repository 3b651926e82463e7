package gate

import (
	"context"
	"sync"
	"time"
)

// State represents the lifecycle stage of a Gate
type State uint32

const (
	// ignore zero value of iota
	_ State = iota
	// Armed indicates the gate still needs matches and the deadline has not
	// been reached
	Armed
	// Satisfied indicates the gate observed all the matches it needed
	Satisfied
	// Expired indicates the deadline was reached before the gate got satisfied
	Expired
	// Interrupted indicates the waiting goroutine gave up because its context
	// was done before the gate got satisfied
	Interrupted
)

// String returns a string representation of the current State
func (s State) String() string {
	switch s {
	case Armed:
		return "Armed"
	case Satisfied:
		return "Satisfied"
	case Expired:
		return "Expired"
	case Interrupted:
		return "Interrupted"
	default:
		return "<Unknown>"
	}
}

// Pred is the predicate a Gate uses to decide if an offered value counts
// towards its release
type Pred[A any] interface {
	Call(A) bool
}

// Gate is a one-shot, blockable condition that gets satisfied after a number of
// values matching a predicate have been offered to it. Once the gate leaves the
// Armed state it never goes back.
type Gate[A any] struct {
	pred     Pred[A]
	deadline time.Time

	mux       sync.Mutex
	remaining int
	state     State
	releaseCh chan struct{}
}

// New returns an Armed gate that is released after remaining matches or
// expires at the given deadline. A gate that needs no matches is returned
// already Satisfied.
func New[A any](pred Pred[A], remaining int, deadline time.Time) *Gate[A] {
	g := &Gate[A]{
		pred:      pred,
		deadline:  deadline,
		remaining: remaining,
		state:     Armed,
		releaseCh: make(chan struct{}),
	}
	if remaining <= 0 {
		g.remaining = 0
		g.state = Satisfied
		close(g.releaseCh)
	}
	return g
}

// Offer checks the given value against the gate predicate. It returns true
// when the value matched while the gate was Armed. The last needed match
// releases the goroutine blocked on Wait.
func (g *Gate[A]) Offer(a A) bool {
	g.mux.Lock()
	defer g.mux.Unlock()

	if g.state != Armed || !g.pred.Call(a) {
		return false
	}

	g.remaining--
	if g.remaining == 0 {
		g.state = Satisfied
		close(g.releaseCh)
	}
	return true
}

// Wait blocks until the gate is Satisfied, the deadline is reached or the
// given context is done, and returns the final state of the gate.
func (g *Gate[A]) Wait(ctx context.Context) State {
	timer := time.NewTimer(time.Until(g.deadline))
	defer timer.Stop()

	select {
	case <-g.releaseCh:
		return g.State()
	case <-timer.C:
		return g.settle(Expired)
	case <-ctx.Done():
		return g.settle(Interrupted)
	}
}

// settle moves an Armed gate into the given terminal state; a gate that got
// satisfied concurrently keeps its Satisfied state
func (g *Gate[A]) settle(to State) State {
	g.mux.Lock()
	defer g.mux.Unlock()
	if g.state == Armed {
		g.state = to
	}
	return g.state
}

// State returns the current state of the gate
func (g *Gate[A]) State() State {
	g.mux.Lock()
	defer g.mux.Unlock()
	return g.state
}

// Remaining returns how many matches the gate still needs
func (g *Gate[A]) Remaining() int {
	g.mux.Lock()
	defer g.mux.Unlock()
	return g.remaining
}

// Deadline returns the absolute time after which the gate expires
func (g *Gate[A]) Deadline() time.Time {
	return g.deadline
}
