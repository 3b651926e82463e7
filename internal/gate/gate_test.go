package gate_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capatazlib/go-streamtest/internal/gate"
)

type evenP struct{}

func (evenP) Call(i int) bool { return i%2 == 0 }

func inFuture(d time.Duration) time.Time {
	return time.Now().Add(d)
}

func TestGateSatisfied(t *testing.T) {
	require := require.New(t)

	g := gate.New[int](evenP{}, 2, inFuture(5*time.Second))
	require.Equal(gate.Armed, g.State())

	require.False(g.Offer(1))
	require.True(g.Offer(2))
	require.Equal(1, g.Remaining())
	require.Equal(gate.Armed, g.State())

	require.True(g.Offer(4))
	require.Equal(0, g.Remaining())
	require.Equal(gate.Satisfied, g.State())

	// once satisfied, offers are ignored
	require.False(g.Offer(6))
	require.Equal(0, g.Remaining())

	require.Equal(gate.Satisfied, g.Wait(context.Background()))
}

func TestGateNeedsNoMatches(t *testing.T) {
	g := gate.New[int](evenP{}, 0, inFuture(time.Millisecond))
	assert.Equal(t, gate.Satisfied, g.State())
	assert.Equal(t, gate.Satisfied, g.Wait(context.Background()))
}

func TestGateReleasesWaiter(t *testing.T) {
	g := gate.New[int](evenP{}, 3, inFuture(5*time.Second))
	delay := 30 * time.Millisecond

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 6; i++ {
			time.Sleep(delay / 6)
			g.Offer(i)
		}
	}()

	start := time.Now()
	state := g.Wait(context.Background())
	elapsed := time.Since(start)
	wg.Wait()

	assert.Equal(t, gate.Satisfied, state)
	// the third even number (4) is offered after five sleeps
	assert.True(t, elapsed >= 5*(delay/6), "gate released before the last match: %v", elapsed)
}

func TestGateExpires(t *testing.T) {
	g := gate.New[int](evenP{}, 1, inFuture(20*time.Millisecond))
	g.Offer(1)

	start := time.Now()
	state := g.Wait(context.Background())

	assert.Equal(t, gate.Expired, state)
	assert.True(t, time.Since(start) >= 15*time.Millisecond)
	assert.Equal(t, 1, g.Remaining())

	// the state is sticky
	assert.False(t, g.Offer(2))
	assert.Equal(t, gate.Expired, g.State())
}

func TestGateInterrupted(t *testing.T) {
	g := gate.New[int](evenP{}, 1, inFuture(5*time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	assert.Equal(t, gate.Interrupted, g.Wait(ctx))
	assert.False(t, g.Offer(2))
	assert.Equal(t, gate.Interrupted, g.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Armed", gate.Armed.String())
	assert.Equal(t, "Satisfied", gate.Satisfied.String())
	assert.Equal(t, "Expired", gate.Expired.String())
	assert.Equal(t, "Interrupted", gate.Interrupted.String())
	assert.Equal(t, "<Unknown>", gate.State(0).String())
}
