package evlog_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capatazlib/go-streamtest/internal/evlog"
	"github.com/capatazlib/go-streamtest/internal/gate"
	"github.com/capatazlib/go-streamtest/notification"
)

type containsP string

func (p containsP) Call(n notification.Notification[string]) bool {
	return n.Kind() == notification.OnNext && strings.Contains(n.Value(), string(p))
}

func farDeadline() time.Time {
	return time.Now().Add(5 * time.Second)
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("N appends store N entries in order", prop.ForAll(
		func(values []string) bool {
			l := evlog.New[string]()
			for i, v := range values {
				ix, _ := l.Append(notification.Next(v))
				if ix != i {
					return false
				}
			}
			snapshot := l.Snapshot()
			if len(snapshot) != len(values) || l.Len() != len(values) {
				return false
			}
			for i, v := range values {
				if snapshot[i].Value() != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestMatchingIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("HasMatch and CountMatches are stable without appends", prop.ForAll(
		func(values []string, needle string) bool {
			l := evlog.New[string]()
			for _, v := range values {
				l.Append(notification.Next(v))
			}
			p := containsP(needle)
			has, count := l.HasMatch(p), l.CountMatches(p)
			for i := 0; i < 3; i++ {
				if l.HasMatch(p) != has || l.CountMatches(p) != count {
					return false
				}
			}
			return has == (count > 0) && l.Len() == len(values)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestConcurrentAppend(t *testing.T) {
	l := evlog.New[int]()
	producers, perProducer := 8, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				l.Append(notification.Next(p*perProducer + i))
			}
		}(p)
	}
	wg.Wait()

	snapshot := l.Snapshot()
	require.Len(t, snapshot, producers*perProducer)

	// every producer's own emission order is preserved
	last := make(map[int]int)
	for _, n := range snapshot {
		p := n.Value() / perProducer
		if prev, ok := last[p]; ok {
			assert.True(t, n.Value() > prev)
		}
		last[p] = n.Value()
	}
}

func TestSnapshotIsNotLive(t *testing.T) {
	l := evlog.New[string]()
	l.Append(notification.Next("a"))
	snapshot := l.Snapshot()
	l.Append(notification.Next("b"))

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, l.Len())
}

func TestFirstMatch(t *testing.T) {
	l := evlog.New[string]()
	l.Append(notification.Next("fork"))
	l.Append(notification.Next("spoon"))
	l.Append(notification.Next("spoonful"))

	ix, ok := l.FirstMatch(containsP("spoon"))
	assert.True(t, ok)
	assert.Equal(t, 1, ix)

	_, ok = l.FirstMatch(containsP("chicken"))
	assert.False(t, ok)
}

func TestArm(t *testing.T) {
	t.Run("already satisfied", func(t *testing.T) {
		l := evlog.New[string]()
		l.Append(notification.Next("fork"))
		l.Append(notification.Next("spork"))

		g, armed := l.Arm(containsP("ork"), 2, farDeadline())
		assert.False(t, armed)
		assert.Equal(t, gate.Satisfied, g.State())
		assert.False(t, l.Armed())
	})

	t.Run("counts existing matches", func(t *testing.T) {
		l := evlog.New[string]()
		l.Append(notification.Next("fork"))

		g, armed := l.Arm(containsP("ork"), 3, farDeadline())
		require.True(t, armed)
		require.Equal(t, gate.Armed, g.State())
		assert.Equal(t, 2, g.Remaining())
		assert.True(t, l.Armed())

		_, matched := l.Append(notification.Next("spoon"))
		assert.False(t, matched)
		_, matched = l.Append(notification.Next("spork"))
		assert.True(t, matched)
		l.Append(notification.Next("cork"))

		assert.Equal(t, gate.Satisfied, g.Wait(context.Background()))
		l.Disarm(g)
		assert.False(t, l.Armed())
	})

	t.Run("disarm ignores stale gate", func(t *testing.T) {
		l := evlog.New[string]()
		stale, _ := l.Arm(containsP("a"), 1, farDeadline())
		current, _ := l.Arm(containsP("b"), 1, farDeadline())
		l.Disarm(stale)
		assert.True(t, l.Armed())
		l.Disarm(current)
		assert.False(t, l.Armed())
	})

	t.Run("no missed notification between scan and wait", func(t *testing.T) {
		l := evlog.New[string]()
		g, _ := l.Arm(containsP("spoon"), 1, farDeadline())
		// the notification arrives before the waiter blocks
		l.Append(notification.Next("spoon"))
		assert.Equal(t, gate.Satisfied, g.Wait(context.Background()))
	})
}
