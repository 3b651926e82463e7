package rxtest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/capatazlib/go-streamtest/notification"
)

// outcome labels of the streamtest_waits_total counter
const (
	waitImmediate   = "immediate"
	waitSatisfied   = "satisfied"
	waitExpired     = "expired"
	waitInterrupted = "interrupted"
)

// Metrics holds the prometheus collectors a Recorder reports to. A single
// Metrics value may be shared by many recorders, they are told apart by the
// recorder label (see WithName).
type Metrics struct {
	notifications *prometheus.CounterVec
	waits         *prometheus.CounterVec
	waitDuration  *prometheus.HistogramVec
}

// NewMetrics creates the recorder collectors and registers them on the given
// registerer
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtest_notifications_total",
				Help: "Notifications recorded, by kind.",
			},
			[]string{"recorder", "kind"},
		),
		waits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtest_waits_total",
				Help: "AwaitEvent calls, by outcome.",
			},
			[]string{"recorder", "outcome"},
		),
		waitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "streamtest_wait_duration_seconds",
				Help:    "Time AwaitEvent calls spent blocked.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"recorder"},
		),
	}

	for _, c := range []prometheus.Collector{m.notifications, m.waits, m.waitDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) notificationRecorded(recorder string, kind notification.Kind) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(recorder, kind.String()).Inc()
}

func (m *Metrics) waitFinished(recorder, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.waits.WithLabelValues(recorder, outcome).Inc()
	if outcome != waitImmediate {
		m.waitDuration.WithLabelValues(recorder).Observe(elapsed.Seconds())
	}
}
