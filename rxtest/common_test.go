package rxtest_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/capatazlib/go-streamtest/rxtest"
)

// fakeT captures the failures reported by a Recorder so tests can assert on
// them
type fakeT struct {
	mux       sync.Mutex
	failures  []string
	failedNow bool
}

func (t *fakeT) Errorf(format string, args ...interface{}) {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.failures = append(t.failures, fmt.Sprintf(format, args...))
}

func (t *fakeT) FailNow() {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.failedNow = true
}

func (t *fakeT) Helper() {}

func (t *fakeT) Failures() []string {
	t.mux.Lock()
	defer t.mux.Unlock()
	return append([]string{}, t.failures...)
}

func (t *fakeT) LastFailure() string {
	failures := t.Failures()
	if len(failures) == 0 {
		return ""
	}
	return failures[len(failures)-1]
}

func (t *fakeT) FailedNow() bool {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.failedNow
}

// markedLine returns the line of the failure message that has the event chain
// arrow
func markedLine(msg string) string {
	for _, line := range strings.Split(msg, "\n") {
		if strings.Contains(line, "------->") {
			return line
		}
	}
	return ""
}

// newSpoonRecorder returns a recorder with the notifications used across the
// assertion chain tests
func newSpoonRecorder() (*fakeT, *rxtest.Recorder[string]) {
	ft := &fakeT{}
	rec := rxtest.NewRecorder[string](ft)
	rec.OnNext("Glork")
	rec.OnNext("flork")
	rec.OnNext("fork")
	rec.OnNext("spoon")
	rec.OnError(errors.New("There is no spoon"))
	return ft, rec
}
