package rxtest

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the failure sink used by Recorder and Chain; *testing.T
// satisfies it
type TestingT = require.TestingT

type tHelper interface {
	Helper()
}

// reporter renders failures and hands them over to the TestingT
type reporter struct {
	t       TestingT
	failNow bool
	log     *logrus.Entry
}

func (r reporter) helper() {
	if h, ok := r.t.(tHelper); ok {
		h.Helper()
	}
}

// failureMessage builds the message of a failed assertion: what was expected,
// what happened instead and the rendered event chain
func failureMessage(expected, but, chain string) string {
	var builder strings.Builder
	builder.WriteString("\n   Expected: ")
	builder.WriteString(expected)
	builder.WriteString("\n        but: ")
	builder.WriteString(but)
	builder.WriteString("\nevent chain: ")
	builder.WriteString(chain)
	return builder.String()
}

func (r reporter) fail(expected, but, chain string) {
	r.helper()
	r.log.WithFields(logrus.Fields{
		"expected": expected,
		"but":      but,
	}).Warn("assertion failed")

	msg := failureMessage(expected, but, chain)
	if r.failNow {
		require.Fail(r.t, msg)
		return
	}
	assert.Fail(r.t, msg)
}
