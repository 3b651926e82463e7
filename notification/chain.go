package notification

import (
	"strings"
)

const (
	markedPrefix   = "    -------> "
	unmarkedPrefix = "             "
)

// NoMark is the index given to RenderChain when no notification of the chain
// is relevant to a failure
const NoMark = -1

// RenderChain renders every notification in order, one per line. The
// notification at index marked (if any) gets a distinct arrow prefix.
func RenderChain[T any](ns []Notification[T], marked int) string {
	var builder strings.Builder
	for i, n := range ns {
		builder.WriteString("\n")
		if i == marked {
			builder.WriteString(markedPrefix)
		} else {
			builder.WriteString(unmarkedPrefix)
		}
		builder.WriteString(n.String())
	}
	builder.WriteString("\n")
	return builder.String()
}
