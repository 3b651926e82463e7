/*
Package notification contains the record type used to capture what a push
based stream delivered to its subscriber.

A stream delivers zero or more values, optionally followed by a single terminal
signal:

	onNext("Glork")
	onNext("flork")
	onError(There is no spoon)

Each of these signals is captured as a Notification value. The RenderChain
function renders a list of notifications the same way, marking the one that is
relevant for a test failure.
*/
package notification
