package rxtest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capatazlib/go-streamtest/match"
	"github.com/capatazlib/go-streamtest/notification"
	"github.com/capatazlib/go-streamtest/rxtest"
)

// cutlery is a stream producer that runs on its own goroutine and reports
// through a single callback
func cutlery(ctx context.Context, items []string, notify func(notification.Notification[string])) {
	for _, item := range items {
		select {
		case <-ctx.Done():
			notify(notification.Error[string](ctx.Err()))
			return
		case <-time.After(time.Millisecond):
		}
		if item == "spoon" {
			notify(notification.Error[string](errors.New("There is no spoon")))
			return
		}
		notify(notification.Next(item))
	}
	notify(notification.Completed[string]())
}

func TestCutleryStream(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	rec := rxtest.NewRecorder[string](t, rxtest.WithFailNow())
	go cutlery(ctx, []string{"Glork", "flork", "fork", "spoon", "knife"}, rec.Notifier())

	// block until the stream ends
	err := rec.AwaitEvent(ctx, match.IsTerminal[string](), rxtest.WithTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}

	rec.AssertDoesNotHaveEvent(match.IsValue("knife"))
	rec.BeginAssertionChain().
		AssertNextEvent(match.IsValue("Glork")).
		IgnoreUntilEvent(match.IsValue("fork")).
		AssertNextEvent(match.IsErrorContaining[string]("no spoon")).
		AssertNoMoreEvents()
}
