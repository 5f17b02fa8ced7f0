package events_test

import (
	"testing"

	"github.com/ardanlabs/merkleviz/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_SendReceive(t *testing.T) {
	evts := events.New()

	ch1 := evts.Acquire("1")
	ch2 := evts.Acquire("2")
	if evts.Acquire("1") != ch1 {
		t.Fatalf("\t%s\tShould get the same channel for the same id.", failed)
	}
	t.Logf("\t%s\tShould get the same channel for the same id.", success)

	evts.Send("commit", "trace", "root %s", "e17bf10e")

	for _, ch := range []<-chan events.Event{ch1, ch2} {
		e := <-ch
		if e.Kind != "commit" || e.Message != "root e17bf10e" || e.TraceID != "trace" {
			t.Fatalf("\t%s\tShould receive the event: %+v", failed, e)
		}
	}
	t.Logf("\t%s\tShould deliver the event to every receiver.", success)

	if err := evts.Release("1"); err != nil {
		t.Fatalf("\t%s\tShould be able to release a receiver: %v", failed, err)
	}
	if _, open := <-ch1; open {
		t.Fatalf("\t%s\tShould close a released channel.", failed)
	}
	t.Logf("\t%s\tShould close a released channel.", success)

	if err := evts.Release("1"); err == nil {
		t.Fatalf("\t%s\tShould not be able to release an unknown id.", failed)
	}
	t.Logf("\t%s\tShould not be able to release an unknown id.", success)

	evts.Shutdown()
	if _, open := <-ch2; open || evts.Len() != 0 {
		t.Fatalf("\t%s\tShould close every channel on shutdown.", failed)
	}
	t.Logf("\t%s\tShould close every channel on shutdown.", success)
}
