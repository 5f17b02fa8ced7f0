package playback_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/ardanlabs/merkleviz/foundation/playback"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Playback(t *testing.T) {
	tree := merkle.MustBuild("tx1", "tx2", "tx3", "tx4")
	steps := merkle.Steps(tree)

	s, err := playback.Start(context.Background(), steps, time.Millisecond)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to start a session: %v", failed, err)
	}
	t.Logf("\t%s\tShould be able to start a session.", success)

	var got []merkle.PartialTree
	for step := range s.C() {
		got = append(got, step)
	}

	if len(got) != len(steps) {
		t.Fatalf("\t%s\tShould receive every step: %d", failed, len(got))
	}
	for i := range got {
		if got[i].Step != i {
			t.Fatalf("\t%s\tShould receive the steps in order: %d at %d", failed, got[i].Step, i)
		}
	}
	t.Logf("\t%s\tShould receive every step in order.", success)

	if !got[len(got)-1].Complete() {
		t.Fatalf("\t%s\tShould end on the complete tree.", failed)
	}
	t.Logf("\t%s\tShould end on the complete tree.", success)

	s.Stop()
	t.Logf("\t%s\tShould be able to stop a finished session.", success)
}

func Test_PlaybackStop(t *testing.T) {
	steps := merkle.Steps(merkle.MustBuild("tx1", "tx2", "tx3", "tx4"))

	s, err := playback.Start(context.Background(), steps, time.Hour)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to start a session: %v", failed, err)
	}

	if step := <-s.C(); step.Step != 0 {
		t.Fatalf("\t%s\tShould receive the first step immediately: %d", failed, step.Step)
	}
	t.Logf("\t%s\tShould receive the first step immediately.", success)

	s.Stop()
	s.Stop()

	if _, open := <-s.C(); open {
		t.Fatalf("\t%s\tShould close the channel once stopped.", failed)
	}
	t.Logf("\t%s\tShould close the channel once stopped.", success)
}

func Test_PlaybackCancel(t *testing.T) {
	steps := merkle.Steps(merkle.MustBuild("tx1", "tx2"))

	ctx, cancel := context.WithCancel(context.Background())
	s, err := playback.Start(ctx, steps, time.Hour)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to start a session: %v", failed, err)
	}

	<-s.C()
	cancel()

	select {
	case <-s.Done():
		t.Logf("\t%s\tShould stop when the context is cancelled.", success)
	case <-time.After(5 * time.Second):
		t.Fatalf("\t%s\tShould stop when the context is cancelled.", failed)
	}
}

func Test_PlaybackInterval(t *testing.T) {
	_, err := playback.Start(context.Background(), nil, 0)
	if !errors.Is(err, playback.ErrInvalidInterval) {
		t.Fatalf("\t%s\tShould reject a zero interval: %v", failed, err)
	}
	t.Logf("\t%s\tShould reject a zero interval.", success)
}

func Test_Sessions(t *testing.T) {
	ss := playback.NewSessions()
	steps := merkle.Steps(merkle.MustBuild("tx1", "tx2", "tx3"))

	s1, err := ss.Start(context.Background(), steps, time.Hour)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to start a session: %v", failed, err)
	}
	s2, err := ss.Start(context.Background(), steps, time.Hour)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to start a session: %v", failed, err)
	}
	<-s1.C()
	<-s2.C()

	if !ss.Stop(s1.ID) {
		t.Fatalf("\t%s\tShould be able to stop a session by id.", failed)
	}
	t.Logf("\t%s\tShould be able to stop a session by id.", success)

	select {
	case <-s2.Done():
		t.Fatalf("\t%s\tShould not stop other sessions.", failed)
	default:
		t.Logf("\t%s\tShould not stop other sessions.", success)
	}

	if ss.Stop("unknown") {
		t.Fatalf("\t%s\tShould not stop an unknown session.", failed)
	}
	t.Logf("\t%s\tShould not stop an unknown session.", success)

	ss.Shutdown()
	<-s2.Done()

	deadline := time.Now().Add(5 * time.Second)
	for ss.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("\t%s\tShould forget every session after shutdown: %d", failed, ss.Len())
		}
		time.Sleep(time.Millisecond)
	}
	t.Logf("\t%s\tShould forget every session after shutdown.", success)
}
