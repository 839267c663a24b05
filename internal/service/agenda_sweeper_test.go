package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type countingDispatcher struct {
	calls int64
}

func (d *countingDispatcher) SendPendingReminders(ctx context.Context) (int, error) {
	atomic.AddInt64(&d.calls, 1)
	return 0, nil
}

type countingFinalizer struct {
	calls int64
}

func (f *countingFinalizer) CloseOutPastAppointments(ctx context.Context) (int64, error) {
	atomic.AddInt64(&f.calls, 1)
	return 0, nil
}

func TestAgendaSweeperRunsAndStops(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	dispatcher := &countingDispatcher{}
	finalizer := &countingFinalizer{}
	sweeper := NewAgendaSweeper(log, 5*time.Millisecond, dispatcher, finalizer)

	sweeper.Start()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt64(&dispatcher.calls) < 2 {
		select {
		case <-deadline:
			t.Fatalf("sweep never ran, calls=%d", atomic.LoadInt64(&dispatcher.calls))
		case <-time.After(5 * time.Millisecond):
		}
	}

	sweeper.Stop()
	after := atomic.LoadInt64(&dispatcher.calls)

	// no more sweeps once stopped
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt64(&dispatcher.calls); got != after {
		t.Fatalf("sweeper kept running after Stop: %d -> %d", after, got)
	}

	// Stop twice is safe
	sweeper.Stop()
}
