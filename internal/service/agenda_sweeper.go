package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ReminderDispatcher sends every due reminder. Implemented by the reminder
// usecase.
type ReminderDispatcher interface {
	SendPendingReminders(ctx context.Context) (int, error)
}

// AppointmentFinalizer promotes past confirmed appointments to REALIZADO.
// Implemented by the appointment usecase.
type AppointmentFinalizer interface {
	CloseOutPastAppointments(ctx context.Context) (int64, error)
}

// AgendaSweeper runs the periodic background work of the agenda: the
// reminder sweep on every tick and the end-of-day close-out once per day.
// The sweep has no deadline of its own; reminders that fail stay unsent and
// are retried on the next tick.
type AgendaSweeper struct {
	log        *logrus.Logger
	interval   time.Duration
	dispatcher ReminderDispatcher
	finalizer  AppointmentFinalizer

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewAgendaSweeper(
	log *logrus.Logger,
	interval time.Duration,
	dispatcher ReminderDispatcher,
	finalizer AppointmentFinalizer,
) *AgendaSweeper {
	return &AgendaSweeper{
		log:        log,
		interval:   interval,
		dispatcher: dispatcher,
		finalizer:  finalizer,
		stopChan:   make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop during shutdown.
func (s *AgendaSweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		lastCloseOut := time.Now()

		for {
			select {
			case <-s.stopChan:
				return
			case now := <-ticker.C:
				s.sweep()

				if now.Day() != lastCloseOut.Day() {
					s.closeOut()
					lastCloseOut = now
				}
			}
		}
	}()
}

func (s *AgendaSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *AgendaSweeper) sweep() {
	ctx := context.Background()

	sent, err := s.dispatcher.SendPendingReminders(ctx)
	if err != nil {
		s.log.Errorf("Reminder sweep failed: %v", err)
		return
	}
	if sent > 0 {
		s.log.Infof("Reminder sweep dispatched %d reminder(s)", sent)
	}
}

func (s *AgendaSweeper) closeOut() {
	ctx := context.Background()

	promoted, err := s.finalizer.CloseOutPastAppointments(ctx)
	if err != nil {
		s.log.Errorf("End-of-day close-out failed: %v", err)
		return
	}
	if promoted > 0 {
		s.log.Infof("End-of-day close-out marked %d appointment(s) REALIZADO", promoted)
	}
}
