package service

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// EmailEvent is one outbound notification. The engine only guarantees the
// event is published; delivery is the consumer's problem.
type EmailEvent struct {
	To      string
	Subject string
	Body    string
}

// EmailPublisher is the engine-facing side of the notification queue
type EmailPublisher interface {
	Publish(event EmailEvent)
}

// NotificationBus is an in-process buffered queue between the booking engine
// and the mailer. Publish never blocks a request: when the buffer is full the
// event is dropped and logged.
type NotificationBus struct {
	log    *logrus.Logger
	events chan EmailEvent

	closeOnce sync.Once
}

func NewNotificationBus(size int, log *logrus.Logger) *NotificationBus {
	if size <= 0 {
		size = 64
	}
	return &NotificationBus{
		log:    log,
		events: make(chan EmailEvent, size),
	}
}

func (b *NotificationBus) Publish(event EmailEvent) {
	select {
	case b.events <- event:
	default:
		b.log.Errorf("Notification queue full, dropping email to %s (%s)", event.To, event.Subject)
	}
}

// Events exposes the consumer side of the queue
func (b *NotificationBus) Events() <-chan EmailEvent {
	return b.events
}

// Close stops the queue. Pending events are still drained by the consumer.
func (b *NotificationBus) Close() {
	b.closeOnce.Do(func() {
		close(b.events)
	})
}
