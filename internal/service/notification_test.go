package service

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNotificationBusPublishAndConsume(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	bus := NewNotificationBus(4, log)
	bus.Publish(EmailEvent{To: "a@example.com", Subject: "uno"})
	bus.Publish(EmailEvent{To: "b@example.com", Subject: "dos"})
	bus.Close()

	var got []EmailEvent
	for event := range bus.Events() {
		got = append(got, event)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Subject != "uno" || got[1].Subject != "dos" {
		t.Fatalf("events out of order: %v", got)
	}
}

func TestNotificationBusDropsWhenFull(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	bus := NewNotificationBus(2, log)
	for i := 0; i < 5; i++ {
		bus.Publish(EmailEvent{To: fmt.Sprintf("p%d@example.com", i)})
	}
	bus.Close()

	count := 0
	for range bus.Events() {
		count++
	}
	// publish never blocks: overflow is dropped, the buffered two survive
	if count != 2 {
		t.Fatalf("expected 2 buffered events, got %d", count)
	}
}

func TestNotificationBusCloseIsIdempotent(t *testing.T) {
	log := logrus.New()
	bus := NewNotificationBus(1, log)
	bus.Close()
	bus.Close()
}
