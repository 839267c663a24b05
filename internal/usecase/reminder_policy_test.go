package usecase

import (
	"errors"
	"testing"
	"time"
)

func TestReminderSendTime(t *testing.T) {
	window := 48 * time.Hour
	lead := 72 * time.Hour
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

	t.Run("far booking is scheduled at lead before the appointment", func(t *testing.T) {
		appointment := now.Add(100 * time.Hour)
		sendTime, ok := reminderSendTime(now, appointment, window, lead)
		if !ok {
			t.Fatalf("expected a reminder")
		}
		if want := appointment.Add(-lead); !sendTime.Equal(want) {
			t.Fatalf("expected %v, got %v", want, sendTime)
		}
	})

	t.Run("booking between lead and window fires immediately", func(t *testing.T) {
		appointment := now.Add(50 * time.Hour)
		sendTime, ok := reminderSendTime(now, appointment, window, lead)
		if !ok {
			t.Fatalf("expected a reminder")
		}
		if !sendTime.Equal(now) {
			t.Fatalf("expected send time clamped to now, got %v", sendTime)
		}
	})

	t.Run("booking exactly at the window gets none", func(t *testing.T) {
		appointment := now.Add(window)
		if _, ok := reminderSendTime(now, appointment, window, lead); ok {
			t.Fatalf("expected no reminder at the window boundary")
		}
	})

	t.Run("booking inside the window gets none", func(t *testing.T) {
		appointment := now.Add(10 * time.Hour)
		if _, ok := reminderSendTime(now, appointment, window, lead); ok {
			t.Fatalf("expected no reminder inside the window")
		}
	})
}

func TestCombineDateTime(t *testing.T) {
	slot, err := combineDateTime("2026-03-06", "14:30:00")
	if err != nil {
		t.Fatalf("combineDateTime failed: %v", err)
	}
	want := time.Date(2026, 3, 6, 14, 30, 0, 0, time.Local)
	if !slot.Equal(want) {
		t.Fatalf("expected %v, got %v", want, slot)
	}

	if _, err := combineDateTime("06/03/2026", "14:30:00"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := combineDateTime("2026-03-06", "2pm"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}
