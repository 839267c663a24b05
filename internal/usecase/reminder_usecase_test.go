package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/domain/entity"

	"github.com/google/uuid"
)

func (f *fixture) seedReminder(t *testing.T, appointmentID uuid.UUID, sendTime time.Time) *entity.Reminder {
	t.Helper()

	reminder := &entity.Reminder{
		SendTime:      sendTime,
		Method:        entity.SendMethodEmail,
		AppointmentID: appointmentID,
	}
	if err := f.db.Create(reminder).Error; err != nil {
		t.Fatalf("failed to seed reminder: %v", err)
	}
	return reminder
}

func TestSendPendingReminders(t *testing.T) {
	f := newFixture(t)
	f.setNow(baseNow)
	patient := f.seedPatient(t, "ana@example.com")
	noMail := f.seedPatient(t, "")

	// due: send time reached, appointment still outside the window
	due := f.seedAppointment(t, baseNow.Add(60*time.Hour), entity.StatusConfirmado, &patient.ID)
	dueReminder := f.seedReminder(t, due.ID, baseNow.Add(-time.Hour))

	// not due yet
	early := f.seedAppointment(t, baseNow.Add(200*time.Hour), entity.StatusConfirmado, &patient.ID)
	earlyReminder := f.seedReminder(t, early.ID, baseNow.Add(100*time.Hour))

	// cancelled appointment: skipped but kept for a possible re-confirmation
	cancelled := f.seedAppointment(t, baseNow.Add(60*time.Hour).Add(time.Minute), entity.StatusCancelado, &patient.ID)
	cancelledReminder := f.seedReminder(t, cancelled.ID, baseNow.Add(-time.Hour))

	// window already closed: sending would be pointless
	late := f.seedAppointment(t, baseNow.Add(30*time.Hour), entity.StatusConfirmado, &patient.ID)
	lateReminder := f.seedReminder(t, late.ID, baseNow.Add(-20*time.Hour))

	// no recipient: retired without an email
	orphan := f.seedAppointment(t, baseNow.Add(61*time.Hour), entity.StatusConfirmado, &noMail.ID)
	orphanReminder := f.seedReminder(t, orphan.ID, baseNow.Add(-time.Hour))

	sent, err := f.reminderUC.SendPendingReminders(context.Background())
	if err != nil {
		t.Fatalf("SendPendingReminders failed: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder sent, got %d", sent)
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("expected 1 email, got %d", len(f.publisher.events))
	}
	event := f.publisher.events[0]
	if !strings.HasPrefix(event.Subject, "Recordatorio de Turno Próximo #") {
		t.Fatalf("unexpected subject: %s", event.Subject)
	}
	if !strings.Contains(event.Body, dueReminder.ID.String()) {
		t.Fatalf("expected cancel link to carry the reminder id")
	}

	assertSent := func(id uuid.UUID, want bool) {
		t.Helper()
		var reminder entity.Reminder
		if err := f.db.Where("id = ?", id).First(&reminder).Error; err != nil {
			t.Fatalf("failed to reload reminder: %v", err)
		}
		if reminder.IsSent != want {
			t.Fatalf("reminder %s: expected is_sent=%v, got %v", id, want, reminder.IsSent)
		}
	}

	assertSent(dueReminder.ID, true)
	assertSent(earlyReminder.ID, false)
	assertSent(cancelledReminder.ID, false)
	assertSent(lateReminder.ID, false)
	assertSent(orphanReminder.ID, true)
}

func TestCancelFromReminderInsideWindow(t *testing.T) {
	f := newFixture(t)
	f.setNow(baseNow)
	patient := f.seedPatient(t, "ana@example.com")

	appointment := f.seedAppointment(t, baseNow.Add(100*time.Hour), entity.StatusConfirmado, &patient.ID)
	reminder := f.seedReminder(t, appointment.ID, baseNow.Add(-time.Hour))

	result, err := f.reminderUC.CancelFromReminder(context.Background(), reminder.ID)
	if err != nil {
		t.Fatalf("CancelFromReminder failed: %v", err)
	}
	if result.Status != dto.ReminderResultSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	if result.Message != "Turno cancelado exitosamente desde el recordatorio." {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if f.reloadAppointment(t, appointment.ID).Status != entity.StatusCancelado {
		t.Fatalf("expected appointment CANCELADO")
	}

	var reloaded entity.Reminder
	if err := f.db.Where("id = ?", reminder.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload reminder: %v", err)
	}
	if !reloaded.IsSent {
		t.Fatalf("expected reminder retired after the cancel link was used")
	}
}

func TestCancelFromReminderExpiredWindow(t *testing.T) {
	f := newFixture(t)
	f.setNow(baseNow)
	patient := f.seedPatient(t, "ana@example.com")

	appointment := f.seedAppointment(t, baseNow.Add(30*time.Hour), entity.StatusConfirmado, &patient.ID)
	reminder := f.seedReminder(t, appointment.ID, baseNow.Add(-20*time.Hour))

	result, err := f.reminderUC.CancelFromReminder(context.Background(), reminder.ID)
	if err != nil {
		t.Fatalf("CancelFromReminder failed: %v", err)
	}
	if result.Status != dto.ReminderResultSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	if result.Message != "El tiempo para cancelar el turno ha expirado. El turno se considera confirmado." {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if f.reloadAppointment(t, appointment.ID).Status != entity.StatusConfirmado {
		t.Fatalf("appointment must stay CONFIRMADO past the window")
	}

	var reloaded entity.Reminder
	if err := f.db.Where("id = ?", reminder.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload reminder: %v", err)
	}
	if !reloaded.IsSent {
		t.Fatalf("expected reminder retired even when the window expired")
	}
}

func TestCancelFromReminderUnknownID(t *testing.T) {
	f := newFixture(t)
	f.setNow(baseNow)

	result, err := f.reminderUC.CancelFromReminder(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CancelFromReminder failed: %v", err)
	}
	if result.Status != dto.ReminderResultError {
		t.Fatalf("expected error status, got %s", result.Status)
	}
	if result.Message != "Recordatorio no encontrado." {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}
