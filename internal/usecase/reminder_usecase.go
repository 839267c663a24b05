package usecase

import (
	"context"
	"time"

	"sgtpi-agenda/config"
	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/domain/entity"
	"sgtpi-agenda/internal/domain/repository"
	"sgtpi-agenda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReminderUsecase interface {
	SendPendingReminders(ctx context.Context) (int, error)
	CancelFromReminder(ctx context.Context, id uuid.UUID) (*dto.ReminderCancelResponse, error)
}

type reminderUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.AgendaConfig
	reminderRepo    repository.ReminderRepository
	appointmentRepo repository.AppointmentRepository
	publisher       service.EmailPublisher

	nowFn func() time.Time
}

func NewReminderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.AgendaConfig,
	reminderRepo repository.ReminderRepository,
	appointmentRepo repository.AppointmentRepository,
	publisher service.EmailPublisher,
) ReminderUsecase {
	return &reminderUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		reminderRepo:    reminderRepo,
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		nowFn:           time.Now,
	}
}

// SendPendingReminders walks every unsent reminder and dispatches the due
// ones. A reminder is due once its send time has passed and the appointment
// is still more than the cancellation window away; past that point sending
// would be pointless, so the reminder is simply left alone.
func (u *reminderUsecase) SendPendingReminders(ctx context.Context) (int, error) {
	reminders, err := u.reminderRepo.FindAllUnsent(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load unsent reminders: %+v", err)
		return 0, err
	}

	now := u.nowFn()
	sent := 0
	for i := range reminders {
		reminder := &reminders[i]
		appointment := &reminder.Appointment
		if appointment.ID == uuid.Nil {
			u.log.Warnf("Reminder %s has no appointment, skipping", reminder.ID)
			continue
		}
		if appointment.Status == entity.StatusCancelado {
			continue
		}
		if now.Before(reminder.SendTime) {
			continue
		}
		if !now.Before(appointment.Fecha.Add(-u.cfg.CancellationWindow)) {
			continue
		}

		if !appointment.Patient.HasEmail() {
			// nothing to deliver to, retire the reminder so the sweep stops
			// picking it up
			u.log.Warnf("Reminder %s has no recipient email, marking sent", reminder.ID)
			reminder.MarkSent()
			if err := u.reminderRepo.Save(u.db.WithContext(ctx), reminder); err != nil {
				return sent, err
			}
			continue
		}

		u.publisher.Publish(reminderEmail(reminder, appointment))
		reminder.MarkSent()
		if err := u.reminderRepo.Save(u.db.WithContext(ctx), reminder); err != nil {
			u.log.Warnf("Failed to mark reminder %s as sent: %+v", reminder.ID, err)
			return sent, err
		}
		sent++
	}

	if sent > 0 {
		u.log.Infof("Dispatched %d reminder(s)", sent)
	}
	return sent, nil
}

// CancelFromReminder handles the cancel link embedded in a reminder email.
// It always answers with a tagged result instead of an HTTP error: the
// clicking patient gets a page, not a stack trace.
func (u *reminderUsecase) CancelFromReminder(ctx context.Context, id uuid.UUID) (*dto.ReminderCancelResponse, error) {
	var result *dto.ReminderCancelResponse
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reminder, err := u.reminderRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if reminder == nil || reminder.Appointment.ID == uuid.Nil {
			result = &dto.ReminderCancelResponse{
				Status:  dto.ReminderResultError,
				Message: "Recordatorio no encontrado.",
			}
			return nil
		}

		// either way the reminder has served its purpose
		reminder.MarkSent()
		if err := u.reminderRepo.Save(tx, reminder); err != nil {
			return err
		}

		appointment := &reminder.Appointment
		threshold := appointment.Fecha.Add(-u.cfg.CancellationWindow)
		if !u.nowFn().Before(threshold) {
			result = &dto.ReminderCancelResponse{
				Status:  dto.ReminderResultSuccess,
				Message: "El tiempo para cancelar el turno ha expirado. El turno se considera confirmado.",
			}
			return nil
		}

		appointment.Status = entity.StatusCancelado
		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			return err
		}

		result = &dto.ReminderCancelResponse{
			Status:  dto.ReminderResultSuccess,
			Message: "Turno cancelado exitosamente desde el recordatorio.",
		}
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to cancel from reminder %s: %+v", id, err)
		return nil, err
	}
	return result, nil
}
