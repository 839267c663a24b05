package usecase

import (
	"context"
	"errors"
	"time"

	"sgtpi-agenda/config"
	"sgtpi-agenda/internal/converter"
	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/domain/entity"
	"sgtpi-agenda/internal/domain/repository"
	"sgtpi-agenda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrNotCancellable       = errors.New("only a confirmed appointment can be cancelled")
	ErrAppointmentPast      = errors.New("cannot cancel a past appointment")
	ErrUnblockConfirmed     = errors.New("cannot unblock a confirmed appointment, cancel it first")
	ErrNotUnblockable       = errors.New("appointment state does not allow unblocking")
	ErrNotesRequired        = errors.New("session notes must not be null")
	ErrInvalidDate          = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time, use HH:MM:SS")
	ErrInvalidStatus        = errors.New("unknown appointment status")
	ErrPatientIDRequired    = errors.New("an existing patient id is required to change the patient")
)

// Toggle-block outcome codes. Each direction has more than one way to
// succeed, so a boolean would lose information the frontend needs.
const (
	OutcomeBlockedUpdated   = "blocked_updated"
	OutcomeBlockedCreated   = "blocked_created"
	OutcomeUnblockedUpdated = "unblocked_updated"
	OutcomeUnblockedCreated = "unblocked_created"
	OutcomeAlreadyAvailable = "already_available"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetByDay(ctx context.Context, day time.Time) (*dto.AppointmentListResponse, error)
	GetByPatient(ctx context.Context, patientID int) (*dto.AppointmentListResponse, error)
	GetCancelled(ctx context.Context) (*dto.AppointmentListResponse, error)
	Patch(ctx context.Context, id uuid.UUID, req *dto.AppointmentPatchRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (string, error)
	ToggleBlock(ctx context.Context, slot time.Time, block bool) (*dto.ToggleBlockResponse, error)
	SetSessionNotes(ctx context.Context, id uuid.UUID, notes *string) (string, error)
	GetSessionNotes(ctx context.Context, id uuid.UUID) (string, error)
	PurgeBlockedSlot(ctx context.Context, slot time.Time) error
	CloseOutPastAppointments(ctx context.Context) (int64, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cfg              config.AgendaConfig
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	professionalRepo repository.ProfessionalRepository
	reminderRepo     repository.ReminderRepository
	checker          *service.ConflictChecker
	locker           service.SlotLocker
	publisher        service.EmailPublisher
	audit            service.AuditService

	nowFn func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.AgendaConfig,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	professionalRepo repository.ProfessionalRepository,
	reminderRepo repository.ReminderRepository,
	checker *service.ConflictChecker,
	locker service.SlotLocker,
	publisher service.EmailPublisher,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		cfg:              cfg,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		professionalRepo: professionalRepo,
		reminderRepo:     reminderRepo,
		checker:          checker,
		locker:           locker,
		publisher:        publisher,
		audit:            audit,
		nowFn:            time.Now,
	}
}

// Create books a CONFIRMADO appointment.
//
// The conflict read and the insert share one transaction, serialized per
// slot by the Redis lock. The partial unique index on active statuses backs
// the check against concurrent commits that both passed it.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	slot, err := combineDateTime(req.Fecha, req.Hora)
	if err != nil {
		return nil, err
	}

	var saved *entity.Appointment
	err = u.locker.WithSlotLock(ctx, slot, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			patient, err := u.patientRepo.FindByID(tx, req.PatientID)
			if err != nil {
				u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
				return err
			}
			if patient == nil {
				return ErrPatientNotFound
			}

			professional, err := u.professionalRepo.FindByID(tx, u.cfg.ProfessionalID)
			if err != nil {
				return err
			}
			if professional == nil {
				return ErrProfessionalNotFound
			}

			if err := u.checker.AssertBookable(tx, slot); err != nil {
				return err
			}

			duration := req.Duration
			if duration <= 0 {
				duration = u.cfg.DefaultSlotDuration
			}

			appointment := &entity.Appointment{
				Duration:       duration,
				Fecha:          slot,
				Status:         entity.StatusConfirmado,
				IsUrgent:       req.IsUrgent,
				PatientID:      &patient.ID,
				ProfessionalID: professional.ID,
			}
			if err := u.appointmentRepo.Save(tx, appointment); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return service.ErrSlotTaken
				}
				return err
			}

			if sendTime, ok := reminderSendTime(u.nowFn(), slot, u.cfg.CancellationWindow, u.cfg.ReminderLead); ok {
				reminder := &entity.Reminder{
					SendTime:      sendTime,
					Method:        entity.SendMethodEmail,
					AppointmentID: appointment.ID,
				}
				if err := u.reminderRepo.Save(tx, reminder); err != nil {
					return err
				}
				appointment.Reminder = reminder
			}

			if err := u.audit.LogAction(tx, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), nil, entity.JSON{
				"fecha_hora": slot.Format(time.RFC3339),
				"patient_id": patient.ID,
			}); err != nil {
				return err
			}

			appointment.Patient = patient
			saved = appointment
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if saved.Patient.HasEmail() {
		u.publisher.Publish(confirmationEmail(saved))
	}

	u.log.Infof("Appointment created: id=%s, fecha=%s", saved.ID, saved.Fecha.Format(emailDateLayout))
	return converter.AppointmentToResponse(saved), nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByDay(ctx context.Context, day time.Time) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDay(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", day.Format(dateLayout), err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByPatient(ctx context.Context, patientID int) (*dto.AppointmentListResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetCancelled(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByStatus(u.db.WithContext(ctx), entity.StatusCancelado)
	if err != nil {
		u.log.Warnf("Failed to list cancelled appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Patch applies a sparse update. Fields are applied in a fixed order so the
// result never depends on payload key order; the recombined date-time runs
// the move conflict check before committing. A move also takes the target
// slot's lock, like Create and ToggleBlock do.
func (u *appointmentUsecase) Patch(ctx context.Context, id uuid.UUID, req *dto.AppointmentPatchRequest) (*dto.AppointmentResponse, error) {
	var updated *entity.Appointment
	run := func(ctx context.Context) error {
		var err error
		updated, err = u.patchTx(ctx, id, req)
		return err
	}

	target, err := u.patchTargetSlot(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if target != nil {
		err = u.locker.WithSlotLock(ctx, *target, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, err
	}

	if updated.Patient.HasEmail() {
		u.publisher.Publish(modificationEmail(updated))
	}

	return converter.AppointmentToResponse(updated), nil
}

// patchTargetSlot resolves the date-time the patch moves the appointment to,
// or nil when the slot key does not change.
func (u *appointmentUsecase) patchTargetSlot(ctx context.Context, id uuid.UUID, req *dto.AppointmentPatchRequest) (*time.Time, error) {
	if req.Fecha == nil && req.Hora == nil {
		return nil, nil
	}

	current, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrAppointmentNotFound
	}

	fechaPart := current.Fecha.Format(dateLayout)
	horaPart := current.Fecha.Format(timeLayout)
	if req.Fecha != nil {
		fechaPart = *req.Fecha
	}
	if req.Hora != nil {
		horaPart = *req.Hora
	}

	target, err := combineDateTime(fechaPart, horaPart)
	if err != nil {
		return nil, err
	}
	if current.Fecha.Equal(target) {
		return nil, nil
	}
	return &target, nil
}

func (u *appointmentUsecase) patchTx(ctx context.Context, id uuid.UUID, req *dto.AppointmentPatchRequest) (*entity.Appointment, error) {
	var updated *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		oldStatus := string(appointment.Status)
		oldFecha := appointment.Fecha

		fechaPart := appointment.Fecha.Format(dateLayout)
		horaPart := appointment.Fecha.Format(timeLayout)

		if req.Duration != nil {
			appointment.Duration = *req.Duration
		}
		if req.Fecha != nil {
			fechaPart = *req.Fecha
		}
		if req.Hora != nil {
			horaPart = *req.Hora
		}
		if req.State != nil {
			status := entity.AppointmentStatus(*req.State)
			if !status.Valid() {
				return ErrInvalidStatus
			}
			appointment.Status = status
		}
		if req.SessionNotes != nil {
			notes := *req.SessionNotes
			appointment.SessionNotes = &notes
		}
		if req.Patient != nil {
			if req.Patient.ID == nil {
				return ErrPatientIDRequired
			}
			patient, err := u.patientRepo.FindByID(tx, *req.Patient.ID)
			if err != nil {
				return err
			}
			if patient == nil {
				return ErrPatientNotFound
			}
			appointment.PatientID = &patient.ID
			appointment.Patient = patient
		}

		newSlot, err := combineDateTime(fechaPart, horaPart)
		if err != nil {
			return err
		}
		if !appointment.Fecha.Equal(newSlot) {
			if err := u.checker.AssertMovable(tx, newSlot, appointment.ID); err != nil {
				return err
			}
			appointment.Fecha = newSlot
		}

		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return service.ErrSlotTaken
			}
			return err
		}

		if err := u.audit.LogAction(tx, entity.AuditActionAppointmentPatch, "appointment", appointment.ID.String(), entity.JSON{
			"status":     oldStatus,
			"fecha_hora": oldFecha.Format(time.RFC3339),
		}, entity.JSON{
			"status":     string(appointment.Status),
			"fecha_hora": appointment.Fecha.Format(time.RFC3339),
		}); err != nil {
			return err
		}

		updated = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel applies the cancellation-window rule: far enough ahead the slot is
// released (DISPONIBLE, patient detached), otherwise the record stays as
// CANCELADO with patient and notes kept for the history.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) (string, error) {
	var cancelled *entity.Appointment
	var message string
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if !appointment.IsConfirmed() {
			return ErrNotCancellable
		}

		now := u.nowFn()
		if appointment.Fecha.Before(now) {
			return ErrAppointmentPast
		}

		threshold := appointment.Fecha.Add(-u.cfg.CancellationWindow)
		if now.Before(threshold) {
			appointment.Release()
			message = "Turno cancelado y liberado exitosamente."
		} else {
			appointment.Status = entity.StatusCancelado
			message = "Turno cancelado exitosamente (quedó en estado CANCELADO)."
		}

		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			return err
		}

		if err := u.audit.LogAction(tx, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), entity.JSON{
			"status": string(entity.StatusConfirmado),
		}, entity.JSON{
			"status": string(appointment.Status),
		}); err != nil {
			return err
		}

		cancelled = appointment
		return nil
	})
	if err != nil {
		return "", err
	}

	// a released slot has no patient anymore, so only the CANCELADO branch
	// can notify
	if cancelled.Patient.HasEmail() {
		u.publisher.Publish(cancellationEmail(cancelled))
	}

	u.log.Infof("Appointment cancelled: id=%s, status=%s", cancelled.ID, cancelled.Status)
	return message, nil
}

// ToggleBlock dispatches the block/unblock rules for one slot
func (u *appointmentUsecase) ToggleBlock(ctx context.Context, slot time.Time, block bool) (*dto.ToggleBlockResponse, error) {
	var result *dto.ToggleBlockResponse
	err := u.locker.WithSlotLock(ctx, slot, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			existing, err := u.appointmentRepo.FindByDateTime(tx, slot)
			if err != nil {
				return err
			}

			if block {
				result, err = u.blockSlot(tx, slot, existing)
			} else {
				result, err = u.unblockSlot(tx, slot, existing)
			}
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// blockSlot always succeeds: an existing row is forced to BLOQUEADO (see
// entity.Block for what gets cleared), a missing row is synthesized.
func (u *appointmentUsecase) blockSlot(tx *gorm.DB, slot time.Time, existing *entity.Appointment) (*dto.ToggleBlockResponse, error) {
	if existing != nil {
		oldStatus := string(existing.Status)
		existing.Block()
		if err := u.appointmentRepo.Save(tx, existing); err != nil {
			return nil, err
		}
		if err := u.audit.LogAction(tx, entity.AuditActionSlotBlock, "appointment", existing.ID.String(), entity.JSON{
			"status": oldStatus,
		}, entity.JSON{
			"status": string(entity.StatusBloqueado),
		}); err != nil {
			return nil, err
		}
		return &dto.ToggleBlockResponse{
			Outcome: OutcomeBlockedUpdated,
			Message: "Horario bloqueado exitosamente.",
		}, nil
	}

	appointment := u.synthesizeSlot(slot, entity.StatusBloqueado)
	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, service.ErrSlotTaken
		}
		return nil, err
	}
	if err := u.audit.LogAction(tx, entity.AuditActionSlotBlock, "appointment", appointment.ID.String(), nil, entity.JSON{
		"status": string(entity.StatusBloqueado),
	}); err != nil {
		return nil, err
	}
	return &dto.ToggleBlockResponse{
		Outcome: OutcomeBlockedCreated,
		Message: "Horario bloqueado exitosamente (nuevo slot creado).",
	}, nil
}

// unblockSlot releases a BLOQUEADO or CANCELADO row. A CONFIRMADO row must
// be cancelled first; a missing row is synthesized as DISPONIBLE to defend
// against clients assuming a default-blocked calendar.
func (u *appointmentUsecase) unblockSlot(tx *gorm.DB, slot time.Time, existing *entity.Appointment) (*dto.ToggleBlockResponse, error) {
	if existing == nil {
		appointment := u.synthesizeSlot(slot, entity.StatusDisponible)
		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			return nil, err
		}
		if err := u.audit.LogAction(tx, entity.AuditActionSlotUnblock, "appointment", appointment.ID.String(), nil, entity.JSON{
			"status": string(entity.StatusDisponible),
		}); err != nil {
			return nil, err
		}
		return &dto.ToggleBlockResponse{
			Outcome: OutcomeUnblockedCreated,
			Message: "Horario desbloqueado exitosamente (slot creado como disponible).",
		}, nil
	}

	switch existing.Status {
	case entity.StatusBloqueado, entity.StatusCancelado:
		oldStatus := string(existing.Status)
		existing.Release()
		if err := u.appointmentRepo.Save(tx, existing); err != nil {
			return nil, err
		}
		if err := u.audit.LogAction(tx, entity.AuditActionSlotUnblock, "appointment", existing.ID.String(), entity.JSON{
			"status": oldStatus,
		}, entity.JSON{
			"status": string(entity.StatusDisponible),
		}); err != nil {
			return nil, err
		}
		return &dto.ToggleBlockResponse{
			Outcome: OutcomeUnblockedUpdated,
			Message: "Horario desbloqueado exitosamente.",
		}, nil
	case entity.StatusConfirmado:
		return nil, ErrUnblockConfirmed
	case entity.StatusDisponible:
		return &dto.ToggleBlockResponse{
			Outcome: OutcomeAlreadyAvailable,
			Message: "El horario ya está disponible.",
		}, nil
	default:
		return nil, ErrNotUnblockable
	}
}

func (u *appointmentUsecase) synthesizeSlot(slot time.Time, status entity.AppointmentStatus) *entity.Appointment {
	return &entity.Appointment{
		Duration:       u.cfg.DefaultSlotDuration,
		Fecha:          slot,
		Status:         status,
		ProfessionalID: u.cfg.ProfessionalID,
	}
}

func (u *appointmentUsecase) SetSessionNotes(ctx context.Context, id uuid.UUID, notes *string) (string, error) {
	if notes == nil {
		return "", ErrNotesRequired
	}

	var result string
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.findAppointmentLenient(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			result = ""
			return nil
		}

		value := *notes
		appointment.SessionNotes = &value
		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (u *appointmentUsecase) GetSessionNotes(ctx context.Context, id uuid.UUID) (string, error) {
	appointment, err := u.findAppointmentLenient(u.db.WithContext(ctx), id)
	if err != nil {
		return "", err
	}
	if appointment == nil || appointment.SessionNotes == nil {
		return "", nil
	}
	return *appointment.SessionNotes, nil
}

// findAppointmentLenient returns nil without error for a missing id: the
// session-notes paths deliberately soft-fail to an empty value instead of a
// not-found, preserving the behavior clients already depend on.
func (u *appointmentUsecase) findAppointmentLenient(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return u.appointmentRepo.FindByID(db, id)
}

// PurgeBlockedSlot hard-deletes a synthetic BLOQUEADO placeholder row. The
// status scope means a CONFIRMADO appointment at the same date-time is never
// touched.
func (u *appointmentUsecase) PurgeBlockedSlot(ctx context.Context, slot time.Time) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.appointmentRepo.DeleteByDateTimeAndStatus(tx, slot, entity.StatusBloqueado)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAppointmentNotFound
		}
		return u.audit.LogAction(tx, entity.AuditActionSlotPurge, "appointment", slot.Format(time.RFC3339), entity.JSON{
			"status": string(entity.StatusBloqueado),
		}, nil)
	})
}

// CloseOutPastAppointments promotes past CONFIRMADO slots to REALIZADO
func (u *appointmentUsecase) CloseOutPastAppointments(ctx context.Context) (int64, error) {
	promoted, err := u.appointmentRepo.MarkRealizadoBefore(u.db.WithContext(ctx), u.nowFn())
	if err != nil {
		u.log.Warnf("Failed to close out past appointments: %+v", err)
		return 0, err
	}
	return promoted, nil
}
