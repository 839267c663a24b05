package service

import (
	"errors"
	"time"

	"sgtpi-agenda/internal/domain/entity"
	"sgtpi-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrSlotTaken is returned when the requested date-time is already
	// occupied by a confirmed appointment (or any conflicting one on a move)
	ErrSlotTaken = errors.New("the requested date and time is already taken")

	// ErrSlotBlocked is returned when the requested date-time is blocked or
	// holds a cancelled appointment that was never released
	ErrSlotBlocked = errors.New("the requested time slot is blocked")
)

// ConflictChecker decides whether a date-time may transition to a target
// state. Methods run inside the caller's transaction so the decision and the
// subsequent write share one unit of work.
type ConflictChecker struct {
	appointmentRepo repository.AppointmentRepository
}

func NewConflictChecker(appointmentRepo repository.AppointmentRepository) *ConflictChecker {
	return &ConflictChecker{appointmentRepo: appointmentRepo}
}

// AssertBookable applies the BOOK rules: a CONFIRMADO slot conflicts, a
// BLOQUEADO slot is blocked, and a CANCELADO slot is not re-bookable through
// creation (it must be released through an explicit unblock first).
func (c *ConflictChecker) AssertBookable(tx *gorm.DB, slot time.Time) error {
	confirmed, err := c.appointmentRepo.FindByDateTimeAndStatus(tx, slot, entity.StatusConfirmado)
	if err != nil {
		return err
	}
	if confirmed != nil {
		return ErrSlotTaken
	}

	blocked, err := c.appointmentRepo.FindByDateTimeAndStatus(tx, slot, entity.StatusBloqueado)
	if err != nil {
		return err
	}
	if blocked != nil {
		return ErrSlotBlocked
	}

	cancelled, err := c.appointmentRepo.FindByDateTimeAndStatus(tx, slot, entity.StatusCancelado)
	if err != nil {
		return err
	}
	if cancelled != nil {
		return ErrSlotBlocked
	}

	return nil
}

// AssertMovable applies the PATCH-MOVE rules: any other appointment at the
// target date-time in a conflicting status denies the move.
func (c *ConflictChecker) AssertMovable(tx *gorm.DB, slot time.Time, excludeID uuid.UUID) error {
	conflicting, err := c.appointmentRepo.FindByDateTimeExcludingIDAndStatusIn(tx, slot, excludeID, entity.MoveConflictStatuses)
	if err != nil {
		return err
	}
	if conflicting != nil {
		return ErrSlotTaken
	}
	return nil
}
