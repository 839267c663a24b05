package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/service"
	"sgtpi-agenda/internal/usecase"
	"sgtpi-agenda/pkg/response"
	"sgtpi-agenda/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrInvalidDate, usecase.ErrInvalidTime:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case service.ErrSlotBlocked:
			response.Error(w, http.StatusBadRequest, "The requested time slot is blocked", nil)
		case service.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "The requested date and time is already taken", nil)
		case service.ErrSlotLocked:
			response.Error(w, http.StatusConflict, "The slot is being modified, try again", nil)
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetByDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, err := time.ParseInLocation("2006-01-02", vars["date"], time.Local)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetByDay(r.Context(), day)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseIntVar(r, "patientId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetByPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetCancelled(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetCancelled(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get cancelled appointments")
		return
	}

	response.Success(w, http.StatusOK, "Cancelled appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.AppointmentPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Patch(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDate, usecase.ErrInvalidTime, usecase.ErrInvalidStatus, usecase.ErrPatientIDRequired:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case service.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "The requested date and time is already taken", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	message, err := h.appointmentUsecase.Cancel(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotCancellable:
			response.Error(w, http.StatusBadRequest, "Only a confirmed appointment can be cancelled", nil)
		case usecase.ErrAppointmentPast:
			response.Error(w, http.StatusBadRequest, "Cannot cancel a past appointment", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, message, nil)
}

func (h *AppointmentHandler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := parseSlot(req.Fecha, req.Hora)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.appointmentUsecase.ToggleBlock(r.Context(), slot, *req.Block)
	if err != nil {
		switch err {
		case usecase.ErrUnblockConfirmed:
			response.Error(w, http.StatusBadRequest, "Cannot unblock a confirmed appointment, cancel it first", nil)
		case usecase.ErrNotUnblockable:
			response.Error(w, http.StatusBadRequest, "Appointment state does not allow unblocking", nil)
		case service.ErrSlotTaken, service.ErrSlotLocked:
			response.Error(w, http.StatusConflict, "The slot is being modified, try again", nil)
		default:
			response.InternalServerError(w, "Failed to toggle slot block")
		}
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *AppointmentHandler) GetSessionNotes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	notes, err := h.appointmentUsecase.GetSessionNotes(r.Context(), appointmentID)
	if err != nil {
		response.InternalServerError(w, "Failed to get session notes")
		return
	}

	response.Success(w, http.StatusOK, "Session notes retrieved successfully", dto.SessionNotesResponse{Notes: notes})
}

func (h *AppointmentHandler) SetSessionNotes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.SessionNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	notes, err := h.appointmentUsecase.SetSessionNotes(r.Context(), appointmentID, req.Notes)
	if err != nil {
		switch err {
		case usecase.ErrNotesRequired:
			response.Error(w, http.StatusBadRequest, "Session notes must not be null", nil)
		default:
			response.InternalServerError(w, "Failed to update session notes")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session notes updated successfully", dto.SessionNotesResponse{Notes: notes})
}

func (h *AppointmentHandler) PurgeBlockedSlot(w http.ResponseWriter, r *http.Request) {
	fecha := r.URL.Query().Get("fecha")
	hora := r.URL.Query().Get("hora")
	slot, err := parseSlot(fecha, hora)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.appointmentUsecase.PurgeBlockedSlot(r.Context(), slot); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "No blocked slot at that date and time")
		default:
			response.InternalServerError(w, "Failed to purge blocked slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blocked slot deleted successfully", nil)
}
