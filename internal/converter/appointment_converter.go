package converter

import (
	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		Duration:  appointment.Duration,
		Fecha:     appointment.Fecha.Format("2006-01-02"),
		Hora:      appointment.Fecha.Format("15:04:05"),
		Status:    string(appointment.Status),
		IsUrgent:  appointment.IsUrgent,
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.SessionNotes != nil {
		response.SessionNotes = *appointment.SessionNotes
	}
	if appointment.Patient != nil {
		response.Patient = PatientToResponse(appointment.Patient)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
