package converter

import (
	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:          patient.ID,
		FirstName:   patient.FirstName,
		LastName:    patient.LastName,
		PhoneNumber: patient.PhoneNumber,
		CreatedAt:   patient.CreatedAt,
	}

	if patient.Email != nil {
		response.Email = *patient.Email
	}
	if patient.FirstConsultation != nil {
		response.FirstConsultation = *patient.FirstConsultation
	}
	if patient.Observations != nil {
		response.Observations = *patient.Observations
	}
	if patient.UsualSchedule != nil {
		response.UsualSchedule = *patient.UsualSchedule
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		resp := PatientToResponse(&patients[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
