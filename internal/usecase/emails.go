package usecase

import (
	"fmt"
	"strings"

	"sgtpi-agenda/internal/domain/entity"
	"sgtpi-agenda/internal/service"
)

// cancelLinkBase points at the frontend route that resolves a reminder id
// into a cancel-from-reminder call.
const cancelLinkBase = "http://localhost:4200/cancel/"

func confirmationEmail(appointment *entity.Appointment) service.EmailEvent {
	return service.EmailEvent{
		To:      *appointment.Patient.Email,
		Subject: "Confirmación de Cita",
		Body:    statusChangeBody(appointment, "CONFIRMADO"),
	}
}

func modificationEmail(appointment *entity.Appointment) service.EmailEvent {
	return service.EmailEvent{
		To:      *appointment.Patient.Email,
		Subject: "Cita modificada",
		Body:    statusChangeBody(appointment, "MODIFICADO"),
	}
}

func cancellationEmail(appointment *entity.Appointment) service.EmailEvent {
	return service.EmailEvent{
		To:      *appointment.Patient.Email,
		Subject: "Cancelacion de cita",
		Body:    statusChangeBody(appointment, "CANCELADO"),
	}
}

func statusChangeBody(appointment *entity.Appointment, verb string) string {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>¡Hola, %s!</h1>", appointment.Patient.FirstName))
	body.WriteString(fmt.Sprintf("<p>Tu turno ha sido <strong>%s</strong></p>", verb))
	body.WriteString("<ul>")
	body.WriteString(fmt.Sprintf("<li><strong>Fecha y Hora:</strong> %s</li>", appointment.Fecha.Format(emailDateLayout)))
	body.WriteString("</ul>")
	body.WriteString("<p>Atentamente, Equipo Médico.</p>")
	return body.String()
}

func reminderEmail(reminder *entity.Reminder, appointment *entity.Appointment) service.EmailEvent {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>¡Hola, %s!</h1>", appointment.Patient.FirstName))
	body.WriteString("<p>Este es un recordatorio para tu próximo turno. Por favor, confirma o cancela tu asistencia.</p>")
	body.WriteString("<ul>")
	body.WriteString(fmt.Sprintf("<li><strong>Fecha y Hora:</strong> %s</li>", appointment.Fecha.Format(emailDateLayout)))
	body.WriteString("</ul>")
	body.WriteString("<p>Tiene hasta 48hs antes de la cita para cancelar</p>")
	body.WriteString("<p>¿Desea cancelar su turno?</p>")
	body.WriteString(fmt.Sprintf("<a href=\"%s%s\" ", cancelLinkBase, reminder.ID))
	body.WriteString("style=\"display: inline-block; padding: 10px 20px; font-size: 16px; color: #FFFFFF; ")
	body.WriteString("background-color: #EF4444; text-decoration: none; border-radius: 5px; font-weight: bold;\">")
	body.WriteString("Cancelar Turno</a>")
	body.WriteString("<p>Atentamente, Equipo Médico.</p>")

	return service.EmailEvent{
		To:      *appointment.Patient.Email,
		Subject: fmt.Sprintf("Recordatorio de Turno Próximo #%s", appointment.ID),
		Body:    body.String(),
	}
}
