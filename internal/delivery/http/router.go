package http

import (
	"net/http"

	"sgtpi-agenda/internal/delivery/http/handler"
	"sgtpi-agenda/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	appointmentHandler *handler.AppointmentHandler
	reminderHandler    *handler.ReminderHandler
	patientHandler     *handler.PatientHandler
	reportHandler      *handler.ReportHandler
	auditLogHandler    *handler.AuditLogHandler
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	reminderHandler *handler.ReminderHandler,
	patientHandler *handler.PatientHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		appointmentHandler: appointmentHandler,
		reminderHandler:    reminderHandler,
		patientHandler:     patientHandler,
		reportHandler:      reportHandler,
		auditLogHandler:    auditLogHandler,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Appointments
	api.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/appointments/cancelled", r.appointmentHandler.GetCancelled).Methods(http.MethodGet)
	api.HandleFunc("/appointments/day/{date}", r.appointmentHandler.GetByDay).Methods(http.MethodGet)
	api.HandleFunc("/appointments/patient/{patientId}", r.appointmentHandler.GetByPatient).Methods(http.MethodGet)
	api.HandleFunc("/appointments/toggle-block", r.appointmentHandler.ToggleBlock).Methods(http.MethodPost)
	api.HandleFunc("/appointments/slot", r.appointmentHandler.PurgeBlockedSlot).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.Patch).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}/session-notes", r.appointmentHandler.GetSessionNotes).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/session-notes", r.appointmentHandler.SetSessionNotes).Methods(http.MethodPut)

	// Reminders (public cancel link from the email)
	api.HandleFunc("/reminders/{id}/cancel", r.reminderHandler.Cancel).Methods(http.MethodPost)

	// Patients
	api.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)

	// Reports
	api.HandleFunc("/reports/appointments", r.reportHandler.Appointments).Methods(http.MethodGet)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
