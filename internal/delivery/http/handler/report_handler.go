package handler

import (
	"net/http"
	"time"

	"sgtpi-agenda/internal/service"
	"sgtpi-agenda/pkg/response"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Appointments streams a PDF report of the appointments between the `from`
// and `to` query dates (inclusive of the whole `to` day).
func (h *ReportHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), time.Local)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid from date, use YYYY-MM-DD", nil)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), time.Local)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid to date, use YYYY-MM-DD", nil)
		return
	}

	pdf, err := h.reportService.AppointmentsBetween(r.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		response.InternalServerError(w, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=reporte-turnos.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
