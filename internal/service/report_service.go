package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sgtpi-agenda/internal/domain/entity"
	"sgtpi-agenda/internal/domain/repository"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportService renders the appointment history between two dates as a PDF
type ReportService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewReportService(db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository) *ReportService {
	return &ReportService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

func (s *ReportService) AppointmentsBetween(ctx context.Context, from, to time.Time) ([]byte, error) {
	appointments, err := s.appointmentRepo.FindBetweenDates(s.db.WithContext(ctx), from, to)
	if err != nil {
		s.log.Warnf("Failed to load appointments for report: %+v", err)
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reporte de turnos", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Reporte de turnos")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Periodo: %s - %s", from.Format("02-01-2006"), to.Format("02-01-2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(40, 8, "Fecha y hora", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Duracion", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Estado", "1", 0, "L", true, 0, "")
	pdf.CellFormat(90, 8, "Paciente", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, appointment := range appointments {
		patientName := "-"
		if appointment.Patient != nil {
			patientName = appointment.Patient.FullName()
		}

		pdf.CellFormat(40, 8, appointment.Fecha.Format("02-01-2006 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d min", appointment.Duration), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, string(appointment.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 8, patientName, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 8, fmt.Sprintf("Total de turnos: %d (confirmados: %d)", len(appointments), countByStatus(appointments, entity.StatusConfirmado)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.log.Errorf("Failed to render report PDF: %v", err)
		return nil, err
	}

	return buf.Bytes(), nil
}

func countByStatus(appointments []entity.Appointment, status entity.AppointmentStatus) int {
	count := 0
	for _, appointment := range appointments {
		if appointment.Status == status {
			count++
		}
	}
	return count
}
