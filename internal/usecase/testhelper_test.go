package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"sgtpi-agenda/config"
	"sgtpi-agenda/internal/domain/entity"
	"sgtpi-agenda/internal/repository"
	"sgtpi-agenda/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testAgendaConfig() config.AgendaConfig {
	return config.AgendaConfig{
		ProfessionalID:      1,
		ProfessionalEmail:   "pro@example.com",
		DefaultSlotDuration: 50,
		CancellationWindow:  48 * time.Hour,
		ReminderLead:        72 * time.Hour,
		SweepInterval:       15 * time.Minute,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// the in-memory database vanishes per connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.Professional{},
		&entity.Patient{},
		&entity.Appointment{},
		&entity.Reminder{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	// same partial unique index the production migrations create
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_active_slot
		 ON appointments (fecha_hora)
		 WHERE status IN ('CONFIRMADO', 'BLOQUEADO')`,
	).Error; err != nil {
		t.Fatalf("failed to create partial unique index: %v", err)
	}

	return db
}

// fakeSlotLocker runs the critical section directly and records which slots
// were locked
type fakeSlotLocker struct {
	mu     sync.Mutex
	locked []time.Time
}

func (l *fakeSlotLocker) WithSlotLock(ctx context.Context, slot time.Time, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	l.locked = append(l.locked, slot)
	l.mu.Unlock()
	return fn(ctx)
}

func (l *fakeSlotLocker) lockedSlots() []time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]time.Time(nil), l.locked...)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []service.EmailEvent
}

func (p *fakePublisher) Publish(event service.EmailEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// fixture wires a full usecase stack on top of an in-memory database
type fixture struct {
	db            *gorm.DB
	cfg           config.AgendaConfig
	publisher     *fakePublisher
	locker        *fakeSlotLocker
	appointmentUC *appointmentUsecase
	reminderUC    *reminderUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	cfg := testAgendaConfig()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	appointmentRepo := repository.NewAppointmentRepository()
	reminderRepo := repository.NewReminderRepository()
	patientRepo := repository.NewPatientRepository()
	professionalRepo := repository.NewProfessionalRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	if err := professionalRepo.EnsureDefault(db, cfg.ProfessionalID, cfg.ProfessionalEmail); err != nil {
		t.Fatalf("failed to seed professional: %v", err)
	}

	publisher := &fakePublisher{}
	locker := &fakeSlotLocker{}
	checker := service.NewConflictChecker(appointmentRepo)
	audit := service.NewAuditService(log, auditLogRepo)

	appointmentUC := NewAppointmentUsecase(
		db, log, cfg,
		appointmentRepo, patientRepo, professionalRepo, reminderRepo,
		checker, locker, publisher, audit,
	).(*appointmentUsecase)

	reminderUC := NewReminderUsecase(
		db, log, cfg,
		reminderRepo, appointmentRepo, publisher,
	).(*reminderUsecase)

	return &fixture{
		db:            db,
		cfg:           cfg,
		publisher:     publisher,
		locker:        locker,
		appointmentUC: appointmentUC,
		reminderUC:    reminderUC,
	}
}

func (f *fixture) setNow(now time.Time) {
	f.appointmentUC.nowFn = func() time.Time { return now }
	f.reminderUC.nowFn = func() time.Time { return now }
}

func (f *fixture) seedPatient(t *testing.T, email string) *entity.Patient {
	t.Helper()

	patient := &entity.Patient{
		FirstName:   "Ana",
		LastName:    "García",
		PhoneNumber: "1155550000",
	}
	if email != "" {
		patient.Email = &email
	}
	if err := f.db.Create(patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}

func (f *fixture) seedAppointment(t *testing.T, slot time.Time, status entity.AppointmentStatus, patientID *int) *entity.Appointment {
	t.Helper()

	appointment := &entity.Appointment{
		Duration:       f.cfg.DefaultSlotDuration,
		Fecha:          slot,
		Status:         status,
		PatientID:      patientID,
		ProfessionalID: f.cfg.ProfessionalID,
	}
	if err := f.db.Create(appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return appointment
}

func (f *fixture) reloadAppointment(t *testing.T, id interface{}) *entity.Appointment {
	t.Helper()

	var appointment entity.Appointment
	if err := f.db.Where("id = ?", id).First(&appointment).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	return &appointment
}
