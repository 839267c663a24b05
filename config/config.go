package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Agenda AgendaConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// AgendaConfig carries the scheduling policy of the practice. The
// professional id is injected here instead of hardcoded in lookups because
// the deployment is single-tenant.
type AgendaConfig struct {
	ProfessionalID      int
	ProfessionalEmail   string
	DefaultSlotDuration int
	CancellationWindow  time.Duration
	ReminderLead        time.Duration
	SweepInterval       time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	professionalID := viper.GetInt("AGENDA_PROFESSIONAL_ID")
	if professionalID == 0 {
		professionalID = 1
	}

	slotDuration := viper.GetInt("AGENDA_SLOT_DURATION_MINUTES")
	if slotDuration == 0 {
		slotDuration = 50
	}

	cancellationWindow, err := time.ParseDuration(viper.GetString("AGENDA_CANCELLATION_WINDOW"))
	if err != nil {
		cancellationWindow = 48 * time.Hour
	}

	reminderLead, err := time.ParseDuration(viper.GetString("AGENDA_REMINDER_LEAD"))
	if err != nil {
		reminderLead = 72 * time.Hour
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("AGENDA_SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Agenda: AgendaConfig{
			ProfessionalID:      professionalID,
			ProfessionalEmail:   viper.GetString("AGENDA_PROFESSIONAL_EMAIL"),
			DefaultSlotDuration: slotDuration,
			CancellationWindow:  cancellationWindow,
			ReminderLead:        reminderLead,
			SweepInterval:       sweepInterval,
		},
	}

	return config, nil
}
