package repository

import (
	"context"
	"database/sql"
	"time"

	"co2watch/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// ScheduleRepo persists the weekly timetable as flat (day, hour, classroom)
// rows. Save replaces the whole set atomically.
type ScheduleRepo interface {
	SaveTimetable(ctx context.Context, rows []models.TimetableRow) error
	LoadTimetable(ctx context.Context) ([]models.TimetableRow, error)
}

// SettingsRepo persists the two single-row settings: the CO₂ threshold and
// the contact phone number. Loads fall back to defaults when nothing has
// been saved yet.
type SettingsRepo interface {
	SaveThreshold(ctx context.Context, ppm int) error
	LoadThreshold(ctx context.Context) (int, error)
	SaveContact(ctx context.Context, phone string) error
	LoadContact(ctx context.Context) (string, error)
}

// EventRepo is the append-only audit log of check outcomes.
type EventRepo interface {
	Append(ctx context.Context, e models.CheckEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.CheckEvent, error)
}

type Repository struct {
	Schedule ScheduleRepo
	Settings SettingsRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Schedule: NewScheduleSQLite(db),
		Settings: NewSettingsSQLite(db),
		Events:   NewEventSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
