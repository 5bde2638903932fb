package service

import (
	"context"
	"time"

	"co2watch/internal/logger"
	"co2watch/internal/models"
	"co2watch/internal/notify"
	"co2watch/internal/repository"
	"co2watch/internal/sensor"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Schedule manages the weekly timetable: normalization of raw input rows,
// persistence, and the advisory period start-time table.
type Schedule interface {
	SaveTimetable(ctx context.Context, entries []TimetableEntry) error
	GetTimetable(ctx context.Context) (*models.Timetable, error)
	SlotStarts() []SlotStart
}

// Settings manages the CO₂ threshold and the alert contact phone.
type Settings interface {
	SetThreshold(ctx context.Context, ppm int) error
	SetContact(ctx context.Context, phone string) error
	GetSettings(ctx context.Context) (SettingsView, error)
}

// Checker runs one point-in-time CO₂ check and remembers the last outcome.
type Checker interface {
	RunCheck(ctx context.Context, now time.Time) (models.CheckResult, error)
	LatestResult() (models.CheckResult, bool)
}

// EventLog exposes the append-only check history with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CheckEvent, error)
}

// Watcher runs periodic checks in the background when enabled.
// Stop via context cancellation in main() for graceful shutdown.
type Watcher interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Schedule
	Settings
	Checker
	EventLog
	Watcher
	Authorization
}

// Deps carries everything the service layer needs from the outside:
// persistence, the external sensor source, the delivery channel, and auth
// signing configuration.
type Deps struct {
	Repos      *repository.Repository
	Fetcher    sensor.Fetcher
	Notifier   notify.Notifier
	SigningKey string
	Log        *logger.Logger
}

func NewService(d Deps) *Service {
	checker := NewCheckService(d.Repos.Schedule, d.Repos.Settings, d.Repos.Events, d.Fetcher, d.Notifier, d.Log)
	return &Service{
		Schedule:      NewScheduleService(d.Repos.Schedule),
		Settings:      NewSettingsService(d.Repos.Settings),
		Checker:       checker,
		EventLog:      NewEventLogService(d.Repos.Events),
		Watcher:       NewWatcherService(checker, d.Log),
		Authorization: NewAuthService(d.Repos.Auth, d.SigningKey),
	}
}
