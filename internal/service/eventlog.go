package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"co2watch/internal/models"
	"co2watch/internal/repository"
)

// LogFilter narrows the check history query. Zero times mean "no bound";
// an empty Type means all statuses.
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string // NO_SLOT | NO_SENSOR_MATCH | SAFE | ALERT
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.CheckEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	typ := strings.TrimSpace(strings.ToUpper(f.Type))
	return s.eventRepo.List(ctx, from, to, typ)
}
