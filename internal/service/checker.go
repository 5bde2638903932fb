package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"co2watch/internal/logger"
	"co2watch/internal/models"
	"co2watch/internal/notify"
	"co2watch/internal/repository"
	"co2watch/internal/sensor"
	"co2watch/internal/timeslot"
)

// MatchRoom resolves a timetable classroom code against the free-form labels
// of a sensor snapshot: the first label (in snapshot order) containing the
// code as a case-sensitive substring wins. An empty code never matches.
//
// Substring containment is the deliberate join strategy: the source labels
// room names however it likes ("Room 02 - East Wing") while the timetable
// stores a short code ("02"). "02" matching "102" is a known, accepted
// imprecision of that strategy.
func MatchRoom(classroom string, snap models.SensorSnapshot) (models.RoomReading, bool) {
	if classroom == "" {
		return models.RoomReading{}, false
	}
	for _, r := range snap {
		if strings.Contains(r.Room, classroom) {
			return r, true
		}
	}
	return models.RoomReading{}, false
}

// Evaluate compares a matched reading against the threshold. Pure: no
// delivery happens here. Fired only when the reading strictly exceeds the
// threshold; equal is safe.
func Evaluate(roomLabel string, ppm, threshold int) models.AlertDecision {
	dec := models.AlertDecision{
		Room:      roomLabel,
		PPM:       ppm,
		Threshold: threshold,
	}
	if ppm > threshold {
		dec.Fired = true
		dec.Message = fmt.Sprintf("CO2 in %s is %d ppm, exceeds the limit of %d ppm", roomLabel, ppm, threshold)
	}
	return dec
}

// CheckService is the check orchestrator: it resolves the current timetable
// slot, fetches a fresh snapshot, matches the scheduled classroom, evaluates
// the threshold, and hands alerts to the notifier.
type CheckService struct {
	scheduleRepo repository.ScheduleRepo
	settingsRepo repository.SettingsRepo
	eventRepo    repository.EventRepo
	fetcher      sensor.Fetcher
	notifier     notify.Notifier
	log          *logger.Logger

	mu     sync.RWMutex
	latest *models.CheckResult
}

func NewCheckService(
	scheduleRepo repository.ScheduleRepo,
	settingsRepo repository.SettingsRepo,
	eventRepo repository.EventRepo,
	fetcher sensor.Fetcher,
	notifier notify.Notifier,
	log *logger.Logger,
) *CheckService {
	return &CheckService{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		eventRepo:    eventRepo,
		fetcher:      fetcher,
		notifier:     notifier,
		log:          log,
	}
}

// RunCheck performs one point-in-time check for the given instant.
//
// The snapshot is fetched lazily: when nothing is scheduled for the current
// day/hour the sensor source is not contacted at all, since the outcome is
// NO_SLOT either way. A fetch failure aborts the check with an error and no
// result. A delivery failure surfaces as an error while the returned result
// still reports ALERT; the decision itself was correct.
func (s *CheckService) RunCheck(ctx context.Context, now time.Time) (models.CheckResult, error) {
	day, hour := timeslot.CurrentSlot(now)
	res := models.CheckResult{Day: day, Hour: hour, CheckedAt: now}

	rows, err := s.scheduleRepo.LoadTimetable(ctx)
	if err != nil {
		return models.CheckResult{}, fmt.Errorf("load timetable: %w", err)
	}
	classroom := models.FromRows(rows).SlotFor(day, hour)
	if classroom == "" {
		res.Status = models.StatusNoSlot
		s.finish(ctx, res, fmt.Sprintf("no classroom scheduled for %s hour %d", day, hour))
		return res, nil
	}
	res.Classroom = classroom

	threshold, err := s.settingsRepo.LoadThreshold(ctx)
	if err != nil {
		return models.CheckResult{}, fmt.Errorf("load threshold: %w", err)
	}

	snap, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return models.CheckResult{}, fmt.Errorf("fetch snapshot: %w", err)
	}

	reading, ok := MatchRoom(classroom, snap)
	if !ok {
		res.Status = models.StatusNoSensorMatch
		s.finish(ctx, res, fmt.Sprintf("no sensor room matches classroom %q", classroom))
		return res, nil
	}

	dec := Evaluate(reading.Room, reading.PPM, threshold)
	res.Decision = &dec

	if !dec.Fired {
		res.Status = models.StatusSafe
		s.finish(ctx, res, fmt.Sprintf("%s: %d ppm is safe (limit %d)", dec.Room, dec.PPM, dec.Threshold))
		return res, nil
	}

	res.Status = models.StatusAlert
	s.finish(ctx, res, dec.Message)

	contact, err := s.settingsRepo.LoadContact(ctx)
	if err != nil {
		return res, fmt.Errorf("load contact: %w", err)
	}
	if err := s.notifier.Deliver(ctx, contact, dec.Message); err != nil {
		if s.log != nil {
			s.log.Errorw("alert_delivery_failed", "err", err, "room", dec.Room)
		}
		return res, fmt.Errorf("deliver alert: %w", err)
	}
	if s.log != nil {
		s.log.Infow("alert_sent", "room", dec.Room, "ppm", dec.PPM, "threshold", dec.Threshold)
	}
	return res, nil
}

// LatestResult returns the outcome of the most recent completed check.
func (s *CheckService) LatestResult() (models.CheckResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.CheckResult{}, false
	}
	return *s.latest, true
}

// finish records the terminal result: remembers it as latest and appends an
// audit event. The audit write is best-effort; a failed append never fails
// the check.
func (s *CheckService) finish(ctx context.Context, res models.CheckResult, desc string) {
	s.mu.Lock()
	r := res
	s.latest = &r
	s.mu.Unlock()

	meta := map[string]any{"day": res.Day, "hour": res.Hour}
	if res.Classroom != "" {
		meta["classroom"] = res.Classroom
	}
	if res.Decision != nil {
		meta["room"] = res.Decision.Room
		meta["ppm"] = res.Decision.PPM
		meta["threshold"] = res.Decision.Threshold
	}
	if err := s.eventRepo.Append(ctx, models.CheckEvent{
		OccurredAt:  res.CheckedAt.UTC(),
		Type:        res.Status,
		Description: desc,
		Metadata:    meta,
	}); err != nil && s.log != nil {
		s.log.Errorw("check_event_append_failed", "err", err)
	}
}
