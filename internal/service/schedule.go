package service

import (
	"context"
	"fmt"

	"co2watch/internal/models"
	"co2watch/internal/repository"
	"co2watch/internal/timeslot"
)

// TimetableEntry is one raw input cell from the timetable editor. Classroom
// is free text; a blank classroom means an empty slot.
type TimetableEntry struct {
	Day       string `json:"day"`
	Hour      int    `json:"hour"`
	Classroom string `json:"classroom"`
}

// SlotStart is the advisory wall-clock start of a teaching period, for
// display alongside the timetable editor.
type SlotStart struct {
	Hour  int    `json:"hour"`  // period index 1..10
	Start string `json:"start"` // "HH:MM"
}

type ScheduleService struct {
	scheduleRepo repository.ScheduleRepo
}

func NewScheduleService(scheduleRepo repository.ScheduleRepo) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

// validDay reports whether day is one of the five schedulable weekdays.
func validDay(day string) bool {
	for _, d := range models.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// SaveTimetable normalizes and validates raw editor entries, then replaces
// the persisted timetable. Blank classrooms become empty slots (dropped);
// single-digit numeric codes are zero-padded ("2" -> "02"). Entries with an
// unknown day or an hour outside 1..10 reject the whole save so a typo never
// half-applies.
func (s *ScheduleService) SaveTimetable(ctx context.Context, entries []TimetableEntry) error {
	grid := models.NewTimetable()
	for _, e := range entries {
		if e.Classroom == "" {
			continue
		}
		if !validDay(e.Day) {
			return fmt.Errorf("unknown day %q", e.Day)
		}
		if e.Hour < 1 || e.Hour > models.HoursPerDay {
			return fmt.Errorf("hour %d out of range 1..%d", e.Hour, models.HoursPerDay)
		}
		grid.Set(e.Day, e.Hour, models.NormalizeClassroom(e.Classroom))
	}
	return s.scheduleRepo.SaveTimetable(ctx, grid.ToRows())
}

// GetTimetable reconstructs the weekly grid from persisted rows.
func (s *ScheduleService) GetTimetable(ctx context.Context) (*models.Timetable, error) {
	rows, err := s.scheduleRepo.LoadTimetable(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromRows(rows), nil
}

// SlotStarts returns the period start-time table (1..10). Display metadata
// only; the check never uses it.
func (s *ScheduleService) SlotStarts() []SlotStart {
	out := make([]SlotStart, 0, models.HoursPerDay)
	for idx := 1; idx <= models.HoursPerDay; idx++ {
		h, m, ok := timeslot.SlotStartTime(idx)
		if !ok {
			continue
		}
		out = append(out, SlotStart{Hour: idx, Start: fmt.Sprintf("%02d:%02d", h, m)})
	}
	return out
}
