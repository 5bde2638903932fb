package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"co2watch/internal/models"
)

// ---- local stubs ----

type scheduleRepoStub struct {
	rows    []models.TimetableRow
	loadErr error
	saved   [][]models.TimetableRow
	saveErr error
}

func (s *scheduleRepoStub) SaveTimetable(ctx context.Context, rows []models.TimetableRow) error {
	s.saved = append(s.saved, rows)
	return s.saveErr
}

func (s *scheduleRepoStub) LoadTimetable(ctx context.Context) ([]models.TimetableRow, error) {
	return s.rows, s.loadErr
}

type settingsRepoStub struct {
	threshold       int
	contact         string
	savedThresholds []int
	savedContacts   []string
	saveErr         error
	loadErr         error
}

func (s *settingsRepoStub) SaveThreshold(ctx context.Context, ppm int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedThresholds = append(s.savedThresholds, ppm)
	s.threshold = ppm
	return nil
}

func (s *settingsRepoStub) LoadThreshold(ctx context.Context) (int, error) {
	return s.threshold, s.loadErr
}

func (s *settingsRepoStub) SaveContact(ctx context.Context, phone string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedContacts = append(s.savedContacts, phone)
	s.contact = phone
	return nil
}

func (s *settingsRepoStub) LoadContact(ctx context.Context) (string, error) {
	return s.contact, s.loadErr
}

type eventRepoStub struct {
	appended []models.CheckEvent
}

func (s *eventRepoStub) Append(ctx context.Context, e models.CheckEvent) error {
	s.appended = append(s.appended, e)
	return nil
}

func (s *eventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.CheckEvent, error) {
	return s.appended, nil
}

type fetcherStub struct {
	snap  models.SensorSnapshot
	err   error
	calls int
}

func (f *fetcherStub) FetchSnapshot(ctx context.Context) (models.SensorSnapshot, error) {
	f.calls++
	return f.snap, f.err
}

type notifierStub struct {
	err      error
	phones   []string
	messages []string
}

func (n *notifierStub) Deliver(ctx context.Context, phone, message string) error {
	if n.err != nil {
		return n.err
	}
	n.phones = append(n.phones, phone)
	n.messages = append(n.messages, message)
	return nil
}

// wednesdayAt returns a Wednesday with the given wall-clock hour.
func wednesdayAt(hour int) time.Time {
	return time.Date(2025, 3, 5, hour, 20, 0, 0, time.UTC)
}

func newCheckerForTest(sched *scheduleRepoStub, set *settingsRepoStub, ev *eventRepoStub, f *fetcherStub, n *notifierStub) *CheckService {
	return NewCheckService(sched, set, ev, f, n, nil)
}

// ---- MatchRoom ----

func TestMatchRoom(t *testing.T) {
	t.Parallel()

	snap := models.SensorSnapshot{
		{Room: "Room 102", PPM: 700},
		{Room: "Room 02 - East Wing", PPM: 850},
		{Room: "Room 02 - West Wing", PPM: 400},
	}

	cases := []struct {
		name      string
		classroom string
		wantRoom  string
		wantOK    bool
	}{
		// "02" is a substring of "102" too; first label in snapshot order wins.
		{"first containing label wins", "02", "Room 102", true},
		{"exact-ish code", "East", "Room 02 - East Wing", true},
		{"no containment", "05", "", false},
		{"empty classroom never matches", "", "", false},
		{"case sensitive", "room", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := MatchRoom(tc.classroom, snap)
			if ok != tc.wantOK || got.Room != tc.wantRoom {
				t.Fatalf("MatchRoom(%q) = (%q, %v), want (%q, %v)",
					tc.classroom, got.Room, ok, tc.wantRoom, tc.wantOK)
			}
		})
	}
}

// ---- Evaluate ----

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("above threshold fires with full message", func(t *testing.T) {
		dec := Evaluate("Room 02 - East", 850, 800)
		if !dec.Fired {
			t.Fatal("expected Fired=true")
		}
		for _, want := range []string{"Room 02 - East", "850", "800", "exceeds", "limit"} {
			if !strings.Contains(dec.Message, want) {
				t.Errorf("message %q missing %q", dec.Message, want)
			}
		}
	})

	t.Run("equal to threshold is safe", func(t *testing.T) {
		dec := Evaluate("Room 02", 800, 800)
		if dec.Fired || dec.Message != "" {
			t.Fatalf("expected safe decision, got %+v", dec)
		}
	})

	t.Run("monotone in reading", func(t *testing.T) {
		fired := false
		for ppm := 0; ppm <= 2000; ppm += 50 {
			dec := Evaluate("Room 02", ppm, 1000)
			if fired && !dec.Fired {
				t.Fatalf("Fired flipped back to false at ppm=%d", ppm)
			}
			fired = dec.Fired
		}
		if !fired {
			t.Fatal("never fired below 2000 with threshold 1000")
		}
	})
}

// ---- RunCheck scenarios ----

func TestRunCheck_Alert(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "wed", Hour: 3, Classroom: "02"}}}
	set := &settingsRepoStub{threshold: 800, contact: "+37120000001"}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 02 - East", PPM: 850}}}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if res.Status != models.StatusAlert {
		t.Fatalf("status = %q, want ALERT", res.Status)
	}
	if res.Decision == nil || !res.Decision.Fired {
		t.Fatalf("decision = %+v, want fired", res.Decision)
	}
	for _, want := range []string{"Room 02 - East", "850", "800"} {
		if !strings.Contains(res.Decision.Message, want) {
			t.Errorf("message %q missing %q", res.Decision.Message, want)
		}
	}
	if len(n.messages) != 1 || n.phones[0] != "+37120000001" {
		t.Fatalf("expected one delivery to saved contact, got %+v / %+v", n.phones, n.messages)
	}
	if len(ev.appended) != 1 || ev.appended[0].Type != models.StatusAlert {
		t.Fatalf("expected one ALERT event, got %+v", ev.appended)
	}
	if latest, ok := c.LatestResult(); !ok || latest.Status != models.StatusAlert {
		t.Fatalf("LatestResult = %+v, %v", latest, ok)
	}
}

func TestRunCheck_Safe(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "wed", Hour: 3, Classroom: "02"}}}
	set := &settingsRepoStub{threshold: 800, contact: "+37120000001"}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 02 - East", PPM: 600}}}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if res.Status != models.StatusSafe {
		t.Fatalf("status = %q, want SAFE", res.Status)
	}
	if res.Decision == nil || res.Decision.Fired {
		t.Fatalf("decision = %+v, want not fired", res.Decision)
	}
	if len(n.messages) != 0 {
		t.Fatalf("nothing must be delivered for SAFE, got %+v", n.messages)
	}
	if len(ev.appended) != 1 || ev.appended[0].Type != models.StatusSafe {
		t.Fatalf("expected one SAFE event, got %+v", ev.appended)
	}
}

func TestRunCheck_NoSlot_SkipsFetch(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "mon", Hour: 1, Classroom: "02"}}}
	set := &settingsRepoStub{threshold: 800}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 02", PPM: 900}}}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if res.Status != models.StatusNoSlot {
		t.Fatalf("status = %q, want NO_SLOT", res.Status)
	}
	if f.calls != 0 {
		t.Fatalf("fetcher called %d times, want 0 (lazy fetch)", f.calls)
	}
	if len(n.messages) != 0 {
		t.Fatalf("unexpected delivery: %+v", n.messages)
	}
}

func TestRunCheck_NoSensorMatch(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "wed", Hour: 3, Classroom: "05"}}}
	set := &settingsRepoStub{threshold: 800}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 11", PPM: 900}}}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if res.Status != models.StatusNoSensorMatch {
		t.Fatalf("status = %q, want NO_SENSOR_MATCH", res.Status)
	}
	if f.calls != 1 {
		t.Fatalf("fetcher calls = %d, want exactly 1", f.calls)
	}
	if len(n.messages) != 0 {
		t.Fatalf("unexpected delivery: %+v", n.messages)
	}
}

func TestRunCheck_FetchFailureAbortsCheck(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "wed", Hour: 3, Classroom: "02"}}}
	set := &settingsRepoStub{threshold: 800}
	ev := &eventRepoStub{}
	f := &fetcherStub{err: errors.New("site unreachable")}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if res.Status != "" {
		t.Fatalf("no result must be produced on fetch failure, got %+v", res)
	}
	if len(ev.appended) != 0 {
		t.Fatalf("no event must be recorded on fetch failure, got %+v", ev.appended)
	}
	if _, ok := c.LatestResult(); ok {
		t.Fatal("latest result must stay unset after a failed check")
	}
}

func TestRunCheck_DeliveryFailureStillReportsAlert(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "wed", Hour: 3, Classroom: "02"}}}
	set := &settingsRepoStub{threshold: 800, contact: "+37120000001"}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 02", PPM: 900}}}
	n := &notifierStub{err: errors.New("gateway timeout")}
	c := newCheckerForTest(sched, set, ev, f, n)

	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err == nil {
		t.Fatal("delivery failure must surface as an error")
	}
	if res.Status != models.StatusAlert {
		t.Fatalf("status = %q, want ALERT despite failed delivery", res.Status)
	}
	if len(ev.appended) != 1 || ev.appended[0].Type != models.StatusAlert {
		t.Fatalf("ALERT event must still be recorded, got %+v", ev.appended)
	}
}

// The timetable stores period ordinals, CurrentSlot yields the clock hour,
// and the lookup equates them. A wed/period-3 lesson is found at 03:00 and
// not at 09:45. Documents the preserved quirk end to end.
func TestRunCheck_PeriodIndexMatchesClockHourLiterally(t *testing.T) {
	t.Parallel()

	sched := &scheduleRepoStub{rows: []models.TimetableRow{{Day: "wed", Hour: 3, Classroom: "02"}}}
	set := &settingsRepoStub{threshold: 800}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 02", PPM: 600}}}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	// 03:00 wall clock hits period "3".
	res, err := c.RunCheck(context.Background(), wednesdayAt(3))
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if res.Status != models.StatusSafe {
		t.Fatalf("at clock hour 3 the period-3 lesson must match, got %q", res.Status)
	}

	// 09:45, the period's actual start time, does not.
	res, err = c.RunCheck(context.Background(), wednesdayAt(9))
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if res.Status != models.StatusNoSlot {
		t.Fatalf("at clock hour 9 nothing must match, got %q", res.Status)
	}
}

// Reading counter: strconv is used here only to build distinct room codes.
func TestRunCheck_FetchHappensOncePerCheck(t *testing.T) {
	t.Parallel()

	rows := make([]models.TimetableRow, 0, 3)
	for i := 1; i <= 3; i++ {
		rows = append(rows, models.TimetableRow{Day: "wed", Hour: i, Classroom: "0" + strconv.Itoa(i)})
	}
	sched := &scheduleRepoStub{rows: rows}
	set := &settingsRepoStub{threshold: 800}
	ev := &eventRepoStub{}
	f := &fetcherStub{snap: models.SensorSnapshot{{Room: "Room 01", PPM: 500}}}
	n := &notifierStub{}
	c := newCheckerForTest(sched, set, ev, f, n)

	for run := 0; run < 3; run++ {
		if _, err := c.RunCheck(context.Background(), wednesdayAt(1)); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
	if f.calls != 3 {
		t.Fatalf("fetcher calls = %d, want one per check", f.calls)
	}
}
