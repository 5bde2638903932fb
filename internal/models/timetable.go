package models

// Days of the teaching week, in display order. Weekend days are never
// scheduled but may still come back from the clock as "sat"/"sun".
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri"}

// HoursPerDay is the number of teaching periods in one day.
const HoursPerDay = 10

// TimetableRow is the flat persisted form of one non-empty slot.
type TimetableRow struct {
	Day       string `json:"day"`       // mon | tue | wed | thu | fri
	Hour      int    `json:"hour"`      // 1..10
	Classroom string `json:"classroom"` // normalized code, e.g. "02"
}

// Slot is a single cell of the weekly grid. A zero Slot is an empty cell.
type Slot struct {
	Hour      int    `json:"hour,omitempty"`
	Classroom string `json:"classroom,omitempty"`
}

// Empty reports whether no classroom is assigned to the slot.
func (s Slot) Empty() bool { return s.Classroom == "" }

// Timetable is the weekly grid: five weekdays of ten ordered slots each.
type Timetable struct {
	days map[string][]Slot
}

// NewTimetable returns a grid with every slot empty.
func NewTimetable() *Timetable {
	t := &Timetable{days: make(map[string][]Slot, len(Weekdays))}
	for _, d := range Weekdays {
		t.days[d] = make([]Slot, HoursPerDay)
	}
	return t
}

// Set assigns a classroom to (day, hour). Unknown days and hours outside
// 1..10 are ignored; an empty classroom clears the slot.
func (t *Timetable) Set(day string, hour int, classroom string) {
	slots, ok := t.days[day]
	if !ok || hour < 1 || hour > HoursPerDay {
		return
	}
	if classroom == "" {
		slots[hour-1] = Slot{}
		return
	}
	slots[hour-1] = Slot{Hour: hour, Classroom: classroom}
}

// SlotFor returns the classroom scheduled at (day, hour), or "" when the day
// is unknown or no slot stores that hour. The day's slots are scanned in
// order and the first hit wins; hours are unique per day by construction.
func (t *Timetable) SlotFor(day string, hour int) string {
	for _, s := range t.days[day] {
		if !s.Empty() && s.Hour == hour {
			return s.Classroom
		}
	}
	return ""
}

// Day returns the ten slots of the given day, or nil for unknown days.
func (t *Timetable) Day(day string) []Slot {
	return t.days[day]
}

// ToRows flattens the grid to its non-empty slots in day-then-hour order.
// Empty slots are not persisted.
func (t *Timetable) ToRows() []TimetableRow {
	rows := make([]TimetableRow, 0, len(Weekdays)*HoursPerDay)
	for _, d := range Weekdays {
		for _, s := range t.days[d] {
			if s.Empty() {
				continue
			}
			rows = append(rows, TimetableRow{Day: d, Hour: s.Hour, Classroom: s.Classroom})
		}
	}
	return rows
}

// FromRows rebuilds a grid from persisted rows. Slots not listed stay empty,
// rows for unknown days are dropped, and when two rows name the same
// (day, hour) the last one wins.
func FromRows(rows []TimetableRow) *Timetable {
	t := NewTimetable()
	for _, r := range rows {
		t.Set(r.Day, r.Hour, r.Classroom)
	}
	return t
}

// NormalizeClassroom applies the input contract for classroom codes: a
// single-character numeric code is left-padded to two digits ("2" -> "02"),
// everything else passes through unchanged.
func NormalizeClassroom(code string) string {
	if len(code) == 1 && code[0] >= '0' && code[0] <= '9' {
		return "0" + code
	}
	return code
}
