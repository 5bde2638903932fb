package models

import "time"

// Terminal statuses of a single check run.
const (
	StatusNoSlot        = "NO_SLOT"         // nothing scheduled for the current day/hour
	StatusNoSensorMatch = "NO_SENSOR_MATCH" // scheduled room absent from the snapshot
	StatusSafe          = "SAFE"            // reading at or below threshold
	StatusAlert         = "ALERT"           // reading above threshold, message sent
)

// AlertDecision is the pure outcome of comparing a matched reading against
// the threshold. It is ephemeral and never persisted as-is.
type AlertDecision struct {
	Fired     bool   `json:"fired"`
	Room      string `json:"room,omitempty"` // matched snapshot label
	PPM       int    `json:"ppm,omitempty"`
	Threshold int    `json:"threshold"`
	Message   string `json:"message,omitempty"` // set only when Fired
}

// CheckResult is what one invocation of the check orchestrator reports.
type CheckResult struct {
	Status    string         `json:"status"` // NO_SLOT | NO_SENSOR_MATCH | SAFE | ALERT
	Day       string         `json:"day"`
	Hour      int            `json:"hour"`
	Classroom string         `json:"classroom,omitempty"` // timetable code looked for
	Decision  *AlertDecision `json:"decision,omitempty"`  // set for SAFE and ALERT
	CheckedAt time.Time      `json:"checked_at"`
}

// CheckEvent is a single audit log entry for a completed check.
type CheckEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // one of the check statuses
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
