package models

// RoomReading is one row of a sensor snapshot: a free-form room label as the
// source printed it, and its CO₂ reading in ppm.
type RoomReading struct {
	Room string `json:"room"`
	PPM  int    `json:"ppm"`
}

// SensorSnapshot is the set of room readings obtained from the sensor source
// at one point in time. It is a slice, not a map, because matching depends on
// the source's row order.
type SensorSnapshot []RoomReading
