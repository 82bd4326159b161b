package models

import "time"

// Countdown is the denormalized 1:1 companion of an [Event]. TimeRemaining
// mirrors the event's start time: the row is created alongside the event,
// re-synced whenever start_time changes, and removed when the event is
// deleted.
type Countdown struct {
	EventID       int64     `json:"event_id"`
	TimeRemaining time.Time `json:"time_remaining"`
}

// TableName returns the name of the database table
// associated with the Countdown model.
func (c Countdown) TableName() string {
	return "countdowns"
}
