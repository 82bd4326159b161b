package models

import "time"

// EventSummary is the free-text summary attached to an event. At most one
// row exists per event; writes use upsert semantics.
type EventSummary struct {
	EventID     int64  `json:"event_id"`
	SummaryText string `json:"summary_text"`
}

// TableName returns the name of the database table
// associated with the EventSummary model.
func (s EventSummary) TableName() string {
	return "event_summaries"
}

// SummaryRequest is the payload of POST /api/events/{eventId}/summary.
type SummaryRequest struct {
	UserID      int64  `json:"user_id"`
	SummaryText string `json:"summary_text"`
}

// EventAudit is one row of the append-only update log. A row is written
// after every successful event update, recording when and by whom.
type EventAudit struct {
	UpdateID  int64     `json:"update_id"`
	EventID   int64     `json:"event_id"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy int64     `json:"updated_by"`
}

// TableName returns the name of the database table
// associated with the EventAudit model.
func (a EventAudit) TableName() string {
	return "event_updates"
}
