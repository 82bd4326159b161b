package models

import "time"

// Allowed values of the Event.EventType field.
const (
	EventTypePersonal = "personal"
	EventTypeHoliday  = "holiday"
	EventTypeSchool   = "school"
)

// Allowed values of the Event.Priority field (Eisenhower matrix labels,
// carried verbatim from the client forms).
const (
	PriorityUrgentImportant       = "Urgent & Important"
	PriorityNotUrgentImportant    = "Not Urgent but Important"
	PriorityUrgentNotImportant    = "Urgent but Not Important"
	PriorityNotUrgentNotImportant = "Not Urgent & Not Important"
)

// EventStatusActive is the status assigned to every newly created event.
// The status field is free text and is never transitioned programmatically
// after creation.
const EventStatusActive = "active"

// Event is a time-boxed calendar entry owned by exactly one user.
type Event struct {
	// EventID is the server-assigned unique identifier of the event.
	EventID int64 `json:"event_id"`

	// UserID identifies the owning user. Every mutation checks it against
	// the acting user.
	UserID int64 `json:"user_id"`

	// EventType is one of [EventTypePersonal], [EventTypeHoliday],
	// [EventTypeSchool].
	EventType string `json:"event_type"`

	// Title is the required display name of the event.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// StartTime and EndTime bound the event. StartTime <= EndTime is
	// expected but not enforced.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Location is optional free text.
	Location string `json:"location,omitempty"`

	// Category is required free text used for client-side grouping.
	Category string `json:"category"`

	// Priority is one of the four fixed priority labels.
	Priority string `json:"priority"`

	// ColorCode is an optional hex color used by the calendar widget.
	ColorCode string `json:"color_code,omitempty"`

	// Tags is an optional comma-separated tag list.
	Tags string `json:"tags,omitempty"`

	// EventStatus defaults to [EventStatusActive] at creation.
	EventStatus string `json:"event_status"`

	// CreatedAt is the timestamp when the event row was inserted.
	CreatedAt time.Time `json:"created_at"`

	// Countdown is the paired countdown value (mirror of StartTime),
	// populated by list queries via a left join. Nil when the countdown
	// row is missing.
	Countdown *time.Time `json:"countdown"`
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "events"
}

// EventUpdate is the typed partial-update descriptor for an event. Each
// field is independently nullable: nil means "leave unchanged". Identity
// fields (event id, owner id) are deliberately absent so they can never be
// overwritten through an update.
type EventUpdate struct {
	EventType   *string    `json:"event_type,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	ColorCode   *string    `json:"color_code,omitempty"`
	Tags        *string    `json:"tags,omitempty"`
	EventStatus *string    `json:"event_status,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all, in which
// case there is nothing to apply and no audit row must be written.
func (u EventUpdate) IsEmpty() bool {
	return u.EventType == nil &&
		u.Title == nil &&
		u.Description == nil &&
		u.StartTime == nil &&
		u.EndTime == nil &&
		u.Location == nil &&
		u.Category == nil &&
		u.Priority == nil &&
		u.ColorCode == nil &&
		u.Tags == nil &&
		u.EventStatus == nil
}

// DateRange is an inclusive query interval for listing events. An event
// matches when its own [StartTime, EndTime] interval overlaps [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}
