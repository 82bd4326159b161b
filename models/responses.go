package models

// Response is the uniform JSON envelope returned by every API operation.
// Failures always reduce to {success:false, message}: internal detail is
// logged server-side and never leaks to the caller.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginResponse extends the envelope with the public user projection
// returned after a successful login.
type LoginResponse struct {
	Response
	User *UserProfile `json:"user,omitempty"`
}

// EventsResponse extends the envelope with the list of events returned by
// the list and range-list operations.
type EventsResponse struct {
	Response
	Events []Event `json:"events"`
}

// CreateEventResponse extends the envelope with the server-assigned id of
// the newly created event.
type CreateEventResponse struct {
	Response
	EventID int64 `json:"event_id,omitempty"`
}
