package validators

import "errors"

// Validation errors carry the exact user-facing message of the first violated
// rule; the handler layer returns err.Error() verbatim in the response body.
var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidEventID       = errors.New("invalid event ID")
	ErrFirstNameRequired    = errors.New("First name is required")
	ErrLastNameRequired     = errors.New("Last name is required")
	ErrMiddleInitialTooLong = errors.New("Middle initial must be at most 2 characters")
	ErrUsernameTooShort     = errors.New("Username must be at least 4 characters")
	ErrInvalidEmail         = errors.New("Invalid email format")
	ErrInvalidPhoneNumber   = errors.New("Invalid phone number")
	ErrPasswordTooShort     = errors.New("Password must be at least 8 characters")

	ErrTitleRequired     = errors.New("Title is required")
	ErrEventTypeRequired = errors.New("Event type is required")
	ErrStartTimeRequired = errors.New("Start time is required")
	ErrEndTimeRequired   = errors.New("End time is required")
	ErrCategoryRequired  = errors.New("Category is required")
	ErrPriorityRequired  = errors.New("Priority is required")

	ErrSummaryTextRequired = errors.New("Summary text is required")
	ErrNoFieldsToUpdate    = errors.New("No fields to update")
)
