package validators

import (
	"context"
	"regexp"

	"github.com/vrudenko/calendar-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	FieldUserID        = "user_id"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldMiddleInitial = "middle_initial"
	FieldUsername      = "username"
	FieldEmail         = "user_email"
	FieldPhoneNumber   = "phone_number"
	FieldPassword      = "password"

	FieldEventType   = "event_type"
	FieldTitle       = "title"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldCategory    = "category"
	FieldPriority    = "priority"
	FieldSummaryText = "summary_text"
)

// Registration form limits, mirrored from the client-side form rules.
const (
	minUsernameLen      = 4
	minPhoneNumberLen   = 10
	minPasswordLen      = 8
	maxMiddleInitialLen = 2
)

// emailPattern accepts anything of the shape local@domain.tld without
// whitespace. Deliberately loose; deliverability is not checked here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CalendarValidator implements the Validator interface for all calendar
// domain models: RegisterRequest, Event, EventUpdate, and SummaryRequest.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
// Within a model, rules run in form-field order and the first violation wins.
type CalendarValidator struct {
}

// NewCalendarValidator constructs a new CalendarValidator
// and returns it as the Validator interface.
func NewCalendarValidator() Validator {
	return &CalendarValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.RegisterRequest / *models.RegisterRequest
//   - models.Event / *models.Event
//   - models.EventUpdate / *models.EventUpdate
//   - models.SummaryRequest / *models.SummaryRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *CalendarValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.Event:
		return v.validateEvent(ctx, value, fields...)
	case *models.Event:
		return v.validateEvent(ctx, *value, fields...)

	case models.EventUpdate:
		return v.validateEventUpdate(ctx, value, fields...)
	case *models.EventUpdate:
		return v.validateEventUpdate(ctx, *value, fields...)

	case models.SummaryRequest:
		return v.validateSummaryRequest(ctx, value, fields...)
	case *models.SummaryRequest:
		return v.validateSummaryRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest checks the registration form constraints in the
// order the form presents them, returning the first violated rule's message.
//
// Default validated fields: FirstName, LastName, MiddleInitial, Username,
// Email, PhoneNumber, Password.
func (v *CalendarValidator) validateRegisterRequest(ctx context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFirstName, FieldLastName, FieldMiddleInitial, FieldUsername, FieldEmail, FieldPhoneNumber, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldFirstName:
			if request.FirstName == "" {
				return ErrFirstNameRequired
			}
		case FieldLastName:
			if request.LastName == "" {
				return ErrLastNameRequired
			}
		case FieldMiddleInitial:
			if len(request.MiddleInitial) > maxMiddleInitialLen {
				return ErrMiddleInitialTooLong
			}
		case FieldUsername:
			if len(request.Username) < minUsernameLen {
				return ErrUsernameTooShort
			}
		case FieldEmail:
			if !emailPattern.MatchString(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPhoneNumber:
			if len(request.PhoneNumber) < minPhoneNumberLen {
				return ErrInvalidPhoneNumber
			}
		case FieldPassword:
			if len(request.Password) < minPasswordLen {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEvent checks the required fields of a new event.
//
// Default validated fields: UserID, EventType, Title, StartTime, EndTime,
// Category, Priority. Description, location, color code, and tags are free
// text and never validated.
func (v *CalendarValidator) validateEvent(ctx context.Context, event models.Event, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEventType, FieldTitle, FieldStartTime, FieldEndTime, FieldCategory, FieldPriority}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if event.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEventType:
			if event.EventType == "" {
				return ErrEventTypeRequired
			}
		case FieldTitle:
			if event.Title == "" {
				return ErrTitleRequired
			}
		case FieldStartTime:
			if event.StartTime.IsZero() {
				return ErrStartTimeRequired
			}
		case FieldEndTime:
			if event.EndTime.IsZero() {
				return ErrEndTimeRequired
			}
		case FieldCategory:
			if event.Category == "" {
				return ErrCategoryRequired
			}
		case FieldPriority:
			if event.Priority == "" {
				return ErrPriorityRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEventUpdate checks a partial event update. Field-level checks only
// trigger when the corresponding pointer is non-nil (nil means "do not
// touch"). After field-level checks a structural rule is enforced: at least
// one field must be present, otherwise ErrNoFieldsToUpdate is returned.
func (v *CalendarValidator) validateEventUpdate(ctx context.Context, update models.EventUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldEventType, FieldStartTime, FieldEndTime, FieldCategory, FieldPriority}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if update.Title != nil && *update.Title == "" {
				return ErrTitleRequired
			}
		case FieldEventType:
			if update.EventType != nil && *update.EventType == "" {
				return ErrEventTypeRequired
			}
		case FieldStartTime:
			if update.StartTime != nil && update.StartTime.IsZero() {
				return ErrStartTimeRequired
			}
		case FieldEndTime:
			if update.EndTime != nil && update.EndTime.IsZero() {
				return ErrEndTimeRequired
			}
		case FieldCategory:
			if update.Category != nil && *update.Category == "" {
				return ErrCategoryRequired
			}
		case FieldPriority:
			if update.Priority != nil && *update.Priority == "" {
				return ErrPriorityRequired
			}
		default:
			return ErrUnknownField
		}
	}

	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	return nil
}

// validateSummaryRequest checks an event summary submission.
//
// Default validated fields: UserID, SummaryText.
func (v *CalendarValidator) validateSummaryRequest(ctx context.Context, request models.SummaryRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldSummaryText}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldSummaryText:
			if request.SummaryText == "" {
				return ErrSummaryTextRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
