package models

import "time"

// User represents a registered account. It carries identity attributes and
// the stored password hash. The hash must never leave trusted boundaries:
// it is excluded from JSON serialization entirely.
type User struct {
	// UserID is the server-assigned unique identifier of the user.
	UserID int64 `json:"user_id"`

	// FirstName and LastName are required display attributes.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// MiddleInitial is optional and at most two characters.
	MiddleInitial string `json:"middle_initial,omitempty"`

	// Username is the unique login identifier (case-sensitive, exact match).
	Username string `json:"username"`

	// Email is the unique contact address, also accepted at login.
	Email string `json:"user_email"`

	// PhoneNumber is a contact number of at least ten characters.
	PhoneNumber string `json:"phone_number"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns the public projection of the user that is safe to hand
// back to callers after login. The password hash is not part of it.
func (u User) Profile() UserProfile {
	return UserProfile{
		UserID:    u.UserID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// UserProfile is the public, non-sensitive projection of a [User].
type UserProfile struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"user_email"`
}

// RegisterRequest is the payload of POST /api/auth/register. Password is the
// plain-text password supplied by the caller; it is hashed before storage
// and never persisted or echoed back.
type RegisterRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MiddleInitial string `json:"middle_initial,omitempty"`
	Username      string `json:"username"`
	Email         string `json:"user_email"`
	PhoneNumber   string `json:"phone_number"`
	Password      string `json:"password"`
}

// Credentials is the payload of POST /api/auth/login. Username may hold
// either the username or the registered email address.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
