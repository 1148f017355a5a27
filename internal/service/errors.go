package service

import "errors"

// Typed failures the handlers map onto HTTP status codes. Anything else
// surfacing from the service is an internal error.
var (
	// ErrInvalidName means the full name is missing or shorter than 3 characters.
	ErrInvalidName = errors.New("full name and email are required, name must be at least 3 characters")

	// ErrInvalidPassword means the password is missing or shorter than 6 characters.
	ErrInvalidPassword = errors.New("password is necessary and must be at least 6 characters")

	// ErrUserExists means the email address is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrMissingCredentials means email or password was not supplied on login.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrPasswordMismatch means the password did not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrUserNotFound means the addressed user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrReminderNotFound means the addressed reminder does not exist.
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrMissingFields means a required reminder field was not supplied.
	ErrMissingFields = errors.New("all fields are required")

	// ErrNoData means the user has no reminders at all.
	ErrNoData = errors.New("no data found")

	// ErrNoUpcoming means the user has no reminders due at or after now.
	ErrNoUpcoming = errors.New("no upcoming reminders")
)
