package app

import "errors"

var (
	// ErrValidation indicates a missing or malformed input field.
	ErrValidation = errors.New("please fill in all fields correctly")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrWeakCredential indicates the password is shorter than MinPasswordLength.
	ErrWeakCredential = errors.New("password must be at least 8 characters")
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoSession indicates that nobody is logged in.
	ErrNoSession = errors.New("not logged in")
)
