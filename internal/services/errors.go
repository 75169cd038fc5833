package services

import "errors"

// Typed errors raised by the services. The HTTP layer maps each class to
// a status code; anything unrecognized becomes a 500 with a generic body.
var (
	// ErrUserNotFound indicates no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrDuplicateUser indicates the unique constraint rejected an insert
	// that passed the pre-checks (a concurrent registration won the race).
	ErrDuplicateUser = errors.New("duplicate username or email")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTodoNotFound covers both an absent todo and one owned by a
	// different user, deliberately indistinguishable to the caller.
	ErrTodoNotFound = errors.New("todo not found")
)
