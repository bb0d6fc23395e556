package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAlreadyConsumed is returned when a verification code was redeemed before.
	ErrAlreadyConsumed = errors.New("verification code already consumed")
)
