package service

import "errors"

var (
	// ErrWrongPassword is returned by Open when the master password does not
	// match the store's verification record.
	ErrWrongPassword = errors.New("wrong password")

	// ErrVersionIsNotSpecified is returned when the binary carries no build
	// version.
	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
