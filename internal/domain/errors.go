package domain

import "errors"

var (
	ErrValidation = errors.New("validation") // 400

	ErrDuplicateUsername = errors.New("username already exists") // 409
	ErrDuplicateEmail    = errors.New("email already exists")    // 409

	// ErrAuthFailure never says whether the username or the password was wrong.
	ErrAuthFailure = errors.New("invalid username or password") // 401

	ErrNotFound = errors.New("not found") // 404

	ErrFeedUnavailable    = errors.New("product feed unavailable") // 502
	ErrStorageUnavailable = errors.New("storage unavailable")      // 503
)
