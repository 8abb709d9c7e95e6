package service

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrDuplicateUser  = errors.New("user already exists")

	// ErrCodeMismatch covers wrong and already-consumed verification
	// codes; the two are indistinguishable to the caller.
	ErrCodeMismatch = errors.New("invalid verification code")

	// ErrResetTicketInvalid covers mismatched, absent and expired
	// reset tokens.
	ErrResetTicketInvalid = errors.New("invalid or expired reset token")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
