package domain

import "errors"

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInternalServer   = errors.New("internal server error")
)

// Voter errors
var (
	ErrVoterNotFound     = errors.New("voter not found")
	ErrOutOfScope        = errors.New("voter belongs to another voting area")
	ErrDuplicateIdentity = errors.New("id card already registered")
	ErrMissingIdentity   = errors.New("id card is missing")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrProtectedUser     = errors.New("built-in admin account is protected")
)

// Area errors
var (
	ErrAreaNotFound      = errors.New("voting area not found")
	ErrAreaAlreadyExists = errors.New("voting area already exists")
)
