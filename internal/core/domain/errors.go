package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Enum errors
var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidLeadStatus  = errors.New("invalid lead status")
	ErrInvalidReportTopic = errors.New("invalid report topic")
)

// Referral identity errors
var (
	ErrExhaustedRetries = errors.New("exhausted unique code generation attempts")
)
