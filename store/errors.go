package store

import "errors"

// Sentinel errors surfaced by the stores. Controllers translate these into
// HTTP responses; inside a gorm transaction returning any of them rolls the
// whole unit back.
var (
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoSlotsAvailable    = errors.New("no slots available")
	ErrAlreadyProcessed    = errors.New("already processed")
)
