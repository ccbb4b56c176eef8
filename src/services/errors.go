package services

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrClaimHeld         = errors.New("you can only pick up one move at a time")
	ErrIllegalTransition = errors.New("illegal move transition")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrReadOnly          = errors.New("collection does not accept new records")
)
