package domain

import "errors"

// Виды ошибок ядра бронирования. Ошибки слоёв usecase/service
// оборачивают один из этих видов, чтобы errors.Is работал по виду.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrAlreadyBooked    = errors.New("already booked")
	ErrSelfConflict     = errors.New("customer already has an appointment at this time")
	ErrCapacityExceeded = errors.New("daily capacity exceeded")
	ErrPastDate         = errors.New("date is in the past")
	ErrPolicyViolation  = errors.New("policy violation")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid state")

	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)
