package domain

import "errors"

var (
	ErrInvalidInstance  = errors.New("invalid instance")
	ErrInvalidFleet     = errors.New("invalid fleet configuration")
	ErrInstanceNotFound = errors.New("instance not found")
	ErrSolutionNotFound = errors.New("solution not found")
)
