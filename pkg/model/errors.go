package model

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrEpicNotFound       = errors.New("epic not found")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidHours       = errors.New("hours per week must be between 1 and 80")
)
