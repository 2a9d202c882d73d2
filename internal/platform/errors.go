package platform

import (
	"errors"
)

var (
	// ErrAlreadyRunning is an error returned when run can't be started because previous run is not finished yet.
	ErrAlreadyRunning = errors.New("alerts refresh already running")
	// ErrAlertNotFound is returned when alert doesn't exist or belongs to another user.
	ErrAlertNotFound = errors.New("alert not found")
)
