package nutrition

import "errors"

var (
	// ErrInsufficientData means a required biometric input (weight) is missing.
	ErrInsufficientData = errors.New("insufficient biometric data")
	// ErrInvalidGoal means the goal type is not one of the known values.
	ErrInvalidGoal = errors.New("invalid goal type")
)
