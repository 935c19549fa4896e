package services

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration          = errors.New("configuration error")
	ErrInvalidDateRange       = errors.New("invalid date range")
	ErrMalformedWeatherRange  = errors.New("malformed weather range")
	ErrAutoAdaptationDisabled = errors.New("auto adaptation disabled for calendar")
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskAlreadyComplete    = errors.New("task is already completed")
)

// UnknownGenusWarning is non-fatal: generation falls back to the default protocol.
type UnknownGenusWarning struct {
	Genus string
}

func (warning UnknownGenusWarning) Error() string {
	return fmt.Sprintf("unknown genus %q: using default care protocol", warning.Genus)
}
