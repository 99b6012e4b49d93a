package pricing

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel behind every ConfigurationError.
var ErrConfiguration = errors.New("no rate schedule for request")

// ConfigurationError reports a request combination the rate card cannot price,
// such as a colour large-format job. It is fatal to the request, not to the service.
type ConfigurationError struct {
	Size       Size
	Paper      Paper
	Mode       PrintMode
	Monochrome bool
	Reason     string
}

func newConfigurationError(req Request, reason string) *ConfigurationError {
	return &ConfigurationError{
		Size:       req.Size(),
		Paper:      req.Paper(),
		Mode:       req.Mode(),
		Monochrome: req.Monochrome(),
		Reason:     reason,
	}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s %s %s: %s", ErrConfiguration, e.Size, e.Paper, e.Mode, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
