package telemetry

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDeviceNotFound rejects submissions and queries addressed to an
	// unregistered device identifier.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrAnomalyNotFound rejects resolve calls for unknown anomaly ids.
	ErrAnomalyNotFound = errors.New("anomaly not found")

	// ErrDeviceExists rejects re-registration of an existing device id.
	ErrDeviceExists = errors.New("device already registered")

	// ErrInvalidInput rejects malformed submissions before any side effect.
	ErrInvalidInput = errors.New("invalid input")
)

// wrapNotFound converts gorm's missing-record error into the domain
// sentinel; other storage errors pass through untouched.
func wrapNotFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
