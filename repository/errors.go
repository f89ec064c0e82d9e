package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrStoreUnavailable wraps any transport or query failure from the store.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrTableNotFound       = errors.New("table not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidTransition is returned when an action's precondition on the
	// table's current status does not hold.
	ErrInvalidTransition = errors.New("invalid table transition")
)

// storeErr translates a gorm error into the domain taxonomy: record-not-found
// becomes the given notFound sentinel, everything else is a store failure.
func storeErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
