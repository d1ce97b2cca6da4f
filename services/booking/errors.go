package booking

import (
	"fmt"

	"decorhub/models"
	"decorhub/utils"
)

// DuplicateBookingError carries the open booking that blocked a new one.
type DuplicateBookingError struct {
	Existing *models.Booking
}

func (e *DuplicateBookingError) Error() string {
	return fmt.Sprintf("booking %s for this service is already active", e.Existing.ID)
}

func (e *DuplicateBookingError) Unwrap() error {
	return utils.ErrDuplicateBooking
}
