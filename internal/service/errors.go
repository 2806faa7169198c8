package service

import (
	"fmt"

	"seatbooking/internal/domain"
)

// storeErr passes declared kinds through and classifies anything else as
// ErrStoreUnavailable, so a failed lookup is never read as "no conflict".
func storeErr(err error) error {
	if err == nil || domain.IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
