package services

import "errors"

// Domain error taxonomy. Handlers translate these with errors.Is; everything
// here is recoverable-and-reported except ErrBillAllocationExhausted, which is
// additionally logged as an operational alert.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrPackageNotFound = errors.New("pricing package not found")

	// ErrInvalidState is returned when an action is attempted from a status
	// with no edge to the target status. The booking is left unchanged.
	ErrInvalidState = errors.New("invalid booking state for this action")

	ErrValidationFailed = errors.New("validation failed")

	// ErrVehicleUnavailable is the loser's result of the double-booking race:
	// the availability flip is a compare-and-swap and only one request wins.
	ErrVehicleUnavailable = errors.New("vehicle is not available for booking")

	// ErrVehicleIdentityMismatch fails the whole return operation when the
	// plate/engine/chassis snapshot disagrees with the vehicle record.
	ErrVehicleIdentityMismatch = errors.New("vehicle identity does not match booking records")

	ErrInvalidOdometerReading = errors.New("odometer end reading is before the start reading")
	ErrInvalidTimeWindow      = errors.New("return instant is before the pickup instant")

	ErrNoPricingTierFound = errors.New("no active pricing package matches this vehicle")

	// ErrDuplicateBillID is internal to the allocator loop; it marks a
	// uniqueness-constraint violation as retryable and is never surfaced.
	ErrDuplicateBillID = errors.New("bill id already taken")

	ErrBillAllocationExhausted = errors.New("bill id allocation retries exhausted")
)
