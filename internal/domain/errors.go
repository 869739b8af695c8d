package domain

import "errors"

var (
	// Validation errors: rejected before any state is read.
	ErrInvalidWindow = errors.New("invalid time window")
	ErrInvalidID     = errors.New("invalid id")

	// Not-found errors: terminal for the request.
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrTenantInactive   = errors.New("tenant inactive")
	ErrRoomNotFound     = errors.New("room not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrHoldNotFound     = errors.New("hold not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPolicyNotFound   = errors.New("tenant policy not found")
	ErrCustomerRequired = errors.New("customer email required")

	// Conflict errors: expected under load, caller re-queries and retries
	// with a different slot.
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrSlotTemporarilyHeld = errors.New("slot temporarily held")
	ErrCapacityExceeded    = errors.New("party size exceeds room capacity")
	ErrCannotExtendFurther = errors.New("hold cannot be extended further")
	ErrBookingNotPending   = errors.New("booking is not pending")

	// Policy errors: stale client catalog.
	ErrInvalidPackage            = errors.New("package invalid for tenant")
	ErrRoomNotEligibleForPackage = errors.New("room not eligible for package")
)
