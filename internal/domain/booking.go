package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a durable reservation produced by committing a live hold.
// Status moves to confirmed via an external payment event and to cancelled
// externally; cancelled bookings no longer block the room.
type Booking struct {
	ID         string
	TenantID   string
	RoomID     string
	PackageID  string
	CustomerID string
	StartAt    time.Time
	EndAt      time.Time
	PartySize  int
	Status     BookingStatus
	Notes      string
	CreatedAt  time.Time
}

// Blocking reports whether the booking currently occupies its room window.
func (b Booking) Blocking() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Window returns the booking's reserved time window.
func (b Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartAt, End: b.EndAt}
}

// Customer is a tenant-scoped customer record, deduplicated by email.
type Customer struct {
	ID       string
	TenantID string
	Email    string
	Name     string
	Phone    string
}
