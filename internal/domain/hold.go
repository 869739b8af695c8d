package domain

import "time"

// Hold is a provisional reservation that blocks a room/time window while one
// customer completes checkout. A hold is live iff now < ExpiresAt; expired
// holds are treated as absent everywhere regardless of physical deletion.
type Hold struct {
	ID          string
	TenantID    string
	RoomID      string
	PackageID   string
	StartAt     time.Time
	EndAt       time.Time
	PartySize   int
	ClientToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Live reports whether the hold still reserves its window at the given
// instant.
func (h Hold) Live(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// Window returns the hold's reserved time window.
func (h Hold) Window() TimeWindow {
	return TimeWindow{Start: h.StartAt, End: h.EndAt}
}
