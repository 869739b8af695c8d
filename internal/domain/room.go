package domain

// Room is a bookable party room. Lifecycle is managed externally; the core
// only reads active rooms.
type Room struct {
	ID           string
	TenantID     string
	Name         string
	MaxOccupancy int
	Active       bool
}

// Package is an optional bundle tied to a booking (duration plus a set of
// eligible rooms).
type Package struct {
	ID              string
	TenantID        string
	Name            string
	DurationMinutes int
	Active          bool
	EligibleRoomIDs []string
}

// EligibleFor reports whether roomID is in the package's eligible-room set.
func (p Package) EligibleFor(roomID string) bool {
	for _, id := range p.EligibleRoomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}
