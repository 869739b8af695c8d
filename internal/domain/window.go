package domain

import "time"

// TimeWindow is a half-open interval [Start, End). Touching endpoints do not
// overlap.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window has positive length.
func (w TimeWindow) Valid() bool {
	return w.Start.Before(w.End)
}

// Padded widens the window by buffer on both sides.
func (w TimeWindow) Padded(buffer time.Duration) TimeWindow {
	return TimeWindow{
		Start: w.Start.Add(-buffer),
		End:   w.End.Add(buffer),
	}
}

// Intersects reports whether two half-open windows overlap.
func (w TimeWindow) Intersects(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// ConflictsWithAny pads the candidate once and every existing window
// independently, then reports whether any pair intersects. Each window takes
// half the buffer on each side, so two windows conflict exactly when the idle
// gap between them is shorter than the buffer; a gap of exactly the buffer is
// allowed. Buffers are not persisted per entity; stored windows are re-padded
// with the buffer in force at evaluation time.
func ConflictsWithAny(candidate TimeWindow, existing []TimeWindow, buffer time.Duration) bool {
	half := buffer / 2
	padded := candidate.Padded(half)
	for _, w := range existing {
		if padded.Intersects(w.Padded(half)) {
			return true
		}
	}
	return false
}
