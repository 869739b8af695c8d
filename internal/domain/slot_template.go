package domain

import "time"

// SlotTemplate is one candidate start time in a tenant's weekly schedule:
// StartMinutes is minutes after local midnight on the given weekday.
type SlotTemplate struct {
	TenantID     string
	Weekday      time.Weekday
	StartMinutes int
}

// StartOn anchors the template entry to a concrete date. The date's own
// location is preserved.
func (s SlotTemplate) StartOn(date time.Time) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(time.Duration(s.StartMinutes) * time.Minute)
}
