package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func window(t *testing.T, start, end string) TimeWindow {
	t.Helper()
	day := "2025-06-07T"
	s, err := time.Parse(time.RFC3339, day+start+":00Z")
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := time.Parse(time.RFC3339, day+end+":00Z")
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	return TimeWindow{Start: s, End: e}
}

func TestTimeWindow_Intersects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    TimeWindow
		b    TimeWindow
		want bool
	}{
		{"overlapping", window(t, "14:00", "16:00"), window(t, "15:00", "17:00"), true},
		{"contained", window(t, "14:00", "18:00"), window(t, "15:00", "16:00"), true},
		{"identical", window(t, "14:00", "16:00"), window(t, "14:00", "16:00"), true},
		{"touching endpoints", window(t, "14:00", "16:00"), window(t, "16:00", "18:00"), false},
		{"disjoint", window(t, "10:00", "11:00"), window(t, "16:00", "18:00"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a), "intersection must be symmetric")
		})
	}
}

func TestTimeWindow_Padded(t *testing.T) {
	t.Parallel()

	w := window(t, "14:00", "16:00").Padded(15 * time.Minute)
	assert.Equal(t, window(t, "13:45", "16:15"), w)
}

func TestConflictsWithAny_BufferGaps(t *testing.T) {
	t.Parallel()

	buffer := 30 * time.Minute
	existing := []TimeWindow{window(t, "14:00", "16:00")}

	t.Run("gap shorter than buffer conflicts", func(t *testing.T) {
		t.Parallel()
		assert.True(t, ConflictsWithAny(window(t, "16:15", "18:00"), existing, buffer))
	})

	t.Run("gap equal to buffer touches and passes", func(t *testing.T) {
		t.Parallel()
		assert.False(t, ConflictsWithAny(window(t, "16:30", "18:00"), existing, buffer))
	})

	t.Run("gap before the existing window is checked too", func(t *testing.T) {
		t.Parallel()
		assert.True(t, ConflictsWithAny(window(t, "12:00", "13:45"), existing, buffer))
		assert.False(t, ConflictsWithAny(window(t, "12:00", "13:30"), existing, buffer))
	})

	t.Run("direct overlap conflicts regardless of buffer", func(t *testing.T) {
		t.Parallel()
		assert.True(t, ConflictsWithAny(window(t, "15:00", "17:00"), existing, 0))
	})

	t.Run("no existing windows never conflicts", func(t *testing.T) {
		t.Parallel()
		assert.False(t, ConflictsWithAny(window(t, "14:00", "16:00"), nil, buffer))
	})
}

func TestHold_Live(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	h := Hold{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, h.Live(now))
	assert.False(t, h.Live(now.Add(time.Minute)))
	assert.False(t, h.Live(now.Add(2*time.Minute)))
}

func TestBooking_Blocking(t *testing.T) {
	t.Parallel()

	assert.True(t, Booking{Status: BookingStatusPending}.Blocking())
	assert.True(t, Booking{Status: BookingStatusConfirmed}.Blocking())
	assert.False(t, Booking{Status: BookingStatusCancelled}.Blocking())
}

func TestSlotTemplate_StartOn(t *testing.T) {
	t.Parallel()

	tpl := SlotTemplate{Weekday: time.Saturday, StartMinutes: 14 * 60}
	date := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 7, 14, 0, 0, 0, time.UTC), tpl.StartOn(date))
}
