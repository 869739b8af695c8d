package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/peterbarone/partyroombooker-sub001/internal/app"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

func TestHandleListAvailability(t *testing.T) {
	t.Parallel()

	slots := []app.Slot{
		{
			StartAt: time.Date(2025, 6, 7, 14, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2025, 6, 7, 16, 0, 0, 0, time.UTC),
			Rooms: []app.RoomAvailability{
				{RoomID: "room-1", RoomName: "Blue Room", Eligible: true, Available: true},
				{RoomID: "room-2", RoomName: "Red Room", Eligible: false, Available: false},
			},
		},
	}

	tests := []struct {
		name           string
		target         string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			target:         "/api/tenants/village-hall/availability?date=2025-06-07",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"room_name":"Blue Room"`,
		},
		{
			name:           "missing date",
			target:         "/api/tenants/village-hall/availability",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed date",
			target:         "/api/tenants/village-hall/availability?date=07-06-2025",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed party size",
			target:         "/api/tenants/village-hall/availability?date=2025-06-07&party_size=lots",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative party size",
			target:         "/api/tenants/village-hall/availability?date=2025-06-07&party_size=-2",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "tenant not found",
			target:         "/api/tenants/ghost/availability?date=2025-06-07",
			serviceErr:     domain.ErrTenantNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown package",
			target:         "/api/tenants/village-hall/availability?date=2025-06-07&package_id=nope",
			serviceErr:     domain.ErrPackageNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubAvailabilityService{slots: slots, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			HandleListAvailability(svc)(rec, req, httprouter.Params{{Key: "slug", Value: "village-hall"}})

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleListAvailabilityEmptyDay(t *testing.T) {
	t.Parallel()

	svc := &stubAvailabilityService{slots: []app.Slot{}}
	req := httptest.NewRequest(http.MethodGet, "/api/tenants/village-hall/availability?date=2025-06-09", nil)
	rec := httptest.NewRecorder()

	HandleListAvailability(svc)(rec, req, httprouter.Params{{Key: "slug", Value: "village-hall"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"slots":[]`) {
		t.Fatalf("expected empty slots array, got %q", rec.Body.String())
	}
}

type stubAvailabilityService struct {
	slots []app.Slot
	err   error
	in    app.ListAvailabilityInput
}

func (s *stubAvailabilityService) ListAvailability(_ context.Context, in app.ListAvailabilityInput) ([]app.Slot, error) {
	s.in = in
	return s.slots, s.err
}
