package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/peterbarone/partyroombooker-sub001/internal/app"
)

// AvailabilityLister is the minimal interface needed to compile a day's
// availability grid.
type AvailabilityLister interface {
	ListAvailability(ctx context.Context, in app.ListAvailabilityInput) ([]app.Slot, error)
}

// HandleListAvailability returns the handler for the per-day availability
// grid. Query params: date (YYYY-MM-DD, required), package_id, party_size.
func HandleListAvailability(svc AvailabilityLister) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		q := r.URL.Query()

		dateStr := q.Get("date")
		if dateStr == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "date query parameter is required")
			return
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "date must be formatted YYYY-MM-DD")
			return
		}

		partySize := 0
		if raw := q.Get("party_size"); raw != "" {
			partySize, err = strconv.Atoi(raw)
			if err != nil || partySize < 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "party_size must be a non-negative integer")
				return
			}
		}

		slots, err := svc.ListAvailability(r.Context(), app.ListAvailabilityInput{
			TenantSlug: ps.ByName("slug"),
			Date:       date,
			PackageID:  q.Get("package_id"),
			PartySize:  partySize,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := availabilityResponse{
			Date:  dateStr,
			Slots: make([]slotPayload, 0, len(slots)),
		}
		for _, slot := range slots {
			sp := slotPayload{
				StartAt: slot.StartAt,
				EndAt:   slot.EndAt,
				Rooms:   make([]roomAvailabilityPayload, 0, len(slot.Rooms)),
			}
			for _, room := range slot.Rooms {
				sp.Rooms = append(sp.Rooms, roomAvailabilityPayload{
					RoomID:    room.RoomID,
					RoomName:  room.RoomName,
					Eligible:  room.Eligible,
					Available: room.Available,
				})
			}
			resp.Slots = append(resp.Slots, sp)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type availabilityResponse struct {
	Date  string        `json:"date"`
	Slots []slotPayload `json:"slots"`
}

type slotPayload struct {
	StartAt time.Time                 `json:"start_at"`
	EndAt   time.Time                 `json:"end_at"`
	Rooms   []roomAvailabilityPayload `json:"rooms"`
}

type roomAvailabilityPayload struct {
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	Eligible  bool   `json:"eligible"`
	Available bool   `json:"available"`
}
