package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/peterbarone/partyroombooker-sub001/internal/app"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

// HoldCommitter is the minimal interface needed to turn a hold into a booking.
type HoldCommitter interface {
	Commit(ctx context.Context, in app.CommitHoldInput) (domain.Booking, error)
}

// HandleCreateBooking returns the handler for committing a hold into a
// pending booking.
func HandleCreateBooking(svc HoldCommitter) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req createBookingRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
			return
		}

		booking, err := svc.Commit(r.Context(), app.CommitHoldInput{
			HoldID: req.HoldID,
			Customer: app.CustomerInfo{
				Email: req.Customer.Email,
				Name:  req.Customer.Name,
				Phone: req.Customer.Phone,
			},
			Notes: req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(bookingResponse{
			ID:        booking.ID,
			RoomID:    booking.RoomID,
			PackageID: booking.PackageID,
			StartAt:   booking.StartAt,
			EndAt:     booking.EndAt,
			PartySize: booking.PartySize,
			Status:    string(booking.Status),
		})
	}
}

// BookingTransitioner is the minimal interface needed to move a booking
// through its lifecycle.
type BookingTransitioner interface {
	ConfirmBooking(ctx context.Context, bookingID string) (domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (domain.Booking, error)
}

// HandleConfirmBooking returns the handler for confirming a pending booking.
func HandleConfirmBooking(svc BookingTransitioner) httprouter.Handle {
	return transitionHandler(func(ctx context.Context, id string) (domain.Booking, error) {
		return svc.ConfirmBooking(ctx, id)
	})
}

// HandleCancelBooking returns the handler for cancelling a booking.
func HandleCancelBooking(svc BookingTransitioner) httprouter.Handle {
	return transitionHandler(func(ctx context.Context, id string) (domain.Booking, error) {
		return svc.CancelBooking(ctx, id)
	})
}

func transitionHandler(fn func(ctx context.Context, id string) (domain.Booking, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		booking, err := fn(r.Context(), ps.ByName("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bookingResponse{
			ID:        booking.ID,
			RoomID:    booking.RoomID,
			PackageID: booking.PackageID,
			StartAt:   booking.StartAt,
			EndAt:     booking.EndAt,
			PartySize: booking.PartySize,
			Status:    string(booking.Status),
		})
	}
}

type createBookingRequest struct {
	HoldID   string          `json:"hold_id" validate:"required"`
	Customer customerPayload `json:"customer"`
	Notes    string          `json:"notes"`
}

type customerPayload struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type bookingResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	PackageID string    `json:"package_id,omitempty"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	PartySize int       `json:"party_size"`
	Status    string    `json:"status"`
}
