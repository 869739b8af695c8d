package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"

	"github.com/peterbarone/partyroombooker-sub001/internal/app"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

var validate = validator.New()

// decodeAndValidate decodes the JSON body into dst and runs struct tag
// validation. Returns a client-facing message on failure.
func decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return fmt.Errorf("invalid field %q: failed %q check", field, verrs[0].Tag())
		}
		return errors.New("invalid request body")
	}
	return nil
}

// HoldCreator is the minimal interface needed to create a hold.
type HoldCreator interface {
	CreateHold(ctx context.Context, in app.CreateHoldInput) (domain.Hold, error)
}

// HandleCreateHold returns the handler for placing a hold on a slot.
func HandleCreateHold(svc HoldCreator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var req createHoldRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
			return
		}

		hold, err := svc.CreateHold(r.Context(), app.CreateHoldInput{
			TenantSlug:  ps.ByName("slug"),
			RoomID:      req.RoomID,
			PackageID:   req.PackageID,
			StartAt:     req.StartAt,
			EndAt:       req.EndAt,
			PartySize:   req.PartySize,
			ClientToken: req.ClientToken,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(holdResponse{
			ID:        hold.ID,
			RoomID:    hold.RoomID,
			PackageID: hold.PackageID,
			StartAt:   hold.StartAt,
			EndAt:     hold.EndAt,
			PartySize: hold.PartySize,
			ExpiresAt: hold.ExpiresAt,
		})
	}
}

// HoldExtender is the minimal interface needed to extend a hold.
type HoldExtender interface {
	ExtendHold(ctx context.Context, in app.ExtendHoldInput) (time.Time, error)
}

// HandleExtendHold returns the handler for pushing a hold's expiry out.
func HandleExtendHold(svc HoldExtender) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var req extendHoldRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
			return
		}

		expiresAt, err := svc.ExtendHold(r.Context(), app.ExtendHoldInput{
			HoldID:          ps.ByName("id"),
			ExtendMinutes:   req.ExtendMinutes,
			MaxTotalMinutes: req.MaxTotalMinutes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(extendHoldResponse{ExpiresAt: expiresAt})
	}
}

// HoldReleaser is the minimal interface needed to release a hold.
type HoldReleaser interface {
	ReleaseHold(ctx context.Context, holdID string) error
}

// HandleReleaseHold returns the handler for voluntarily giving a hold back.
func HandleReleaseHold(svc HoldReleaser) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if err := svc.ReleaseHold(r.Context(), ps.ByName("id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createHoldRequest struct {
	RoomID      string    `json:"room_id" validate:"required"`
	PackageID   string    `json:"package_id"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at"`
	PartySize   int       `json:"party_size" validate:"gte=0"`
	ClientToken string    `json:"client_token"`
}

type holdResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	PackageID string    `json:"package_id,omitempty"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	PartySize int       `json:"party_size"`
	ExpiresAt time.Time `json:"expires_at"`
}

type extendHoldRequest struct {
	ExtendMinutes   int `json:"extend_minutes" validate:"required,gt=0"`
	MaxTotalMinutes int `json:"max_total_minutes" validate:"gte=0"`
}

type extendHoldResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}
