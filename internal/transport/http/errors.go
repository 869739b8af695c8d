package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidWindow       = "invalid_window"
	codeInvalidID           = "invalid_id"
	codeTenantNotFound      = "tenant_not_found"
	codeTenantInactive      = "tenant_inactive"
	codeRoomNotFound        = "room_not_found"
	codePackageNotFound     = "package_not_found"
	codeHoldNotFound        = "hold_not_found"
	codeBookingNotFound     = "booking_not_found"
	codePolicyNotFound      = "policy_not_found"
	codeCustomerRequired    = "customer_required"
	codeSlotUnavailable     = "slot_unavailable"
	codeSlotTemporarilyHeld = "slot_temporarily_held"
	codeCapacityExceeded    = "capacity_exceeded"
	codeCannotExtendFurther = "cannot_extend_further"
	codeBookingNotPending   = "booking_not_pending"
	codeInvalidPackage      = "invalid_package"
	codeRoomNotEligible     = "room_not_eligible_for_package"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// statusFor maps the sentinel error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflicts 409, stale-catalog policy
// errors 422, anything unrecognized 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidWindow):
		return http.StatusBadRequest, codeInvalidWindow
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, codeInvalidID
	case errors.Is(err, domain.ErrCustomerRequired):
		return http.StatusBadRequest, codeCustomerRequired
	case errors.Is(err, domain.ErrTenantNotFound):
		return http.StatusNotFound, codeTenantNotFound
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusNotFound, codeTenantInactive
	case errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound, codeRoomNotFound
	case errors.Is(err, domain.ErrPackageNotFound):
		return http.StatusNotFound, codePackageNotFound
	case errors.Is(err, domain.ErrHoldNotFound):
		return http.StatusNotFound, codeHoldNotFound
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, codeBookingNotFound
	case errors.Is(err, domain.ErrPolicyNotFound):
		return http.StatusNotFound, codePolicyNotFound
	case errors.Is(err, domain.ErrSlotUnavailable):
		return http.StatusConflict, codeSlotUnavailable
	case errors.Is(err, domain.ErrSlotTemporarilyHeld):
		return http.StatusConflict, codeSlotTemporarilyHeld
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, codeCapacityExceeded
	case errors.Is(err, domain.ErrCannotExtendFurther):
		return http.StatusConflict, codeCannotExtendFurther
	case errors.Is(err, domain.ErrBookingNotPending):
		return http.StatusConflict, codeBookingNotPending
	case errors.Is(err, domain.ErrInvalidPackage):
		return http.StatusUnprocessableEntity, codeInvalidPackage
	case errors.Is(err, domain.ErrRoomNotEligibleForPackage):
		return http.StatusUnprocessableEntity, codeRoomNotEligible
	default:
		return http.StatusInternalServerError, codeInternalError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}
