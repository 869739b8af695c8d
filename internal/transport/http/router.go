package http

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Services bundles everything the router needs.
type Services struct {
	Availability AvailabilityLister
	Holds        HoldService
	Bookings     BookingService
	DB           Pinger
}

// HoldService combines the hold operations exposed over HTTP.
type HoldService interface {
	HoldCreator
	HoldExtender
	HoldReleaser
}

// BookingService combines the booking operations exposed over HTTP.
type BookingService interface {
	HoldCommitter
	BookingTransitioner
}

// NewRouter wires all API routes.
func NewRouter(svcs Services) http.Handler {
	router := httprouter.New()

	router.GET("/api/tenants/:slug/availability", HandleListAvailability(svcs.Availability))
	router.POST("/api/tenants/:slug/holds", HandleCreateHold(svcs.Holds))
	router.POST("/api/holds/:id/extend", HandleExtendHold(svcs.Holds))
	router.DELETE("/api/holds/:id", HandleReleaseHold(svcs.Holds))
	router.POST("/api/bookings", HandleCreateBooking(svcs.Bookings))
	router.POST("/api/bookings/:id/confirm", HandleConfirmBooking(svcs.Bookings))
	router.POST("/api/bookings/:id/cancel", HandleCancelBooking(svcs.Bookings))

	router.HandlerFunc(http.MethodGet, "/health", HandleHealth(svcs.DB))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return router
}
