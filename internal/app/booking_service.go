package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peterbarone/partyroombooker-sub001/internal/clock"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

// BookingRepository is the storage surface the booking committer needs.
// CreateBooking must surface a constraint violation on (tenant, room, start)
// as domain.ErrSlotUnavailable.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	HoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error)
	RoomForUpdate(ctx context.Context, tenantID, roomID string) (domain.Room, error)
	BookingWindows(ctx context.Context, tenantID, roomID string, from, to time.Time) ([]domain.TimeWindow, error)
	FindOrCreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
	DeleteHold(ctx context.Context, holdID string) (bool, error)
	BookingForUpdate(ctx context.Context, bookingID string) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error
}

type BookingService struct {
	repo    BookingRepository
	catalog Catalog
	clock   clock.Clock
}

func NewBookingService(repo BookingRepository, catalog Catalog, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:    repo,
		catalog: catalog,
		clock:   clk,
	}
}

type CustomerInfo struct {
	Email string
	Name  string
	Phone string
}

type CommitHoldInput struct {
	HoldID   string
	Customer CustomerInfo
	Notes    string
}

// Commit converts a live hold into a pending booking and retires the hold.
// Booking insert and hold deletion run in one transaction, so the pair is
// atomic; the final conflict check runs against bookings only, with the
// insert constraint as the backstop against holds that slipped past each
// other.
func (s *BookingService) Commit(ctx context.Context, in CommitHoldInput) (domain.Booking, error) {
	now := s.clock.Now()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.HoldForUpdate(txCtx, in.HoldID)
		if err != nil {
			return err
		}
		if !hold.Live(now) {
			return domain.ErrHoldNotFound
		}

		policy, err := s.catalog.PolicyFor(txCtx, hold.TenantID)
		if err != nil {
			return err
		}

		// Room and package may have changed since the hold was created.
		room, err := s.repo.RoomForUpdate(txCtx, hold.TenantID, hold.RoomID)
		if err != nil {
			return err
		}
		if hold.PartySize > room.MaxOccupancy {
			return domain.ErrCapacityExceeded
		}
		if hold.PackageID != "" {
			pkg, err := s.catalog.PackageByID(txCtx, hold.TenantID, hold.PackageID)
			if err != nil {
				if err == domain.ErrPackageNotFound {
					return domain.ErrInvalidPackage
				}
				return err
			}
			if !pkg.Active {
				return domain.ErrInvalidPackage
			}
			if !pkg.EligibleFor(room.ID) {
				return domain.ErrRoomNotEligibleForPackage
			}
		}

		buffer := time.Duration(policy.BufferMinutes) * time.Minute
		from, to := hold.StartAt.Add(-buffer), hold.EndAt.Add(buffer)
		booked, err := s.repo.BookingWindows(txCtx, hold.TenantID, hold.RoomID, from, to)
		if err != nil {
			return err
		}
		if domain.ConflictsWithAny(hold.Window(), booked, buffer) {
			return domain.ErrSlotUnavailable
		}

		customer, err := s.repo.FindOrCreateCustomer(txCtx, domain.Customer{
			ID:       uuid.NewString(),
			TenantID: hold.TenantID,
			Email:    in.Customer.Email,
			Name:     in.Customer.Name,
			Phone:    in.Customer.Phone,
		})
		if err != nil {
			return err
		}

		booking := domain.Booking{
			ID:         uuid.NewString(),
			TenantID:   hold.TenantID,
			RoomID:     hold.RoomID,
			PackageID:  hold.PackageID,
			CustomerID: customer.ID,
			StartAt:    hold.StartAt,
			EndAt:      hold.EndAt,
			PartySize:  hold.PartySize,
			Status:     domain.BookingStatusPending,
			Notes:      in.Notes,
			CreatedAt:  now,
		}
		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}

		// Insert first, then retire the hold. A hold that is already gone
		// is fine; it can no longer conflict with anything.
		if _, err := s.repo.DeleteHold(txCtx, hold.ID); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// ConfirmBooking marks a pending booking confirmed. External payment
// confirmation calls this; confirming twice is a no-op.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusConfirmed, func(b domain.Booking) error {
		if b.Status == domain.BookingStatusCancelled {
			return domain.ErrBookingNotPending
		}
		return nil
	})
}

// CancelBooking releases a pending or confirmed booking's slot. Cancelling
// twice is a no-op.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusCancelled, func(domain.Booking) error {
		return nil
	})
}

func (s *BookingService) transition(ctx context.Context, bookingID string, to domain.BookingStatus, check func(domain.Booking) error) (domain.Booking, error) {
	var result domain.Booking
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.BookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}
		if err := check(booking); err != nil {
			return err
		}
		if booking.Status == to {
			result = booking
			return nil
		}
		if err := s.repo.UpdateBookingStatus(txCtx, bookingID, to); err != nil {
			return err
		}
		booking.Status = to
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}
