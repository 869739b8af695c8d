package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peterbarone/partyroombooker-sub001/internal/clock"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

// HoldRepository is the storage surface the hold manager needs. The
// uniqueness constraint on (tenant, room, start) is the authoritative race
// tie-breaker; CreateHold must surface a violation as
// domain.ErrSlotTemporarilyHeld.
type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	RoomForUpdate(ctx context.Context, tenantID, roomID string) (domain.Room, error)
	BookingWindows(ctx context.Context, tenantID, roomID string, from, to time.Time) ([]domain.TimeWindow, error)
	LiveHoldWindows(ctx context.Context, tenantID, roomID string, from, to, now time.Time) ([]domain.TimeWindow, error)
	CreateHold(ctx context.Context, hold domain.Hold) error
	HoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error)
	UpdateHoldExpiry(ctx context.Context, holdID string, expiresAt time.Time) error
	DeleteLiveHold(ctx context.Context, holdID string, now time.Time) (bool, error)
	DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error)
}

type HoldService struct {
	repo    HoldRepository
	catalog Catalog
	clock   clock.Clock
}

func NewHoldService(repo HoldRepository, catalog Catalog, clk clock.Clock) *HoldService {
	return &HoldService{
		repo:    repo,
		catalog: catalog,
		clock:   clk,
	}
}

type CreateHoldInput struct {
	TenantSlug  string
	RoomID      string
	PackageID   string
	StartAt     time.Time
	EndAt       time.Time
	PartySize   int
	ClientToken string
}

// CreateHold places a provisional reservation on a room/time window. The
// application-level conflict check runs under a row lock on the room;
// the insert constraint settles whatever race remains.
func (s *HoldService) CreateHold(ctx context.Context, in CreateHoldInput) (domain.Hold, error) {
	tenant, err := resolveTenant(ctx, s.catalog, in.TenantSlug)
	if err != nil {
		return domain.Hold{}, err
	}
	policy, err := s.catalog.PolicyFor(ctx, tenant.ID)
	if err != nil {
		return domain.Hold{}, err
	}

	var pkg *domain.Package
	if in.PackageID != "" {
		p, err := s.catalog.PackageByID(ctx, tenant.ID, in.PackageID)
		if err != nil {
			if err == domain.ErrPackageNotFound {
				return domain.Hold{}, domain.ErrInvalidPackage
			}
			return domain.Hold{}, err
		}
		if !p.Active {
			return domain.Hold{}, domain.ErrInvalidPackage
		}
		pkg = &p
	}

	window, err := resolveWindow(in.StartAt, in.EndAt, pkg, policy)
	if err != nil {
		return domain.Hold{}, err
	}

	now := s.clock.Now()
	var result domain.Hold

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		room, err := s.repo.RoomForUpdate(txCtx, tenant.ID, in.RoomID)
		if err != nil {
			return err
		}
		if in.PartySize > room.MaxOccupancy {
			return domain.ErrCapacityExceeded
		}
		if pkg != nil && !pkg.EligibleFor(room.ID) {
			return domain.ErrRoomNotEligibleForPackage
		}

		buffer := time.Duration(policy.BufferMinutes) * time.Minute
		from, to := window.Start.Add(-buffer), window.End.Add(buffer)

		booked, err := s.repo.BookingWindows(txCtx, tenant.ID, room.ID, from, to)
		if err != nil {
			return err
		}
		if domain.ConflictsWithAny(window, booked, buffer) {
			return domain.ErrSlotUnavailable
		}

		held, err := s.repo.LiveHoldWindows(txCtx, tenant.ID, room.ID, from, to, now)
		if err != nil {
			return err
		}
		if domain.ConflictsWithAny(window, held, buffer) {
			return domain.ErrSlotTemporarilyHeld
		}

		hold := domain.Hold{
			ID:          uuid.NewString(),
			TenantID:    tenant.ID,
			RoomID:      room.ID,
			PackageID:   in.PackageID,
			StartAt:     window.Start,
			EndAt:       window.End,
			PartySize:   in.PartySize,
			ClientToken: in.ClientToken,
			CreatedAt:   now,
			ExpiresAt:   now.Add(time.Duration(policy.HoldMinutes) * time.Minute),
		}
		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			return err
		}
		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

func resolveWindow(start, end time.Time, pkg *domain.Package, policy domain.Policy) (domain.TimeWindow, error) {
	if start.IsZero() {
		return domain.TimeWindow{}, domain.ErrInvalidWindow
	}
	if end.IsZero() {
		minutes := policy.DefaultDurationMinutes
		if pkg != nil && pkg.DurationMinutes > 0 {
			minutes = pkg.DurationMinutes
		}
		end = start.Add(time.Duration(minutes) * time.Minute)
	}
	w := domain.TimeWindow{Start: start, End: end}
	if !w.Valid() {
		return domain.TimeWindow{}, domain.ErrInvalidWindow
	}
	return w, nil
}

type ExtendHoldInput struct {
	HoldID          string
	ExtendMinutes   int
	MaxTotalMinutes int
}

// ExtendHold pushes a live hold's expiry forward, capped relative to its
// creation time so holds cannot be kept alive indefinitely.
func (s *HoldService) ExtendHold(ctx context.Context, in ExtendHoldInput) (time.Time, error) {
	if in.ExtendMinutes <= 0 {
		return time.Time{}, domain.ErrCannotExtendFurther
	}

	now := s.clock.Now()
	var newExpiry time.Time

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

		capMinutes := policy.HoldMinutes
		if in.MaxTotalMinutes > capMinutes {
			capMinutes = in.MaxTotalMinutes
		}
		capAt := hold.CreatedAt.Add(time.Duration(capMinutes) * time.Minute)

		proposed := hold.ExpiresAt
		if now.After(proposed) {
			proposed = now
		}
		proposed = proposed.Add(time.Duration(in.ExtendMinutes) * time.Minute)
		if proposed.After(capAt) {
			proposed = capAt
		}
		if !proposed.After(now) {
			return domain.ErrCannotExtendFurther
		}

		if err := s.repo.UpdateHoldExpiry(txCtx, hold.ID, proposed); err != nil {
			return err
		}
		newExpiry = proposed
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return newExpiry, nil
}

// ReleaseHold deletes a live hold. Expired or already-consumed holds report
// domain.ErrHoldNotFound.
func (s *HoldService) ReleaseHold(ctx context.Context, holdID string) error {
	deleted, err := s.repo.DeleteLiveHold(ctx, holdID, s.clock.Now())
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrHoldNotFound
	}
	return nil
}

// ExpireHolds physically removes holds past their expiry. Correctness never
// depends on this running; every read path already filters expired holds.
func (s *HoldService) ExpireHolds(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredHolds(ctx, s.clock.Now())
}
