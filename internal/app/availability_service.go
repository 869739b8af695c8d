package app

import (
	"context"
	"time"

	"github.com/peterbarone/partyroombooker-sub001/internal/clock"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

// AvailabilityRepository reads the windows that block a room on a date.
type AvailabilityRepository interface {
	BookingWindows(ctx context.Context, tenantID, roomID string, from, to time.Time) ([]domain.TimeWindow, error)
	LiveHoldWindows(ctx context.Context, tenantID, roomID string, from, to, now time.Time) ([]domain.TimeWindow, error)
}

type AvailabilityService struct {
	repo    AvailabilityRepository
	catalog Catalog
	clock   clock.Clock
}

func NewAvailabilityService(repo AvailabilityRepository, catalog Catalog, clk clock.Clock) *AvailabilityService {
	return &AvailabilityService{
		repo:    repo,
		catalog: catalog,
		clock:   clk,
	}
}

type ListAvailabilityInput struct {
	TenantSlug string
	Date       time.Time
	PackageID  string
	PartySize  int
}

type RoomAvailability struct {
	RoomID    string
	RoomName  string
	Eligible  bool
	Available bool
}

type Slot struct {
	StartAt time.Time
	EndAt   time.Time
	Rooms   []RoomAvailability
}

// ListAvailability projects the tenant's slot template onto a date and
// reports per-room eligibility and availability. Read-only and carries no
// exclusivity guarantee; a reported slot can still lose the race to a hold
// created right after.
func (s *AvailabilityService) ListAvailability(ctx context.Context, in ListAvailabilityInput) ([]Slot, error) {
	tenant, err := resolveTenant(ctx, s.catalog, in.TenantSlug)
	if err != nil {
		return nil, err
	}
	policy, err := s.catalog.PolicyFor(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	var pkg *domain.Package
	if in.PackageID != "" {
		p, err := s.catalog.PackageByID(ctx, tenant.ID, in.PackageID)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, domain.ErrPackageNotFound
		}
		pkg = &p
	}

	templates, err := s.catalog.SlotTemplates(ctx, tenant.ID, in.Date.Weekday())
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return []Slot{}, nil
	}

	rooms, err := s.catalog.RoomsForTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	fitting := rooms[:0:0]
	for _, room := range rooms {
		if room.Active && room.MaxOccupancy >= in.PartySize {
			fitting = append(fitting, room)
		}
	}

	durationMinutes := policy.DefaultDurationMinutes
	if pkg != nil && pkg.DurationMinutes > 0 {
		durationMinutes = pkg.DurationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute
	buffer := time.Duration(policy.BufferMinutes) * time.Minute
	now := s.clock.Now()

	// One fetch per room covering the whole day plus padding, shared by
	// every slot.
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, in.Date.Location())
	from := dayStart.Add(-buffer)
	to := dayStart.Add(24*time.Hour + duration + buffer)

	blocked := make(map[string][]domain.TimeWindow, len(fitting))
	for _, room := range fitting {
		booked, err := s.repo.BookingWindows(ctx, tenant.ID, room.ID, from, to)
		if err != nil {
			return nil, err
		}
		held, err := s.repo.LiveHoldWindows(ctx, tenant.ID, room.ID, from, to, now)
		if err != nil {
			return nil, err
		}
		blocked[room.ID] = append(booked, held...)
	}

	slots := make([]Slot, 0, len(templates))
	for _, tpl := range templates {
		start := tpl.StartOn(in.Date)
		window := domain.TimeWindow{Start: start, End: start.Add(duration)}

		slot := Slot{
			StartAt: window.Start,
			EndAt:   window.End,
			Rooms:   make([]RoomAvailability, 0, len(fitting)),
		}
		for _, room := range fitting {
			slot.Rooms = append(slot.Rooms, RoomAvailability{
				RoomID:    room.ID,
				RoomName:  room.Name,
				Eligible:  pkg == nil || pkg.EligibleFor(room.ID),
				Available: !domain.ConflictsWithAny(window, blocked[room.ID], buffer),
			})
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
