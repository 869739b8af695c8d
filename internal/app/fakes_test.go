package app

import (
	"context"
	"sync"
	"time"

	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

type fakeCatalog struct {
	tenants   map[string]domain.Tenant
	policies  map[string]domain.Policy
	rooms     map[string][]domain.Room
	packages  map[string]domain.Package
	templates map[string][]domain.SlotTemplate
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tenants:   map[string]domain.Tenant{},
		policies:  map[string]domain.Policy{},
		rooms:     map[string][]domain.Room{},
		packages:  map[string]domain.Package{},
		templates: map[string][]domain.SlotTemplate{},
	}
}

func (c *fakeCatalog) TenantBySlug(_ context.Context, slug string) (domain.Tenant, error) {
	t, ok := c.tenants[slug]
	if !ok {
		return domain.Tenant{}, domain.ErrTenantNotFound
	}
	return t, nil
}

func (c *fakeCatalog) PolicyFor(_ context.Context, tenantID string) (domain.Policy, error) {
	p, ok := c.policies[tenantID]
	if !ok {
		return domain.DefaultPolicy(tenantID), nil
	}
	return p, nil
}

func (c *fakeCatalog) RoomsForTenant(_ context.Context, tenantID string) ([]domain.Room, error) {
	return c.rooms[tenantID], nil
}

func (c *fakeCatalog) PackageByID(_ context.Context, tenantID, packageID string) (domain.Package, error) {
	p, ok := c.packages[packageID]
	if !ok || p.TenantID != tenantID {
		return domain.Package{}, domain.ErrPackageNotFound
	}
	return p, nil
}

func (c *fakeCatalog) SlotTemplates(_ context.Context, tenantID string, weekday time.Weekday) ([]domain.SlotTemplate, error) {
	var out []domain.SlotTemplate
	for _, tpl := range c.templates[tenantID] {
		if tpl.Weekday == weekday {
			out = append(out, tpl)
		}
	}
	return out, nil
}

// fakeStore implements HoldRepository, BookingRepository and
// AvailabilityRepository over in-memory slices, including the uniqueness
// behavior of the real constraints. mu stands in for the row lock the
// Postgres repo takes on the room.
type fakeStore struct {
	mu        sync.Mutex
	rooms     map[string]domain.Room
	holds     []domain.Hold
	bookings  []domain.Booking
	customers []domain.Customer
}

func newFakeStore(rooms ...domain.Room) *fakeStore {
	m := make(map[string]domain.Room, len(rooms))
	for _, r := range rooms {
		m[r.ID] = r
	}
	return &fakeStore{rooms: m}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeStore) RoomForUpdate(_ context.Context, tenantID, roomID string) (domain.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok || room.TenantID != tenantID || !room.Active {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeStore) BookingWindows(_ context.Context, tenantID, roomID string, from, to time.Time) ([]domain.TimeWindow, error) {
	var out []domain.TimeWindow
	for _, b := range f.bookings {
		if b.TenantID == tenantID && b.RoomID == roomID && b.Blocking() &&
			b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b.Window())
		}
	}
	return out, nil
}

func (f *fakeStore) LiveHoldWindows(_ context.Context, tenantID, roomID string, from, to, now time.Time) ([]domain.TimeWindow, error) {
	var out []domain.TimeWindow
	for _, h := range f.holds {
		if h.TenantID == tenantID && h.RoomID == roomID && h.Live(now) &&
			h.StartAt.Before(to) && h.EndAt.After(from) {
			out = append(out, h.Window())
		}
	}
	return out, nil
}

func (f *fakeStore) CreateHold(_ context.Context, hold domain.Hold) error {
	kept := f.holds[:0]
	for _, h := range f.holds {
		// The real repo purges same-slot expired rows before inserting.
		if h.TenantID == hold.TenantID && h.RoomID == hold.RoomID &&
			h.StartAt.Equal(hold.StartAt) {
			if h.Live(hold.CreatedAt) {
				return domain.ErrSlotTemporarilyHeld
			}
			continue
		}
		kept = append(kept, h)
	}
	f.holds = append(kept, hold)
	return nil
}

func (f *fakeStore) HoldForUpdate(_ context.Context, holdID string) (domain.Hold, error) {
	for _, h := range f.holds {
		if h.ID == holdID {
			return h, nil
		}
	}
	return domain.Hold{}, domain.ErrHoldNotFound
}

func (f *fakeStore) UpdateHoldExpiry(_ context.Context, holdID string, expiresAt time.Time) error {
	for i := range f.holds {
		if f.holds[i].ID == holdID {
			f.holds[i].ExpiresAt = expiresAt
			return nil
		}
	}
	return domain.ErrHoldNotFound
}

func (f *fakeStore) DeleteLiveHold(_ context.Context, holdID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, h := range f.holds {
		if h.ID == holdID && h.Live(now) {
			f.holds = append(f.holds[:i], f.holds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteExpiredHolds(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	kept := f.holds[:0]
	for _, h := range f.holds {
		if h.Live(now) {
			kept = append(kept, h)
		} else {
			removed++
		}
	}
	f.holds = kept
	return removed, nil
}

func (f *fakeStore) FindOrCreateCustomer(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	if customer.Email != "" {
		for _, c := range f.customers {
			if c.TenantID == customer.TenantID && c.Email == customer.Email {
				return c, nil
			}
		}
	}
	f.customers = append(f.customers, customer)
	return customer, nil
}

func (f *fakeStore) CreateBooking(_ context.Context, booking domain.Booking) error {
	for _, b := range f.bookings {
		if b.TenantID == booking.TenantID && b.RoomID == booking.RoomID &&
			b.StartAt.Equal(booking.StartAt) && b.Blocking() {
			return domain.ErrSlotUnavailable
		}
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeStore) DeleteHold(_ context.Context, holdID string) (bool, error) {
	for i, h := range f.holds {
		if h.ID == holdID {
			f.holds = append(f.holds[:i], f.holds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) BookingForUpdate(_ context.Context, bookingID string) (domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == bookingID {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrBookingNotFound
}

func (f *fakeStore) UpdateBookingStatus(_ context.Context, bookingID string, status domain.BookingStatus) error {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			f.bookings[i].Status = status
			return nil
		}
	}
	return domain.ErrBookingNotFound
}
