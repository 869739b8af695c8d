package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

type BookingRepository struct {
	store
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{store: store{pool: pool}}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) HoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	return holdForUpdate(ctx, r.store, holdID)
}

func (r *BookingRepository) RoomForUpdate(ctx context.Context, tenantID, roomID string) (domain.Room, error) {
	const query = `
SELECT id, tenant_id, name, max_occupancy, active
FROM rooms
WHERE id = $1 AND tenant_id = $2 AND active
FOR UPDATE`

	var room domain.Room
	err := r.queryRow(ctx, query, roomID, tenantID).
		Scan(&room.ID, &room.TenantID, &room.Name, &room.MaxOccupancy, &room.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Room{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("get room for update: %w", err)
	}
	return room, nil
}

func (r *BookingRepository) BookingWindows(ctx context.Context, tenantID, roomID string, from, to time.Time) ([]domain.TimeWindow, error) {
	const query = `
SELECT start_at, end_at
FROM bookings
WHERE tenant_id = $1 AND room_id = $2
  AND status IN ('pending', 'confirmed')
  AND start_at < $4 AND end_at > $3`

	return r.scanWindows(ctx, "booking windows", query, tenantID, roomID, from, to)
}

// FindOrCreateCustomer deduplicates by lower-cased email within the tenant.
// Customers without an email always get a fresh row.
func (r *BookingRepository) FindOrCreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(customer.Email))
	if email != "" {
		const query = `
SELECT id, tenant_id, COALESCE(email, ''), name, COALESCE(phone, '')
FROM customers
WHERE tenant_id = $1 AND lower(email) = $2`

		var found domain.Customer
		err := r.queryRow(ctx, query, customer.TenantID, email).
			Scan(&found.ID, &found.TenantID, &found.Email, &found.Name, &found.Phone)
		if err == nil {
			return found, nil
		}
		if err != pgx.ErrNoRows {
			return domain.Customer{}, fmt.Errorf("find customer: %w", err)
		}
	}

	const stmt = `
INSERT INTO customers (id, tenant_id, email, name, phone)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))`

	_, err := r.exec(ctx, stmt, customer.ID, customer.TenantID, email, customer.Name, customer.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent commit inserted the same email first; reuse it.
			return r.FindOrCreateCustomer(ctx, customer)
		}
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	customer.Email = email
	return customer, nil
}

// CreateBooking inserts a pending/confirmed booking. The partial uniqueness
// constraint on (tenant, room, start) is the tie-breaker for commits racing
// from different holds; a violation is surfaced as ErrSlotUnavailable.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, tenant_id, room_id, package_id, customer_id, start_at, end_at, party_size, status, notes, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.TenantID,
		booking.RoomID,
		booking.PackageID,
		booking.CustomerID,
		booking.StartAt,
		booking.EndAt,
		booking.PartySize,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotUnavailable
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) DeleteHold(ctx context.Context, holdID string) (bool, error) {
	const stmt = `DELETE FROM holds WHERE id = $1`

	tag, err := r.exec(ctx, stmt, holdID)
	if err != nil {
		return false, fmt.Errorf("delete hold: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) BookingForUpdate(ctx context.Context, bookingID string) (domain.Booking, error) {
	const query = `
SELECT id, tenant_id, room_id, COALESCE(package_id::text, ''), customer_id,
       start_at, end_at, party_size, status, notes, created_at
FROM bookings
WHERE id = $1
FOR UPDATE`

	var b domain.Booking
	var status string
	err := r.queryRow(ctx, query, bookingID).Scan(
		&b.ID,
		&b.TenantID,
		&b.RoomID,
		&b.PackageID,
		&b.CustomerID,
		&b.StartAt,
		&b.EndAt,
		&b.PartySize,
		&status,
		&b.Notes,
		&b.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking for update: %w", err)
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	const stmt = `UPDATE bookings SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, bookingID, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
