package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

type HoldRepository struct {
	store
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{store: store{pool: pool}}
}

func (r *HoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// RoomForUpdate locks the room row, serializing concurrent writers for the
// same room until the transaction ends.
func (r *HoldRepository) RoomForUpdate(ctx context.Context, tenantID, roomID string) (domain.Room, error) {
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

// BookingWindows returns the windows of pending/confirmed bookings for the
// room that overlap [from, to).
func (r *HoldRepository) BookingWindows(ctx context.Context, tenantID, roomID string, from, to time.Time) ([]domain.TimeWindow, error) {
	const query = `
SELECT start_at, end_at
FROM bookings
WHERE tenant_id = $1 AND room_id = $2
  AND status IN ('pending', 'confirmed')
  AND start_at < $4 AND end_at > $3`

	return r.scanWindows(ctx, "booking windows", query, tenantID, roomID, from, to)
}

// LiveHoldWindows returns the windows of unexpired holds for the room that
// overlap [from, to). Expired rows are excluded regardless of sweep timing.
func (r *HoldRepository) LiveHoldWindows(ctx context.Context, tenantID, roomID string, from, to, now time.Time) ([]domain.TimeWindow, error) {
	const query = `
SELECT start_at, end_at
FROM holds
WHERE tenant_id = $1 AND room_id = $2
  AND expires_at > $5
  AND start_at < $4 AND end_at > $3`

	return r.scanWindows(ctx, "live hold windows", query, tenantID, roomID, from, to, now)
}

// CreateHold inserts a hold. Expired rows for the same slot are purged first
// so the uniqueness constraint only ever trips on a live competitor, which is
// surfaced as ErrSlotTemporarilyHeld.
func (r *HoldRepository) CreateHold(ctx context.Context, hold domain.Hold) error {
	const purge = `
DELETE FROM holds
WHERE tenant_id = $1 AND room_id = $2 AND start_at = $3 AND expires_at <= $4`

	if _, err := r.exec(ctx, purge, hold.TenantID, hold.RoomID, hold.StartAt, hold.CreatedAt); err != nil {
		return fmt.Errorf("purge expired holds: %w", err)
	}

	const stmt = `
INSERT INTO holds (id, tenant_id, room_id, package_id, start_at, end_at, party_size, client_token, created_at, expires_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9, $10)`

	_, err := r.exec(ctx, stmt,
		hold.ID,
		hold.TenantID,
		hold.RoomID,
		hold.PackageID,
		hold.StartAt,
		hold.EndAt,
		hold.PartySize,
		hold.ClientToken,
		hold.CreatedAt,
		hold.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotTemporarilyHeld
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create hold: %w", err)
	}
	return nil
}

func (r *HoldRepository) HoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	return holdForUpdate(ctx, r.store, holdID)
}

func (r *HoldRepository) UpdateHoldExpiry(ctx context.Context, holdID string, expiresAt time.Time) error {
	const stmt = `UPDATE holds SET expires_at = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, holdID, expiresAt)
	if err != nil {
		return fmt.Errorf("update hold expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldNotFound
	}
	return nil
}

func (r *HoldRepository) DeleteLiveHold(ctx context.Context, holdID string, now time.Time) (bool, error) {
	const stmt = `DELETE FROM holds WHERE id = $1 AND expires_at > $2`

	tag, err := r.exec(ctx, stmt, holdID, now)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrHoldNotFound
		}
		return false, fmt.Errorf("delete live hold: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *HoldRepository) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `DELETE FROM holds WHERE expires_at <= $1`

	tag, err := r.exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired holds: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s store) scanWindows(ctx context.Context, op, query string, args ...any) ([]domain.TimeWindow, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var windows []domain.TimeWindow
	for rows.Next() {
		var w domain.TimeWindow
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return windows, nil
}

func holdForUpdate(ctx context.Context, s store, holdID string) (domain.Hold, error) {
	const query = `
SELECT id, tenant_id, room_id, COALESCE(package_id::text, ''), start_at, end_at,
       party_size, COALESCE(client_token, ''), created_at, expires_at
FROM holds
WHERE id = $1
FOR UPDATE`

	var h domain.Hold
	err := s.queryRow(ctx, query, holdID).Scan(
		&h.ID,
		&h.TenantID,
		&h.RoomID,
		&h.PackageID,
		&h.StartAt,
		&h.EndAt,
		&h.PartySize,
		&h.ClientToken,
		&h.CreatedAt,
		&h.ExpiresAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Hold{}, domain.ErrHoldNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Hold{}, domain.ErrHoldNotFound
		}
		return domain.Hold{}, fmt.Errorf("get hold for update: %w", err)
	}
	return h, nil
}
