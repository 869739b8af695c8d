package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

// CatalogRepository reads tenant configuration. Everything here is
// read-mostly and safe to put behind a short-TTL cache.
type CatalogRepository struct {
	store
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{store: store{pool: pool}}
}

func (r *CatalogRepository) TenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	const query = `SELECT id, slug, name, active FROM tenants WHERE slug = $1`

	var t domain.Tenant
	err := r.queryRow(ctx, query, slug).Scan(&t.ID, &t.Slug, &t.Name, &t.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Tenant{}, domain.ErrTenantNotFound
		}
		return domain.Tenant{}, fmt.Errorf("get tenant by slug: %w", err)
	}
	return t, nil
}

// PolicyFor falls back to the default scheduling parameters when the tenant
// has no policy row.
func (r *CatalogRepository) PolicyFor(ctx context.Context, tenantID string) (domain.Policy, error) {
	const query = `
SELECT hold_minutes, buffer_minutes, default_duration_minutes
FROM tenant_policies
WHERE tenant_id = $1`

	p := domain.Policy{TenantID: tenantID}
	err := r.queryRow(ctx, query, tenantID).
		Scan(&p.HoldMinutes, &p.BufferMinutes, &p.DefaultDurationMinutes)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Policy{}, domain.ErrTenantNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.DefaultPolicy(tenantID), nil
		}
		return domain.Policy{}, fmt.Errorf("get policy: %w", err)
	}
	return p, nil
}

func (r *CatalogRepository) RoomsForTenant(ctx context.Context, tenantID string) ([]domain.Room, error) {
	const query = `
SELECT id, tenant_id, name, max_occupancy, active
FROM rooms
WHERE tenant_id = $1
ORDER BY name`

	rows, err := r.query(ctx, query, tenantID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.TenantID, &room.Name, &room.MaxOccupancy, &room.Active); err != nil {
			return nil, fmt.Errorf("list rooms: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (r *CatalogRepository) PackageByID(ctx context.Context, tenantID, packageID string) (domain.Package, error) {
	const query = `
SELECT p.id, p.tenant_id, p.name, p.duration_minutes, p.active,
       COALESCE(array_agg(pr.room_id::text) FILTER (WHERE pr.room_id IS NOT NULL), '{}')
FROM packages p
LEFT JOIN package_rooms pr ON pr.package_id = p.id
WHERE p.id = $1 AND p.tenant_id = $2
GROUP BY p.id, p.tenant_id, p.name, p.duration_minutes, p.active`

	var pkg domain.Package
	err := r.queryRow(ctx, query, packageID, tenantID).Scan(
		&pkg.ID,
		&pkg.TenantID,
		&pkg.Name,
		&pkg.DurationMinutes,
		&pkg.Active,
		&pkg.EligibleRoomIDs,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Package{}, domain.ErrPackageNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Package{}, domain.ErrPackageNotFound
		}
		return domain.Package{}, fmt.Errorf("get package: %w", err)
	}
	return pkg, nil
}

func (r *CatalogRepository) SlotTemplates(ctx context.Context, tenantID string, weekday time.Weekday) ([]domain.SlotTemplate, error) {
	const query = `
SELECT tenant_id, weekday, start_minutes
FROM slot_templates
WHERE tenant_id = $1 AND weekday = $2
ORDER BY start_minutes`

	rows, err := r.query(ctx, query, tenantID, int(weekday))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("list slot templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.SlotTemplate
	for rows.Next() {
		var tpl domain.SlotTemplate
		var weekdayInt int
		if err := rows.Scan(&tpl.TenantID, &weekdayInt, &tpl.StartMinutes); err != nil {
			return nil, fmt.Errorf("list slot templates: %w", err)
		}
		tpl.Weekday = time.Weekday(weekdayInt)
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slot templates: %w", err)
	}
	return templates, nil
}
