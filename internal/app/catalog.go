package app

import (
	"context"
	"time"

	"github.com/peterbarone/partyroombooker-sub001/internal/domain"
)

// Catalog reads tenant configuration: directory, policy, rooms, packages and
// slot templates. Implementations may cache with a short TTL; staleness here
// only affects derived validation, never the exclusivity invariant.
type Catalog interface {
	TenantBySlug(ctx context.Context, slug string) (domain.Tenant, error)
	PolicyFor(ctx context.Context, tenantID string) (domain.Policy, error)
	RoomsForTenant(ctx context.Context, tenantID string) ([]domain.Room, error)
	PackageByID(ctx context.Context, tenantID, packageID string) (domain.Package, error)
	SlotTemplates(ctx context.Context, tenantID string, weekday time.Weekday) ([]domain.SlotTemplate, error)
}

func resolveTenant(ctx context.Context, catalog Catalog, slug string) (domain.Tenant, error) {
	tenant, err := catalog.TenantBySlug(ctx, slug)
	if err != nil {
		return domain.Tenant{}, err
	}
	if !tenant.Active {
		return domain.Tenant{}, domain.ErrTenantInactive
	}
	return tenant, nil
}
