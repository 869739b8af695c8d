package domain

// Tenant is an isolated venue. Every other entity is scoped by its ID and is
// never visible across tenants.
type Tenant struct {
	ID     string
	Slug   string
	Name   string
	Active bool
}

// Policy holds a tenant's scheduling parameters. Read-mostly; mutated only by
// tenant administration outside this core.
type Policy struct {
	TenantID               string
	HoldMinutes            int
	BufferMinutes          int
	DefaultDurationMinutes int
}

const (
	DefaultHoldMinutes     = 15
	DefaultBufferMinutes   = 30
	DefaultDurationMinutes = 120
)

// DefaultPolicy returns the fallback scheduling parameters for a tenant that
// has no explicit policy row.
func DefaultPolicy(tenantID string) Policy {
	return Policy{
		TenantID:               tenantID,
		HoldMinutes:            DefaultHoldMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		DefaultDurationMinutes: DefaultDurationMinutes,
	}
}
