package models

// Domain events capture what happened in the tenant domain.
// These are pure data structures with no behavior - the application layer
// is responsible for publishing them to the audit system.

// TenantUpserted is emitted when a tenant record is created or replaced.
type TenantUpserted struct {
	TenantID string
	OrgKey   string
	Created  bool
}

// TenantSuspended is emitted when a tenant is moved to suspended.
type TenantSuspended struct {
	TenantID string
}

// TenantReinstated is emitted when a suspended tenant is restored.
type TenantReinstated struct {
	TenantID string
	Status   OnboardingStatus
}
