package models

// OnboardingStatus is the lifecycle stage gating whether a tenant's users may
// sign in. There are no automatic transitions; status only changes through an
// administrative upsert.
//
// Invariants:
//   - Forward progression: awaitingVerification → pendingOwnerBootstrap → ready
//   - suspended is reachable from any state and sticky until explicitly reverted
//   - Only ready permits the onboarding gate to allow sign-in
type OnboardingStatus string

const (
	StatusAwaitingVerification  OnboardingStatus = "awaitingVerification"
	StatusPendingOwnerBootstrap OnboardingStatus = "pendingOwnerBootstrap"
	StatusReady                 OnboardingStatus = "ready"
	StatusSuspended             OnboardingStatus = "suspended"
)

// validStatuses is the single source of truth for valid onboarding statuses.
var validStatuses = map[OnboardingStatus]bool{
	StatusAwaitingVerification:  true,
	StatusPendingOwnerBootstrap: true,
	StatusReady:                 true,
	StatusSuspended:             true,
}

// IsValid checks if the status is one of the supported enum values.
func (s OnboardingStatus) IsValid() bool {
	return validStatuses[s]
}

// CanTransitionTo reports whether the transition to target is allowed.
func (s OnboardingStatus) CanTransitionTo(target OnboardingStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	// Suspension is always reachable; reverting a suspension may land on any
	// non-suspended state because the pre-suspension stage is not recorded.
	if target == StatusSuspended || s == StatusSuspended {
		return true
	}
	switch s {
	case StatusAwaitingVerification:
		return target == StatusPendingOwnerBootstrap
	case StatusPendingOwnerBootstrap:
		return target == StatusReady
	default:
		return false
	}
}

// Label returns the human-readable form used in user-facing messages.
func (s OnboardingStatus) Label() string {
	switch s {
	case StatusAwaitingVerification:
		return "Awaiting Verification"
	case StatusPendingOwnerBootstrap:
		return "Pending Owner Bootstrap"
	case StatusReady:
		return "Ready"
	case StatusSuspended:
		return "Suspended"
	default:
		return string(s)
	}
}

func (s OnboardingStatus) String() string {
	return string(s)
}
