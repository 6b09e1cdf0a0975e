package models

import (
	"strings"
	"time"

	dErrors "dutywire/pkg/domain-errors"
)

// SecurityPolicy captures the policy knobs every tenant tracks before its
// users sign in. The gate does not evaluate these; they are enforced by the
// identity provider once a sign-in is allowed through.
type SecurityPolicy struct {
	RequiresStrongMFA     bool          `json:"requires_strong_mfa"`
	InviteExpiry          time.Duration `json:"invite_expiry"`
	AllowSelfRegistration bool          `json:"allow_self_registration"`
	DefaultRole           string        `json:"default_role"`
}

// Lexicon is the tenant-specific display vocabulary for organizational terms.
// Purely cosmetic; never decision-relevant.
type Lexicon struct {
	SquadSingular  string `json:"squad_singular"`
	SquadPlural    string `json:"squad_plural"`
	BureauSingular string `json:"bureau_singular"`
	BureauPlural   string `json:"bureau_plural"`
	TaskSingular   string `json:"task_singular"`
	TaskPlural     string `json:"task_plural"`
}

// StandardLexicon returns the default vocabulary used when a tenant has not
// customized its terms.
func StandardLexicon() Lexicon {
	return Lexicon{
		SquadSingular:  "Squad",
		SquadPlural:    "Squads",
		BureauSingular: "Bureau",
		BureauPlural:   "Bureaus",
		TaskSingular:   "Task",
		TaskPlural:     "Tasks",
	}
}

// TenantRecord is the aggregate root for one organization.
//
// Invariants:
//   - ID is a non-empty opaque string, compared case-insensitively
//   - OrgKey is non-empty and unique within a store (last write wins)
//   - VerifiedDomains are stored lowercased
//   - Status is a valid OnboardingStatus
//   - CreatedAt is immutable after construction
//
// Owner and security-officer identifiers are opaque to this core; they are
// resolved by the identity provider, not validated here.
type TenantRecord struct {
	ID                 string           `json:"id"`
	OrgKey             string           `json:"org_key"`
	DisplayName        string           `json:"display_name"`
	VerifiedDomains    []string         `json:"verified_domains"`
	OwnerIDs           []string         `json:"owner_ids"`
	SecurityOfficerIDs []string         `json:"security_officer_ids"`
	Status             OnboardingStatus `json:"status"`
	Policy             SecurityPolicy   `json:"policy"`
	Lexicon            Lexicon          `json:"lexicon"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewTenantRecord constructs a record and enforces construction invariants.
func NewTenantRecord(id, orgKey, displayName string, domains []string, status OnboardingStatus, policy SecurityPolicy, now time.Time) (*TenantRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant id cannot be empty")
	}
	if strings.TrimSpace(orgKey) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "organization key cannot be empty")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant display name cannot be empty")
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown onboarding status")
	}
	return &TenantRecord{
		ID:              id,
		OrgKey:          orgKey,
		DisplayName:     displayName,
		VerifiedDomains: lowerAll(domains),
		Status:          status,
		Policy:          policy,
		Lexicon:         StandardLexicon(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// OwnsDomain reports whether domain is on the tenant's verified list.
// Comparison is case-insensitive and exact (no suffix matching).
func (t *TenantRecord) OwnsDomain(domain string) bool {
	normalized := strings.ToLower(domain)
	for _, d := range t.VerifiedDomains {
		if strings.ToLower(d) == normalized {
			return true
		}
	}
	return false
}

// IsReady reports whether the gate may allow sign-ins for this tenant.
func (t *TenantRecord) IsReady() bool {
	return t.Status == StatusReady
}

// Clone returns a deep copy so callers can hand records across goroutines
// without sharing slices.
func (t *TenantRecord) Clone() *TenantRecord {
	cp := *t
	cp.VerifiedDomains = append([]string(nil), t.VerifiedDomains...)
	cp.OwnerIDs = append([]string(nil), t.OwnerIDs...)
	cp.SecurityOfficerIDs = append([]string(nil), t.SecurityOfficerIDs...)
	return &cp
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
