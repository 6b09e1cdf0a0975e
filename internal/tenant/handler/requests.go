package handler

import (
	"time"

	"dutywire/internal/tenant/models"
)

type policyPayload struct {
	RequiresStrongMFA     bool   `json:"requires_strong_mfa"`
	InviteExpiryHours     int    `json:"invite_expiry_hours"`
	AllowSelfRegistration bool   `json:"allow_self_registration"`
	DefaultRole           string `json:"default_role"`
}

type lexiconPayload struct {
	SquadSingular  string `json:"squad_singular,omitempty"`
	SquadPlural    string `json:"squad_plural,omitempty"`
	BureauSingular string `json:"bureau_singular,omitempty"`
	BureauPlural   string `json:"bureau_plural,omitempty"`
	TaskSingular   string `json:"task_singular,omitempty"`
	TaskPlural     string `json:"task_plural,omitempty"`
}

type upsertTenantRequest struct {
	ID                 string          `json:"id"`
	OrgKey             string          `json:"org_key"`
	DisplayName        string          `json:"display_name"`
	VerifiedDomains    []string        `json:"verified_domains"`
	OwnerIDs           []string        `json:"owner_ids"`
	SecurityOfficerIDs []string        `json:"security_officer_ids"`
	Status             string          `json:"status"`
	Policy             policyPayload   `json:"policy"`
	Lexicon            *lexiconPayload `json:"lexicon,omitempty"`
}

func (r upsertTenantRequest) toModel() *models.TenantRecord {
	record := &models.TenantRecord{
		ID:                 r.ID,
		OrgKey:             r.OrgKey,
		DisplayName:        r.DisplayName,
		VerifiedDomains:    r.VerifiedDomains,
		OwnerIDs:           r.OwnerIDs,
		SecurityOfficerIDs: r.SecurityOfficerIDs,
		Status:             models.OnboardingStatus(r.Status),
		Policy: models.SecurityPolicy{
			RequiresStrongMFA:     r.Policy.RequiresStrongMFA,
			InviteExpiry:          time.Duration(r.Policy.InviteExpiryHours) * time.Hour,
			AllowSelfRegistration: r.Policy.AllowSelfRegistration,
			DefaultRole:           r.Policy.DefaultRole,
		},
		Lexicon: models.StandardLexicon(),
	}
	if r.Lexicon != nil {
		lex := record.Lexicon
		if r.Lexicon.SquadSingular != "" {
			lex.SquadSingular = r.Lexicon.SquadSingular
		}
		if r.Lexicon.SquadPlural != "" {
			lex.SquadPlural = r.Lexicon.SquadPlural
		}
		if r.Lexicon.BureauSingular != "" {
			lex.BureauSingular = r.Lexicon.BureauSingular
		}
		if r.Lexicon.BureauPlural != "" {
			lex.BureauPlural = r.Lexicon.BureauPlural
		}
		if r.Lexicon.TaskSingular != "" {
			lex.TaskSingular = r.Lexicon.TaskSingular
		}
		if r.Lexicon.TaskPlural != "" {
			lex.TaskPlural = r.Lexicon.TaskPlural
		}
		record.Lexicon = lex
	}
	return record
}

type reinstateRequest struct {
	Status string `json:"status"`
}
