package handler

import (
	"time"

	"dutywire/internal/tenant/models"
)

type tenantResponse struct {
	ID                 string         `json:"id"`
	OrgKey             string         `json:"org_key"`
	DisplayName        string         `json:"display_name"`
	VerifiedDomains    []string       `json:"verified_domains"`
	OwnerIDs           []string       `json:"owner_ids,omitempty"`
	SecurityOfficerIDs []string       `json:"security_officer_ids,omitempty"`
	Status             string         `json:"status"`
	StatusLabel        string         `json:"status_label"`
	Policy             policyPayload  `json:"policy"`
	Lexicon            lexiconPayload `json:"lexicon"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func toTenantResponse(t *models.TenantRecord) tenantResponse {
	return tenantResponse{
		ID:                 t.ID,
		OrgKey:             t.OrgKey,
		DisplayName:        t.DisplayName,
		VerifiedDomains:    t.VerifiedDomains,
		OwnerIDs:           t.OwnerIDs,
		SecurityOfficerIDs: t.SecurityOfficerIDs,
		Status:             t.Status.String(),
		StatusLabel:        t.Status.Label(),
		Policy: policyPayload{
			RequiresStrongMFA:     t.Policy.RequiresStrongMFA,
			InviteExpiryHours:     int(t.Policy.InviteExpiry / time.Hour),
			AllowSelfRegistration: t.Policy.AllowSelfRegistration,
			DefaultRole:           t.Policy.DefaultRole,
		},
		Lexicon: lexiconPayload{
			SquadSingular:  t.Lexicon.SquadSingular,
			SquadPlural:    t.Lexicon.SquadPlural,
			BureauSingular: t.Lexicon.BureauSingular,
			BureauPlural:   t.Lexicon.BureauPlural,
			TaskSingular:   t.Lexicon.TaskSingular,
			TaskPlural:     t.Lexicon.TaskPlural,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
