package store

import (
	"context"
	"time"

	"dutywire/internal/tenant/models"
)

// SampleTenants returns the fixed development tenant set so the gate can be
// exercised end to end before a real persistence collaborator is wired in.
func SampleTenants(now time.Time) []*models.TenantRecord {
	return []*models.TenantRecord{
		{
			ID:                 "demo-pd",
			OrgKey:             "DEMO-PD",
			DisplayName:        "Demo Police Department",
			VerifiedDomains:    []string{"demopd.example", "ops.demopd.example", "gmail.com"},
			OwnerIDs:           []string{"sheriff.demopd", "chief.demopd"},
			SecurityOfficerIDs: []string{"aso.demopd"},
			Status:             models.StatusReady,
			Policy: models.SecurityPolicy{
				RequiresStrongMFA:     true,
				InviteExpiry:          24 * time.Hour,
				AllowSelfRegistration: false,
				DefaultRole:           "Officer",
			},
			Lexicon:   models.StandardLexicon(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:                 "alpha-sheriff",
			OrgKey:             "ALPHA-SO",
			DisplayName:        "Alpha County Sheriff's Office",
			VerifiedDomains:    []string{"alphaso.example"},
			OwnerIDs:           []string{"sheriff.alpha", "chief.alpha"},
			SecurityOfficerIDs: []string{"aso.alpha"},
			Status:             models.StatusPendingOwnerBootstrap,
			Policy: models.SecurityPolicy{
				RequiresStrongMFA:     true,
				InviteExpiry:          12 * time.Hour,
				AllowSelfRegistration: false,
				DefaultRole:           "Officer",
			},
			Lexicon: models.Lexicon{
				SquadSingular:  "Platoon",
				SquadPlural:    "Platoons",
				BureauSingular: "Division",
				BureauPlural:   "Divisions",
				TaskSingular:   "Directive",
				TaskPlural:     "Directives",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:                 "beta-campus",
			OrgKey:             "BETA-CAMPUS",
			DisplayName:        "Beta University Public Safety",
			VerifiedDomains:    []string{"publicsafety.beta.edu"},
			OwnerIDs:           []string{"captain.beta"},
			SecurityOfficerIDs: []string{"aso.beta", "infosec.beta"},
			Status:             models.StatusAwaitingVerification,
			Policy: models.SecurityPolicy{
				RequiresStrongMFA:     false,
				InviteExpiry:          48 * time.Hour,
				AllowSelfRegistration: true,
				DefaultRole:           "Supervisor",
			},
			Lexicon: models.Lexicon{
				SquadSingular:  "Watch",
				SquadPlural:    "Watches",
				BureauSingular: "Precinct",
				BureauPlural:   "Precincts",
				TaskSingular:   "Assignment",
				TaskPlural:     "Assignments",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// SeedSampleTenants loads the sample set into the store.
func SeedSampleTenants(ctx context.Context, s *InMemory) error {
	return s.LoadInitial(ctx, SampleTenants(time.Now().UTC()))
}
