package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dutywire/internal/tenant/models"
	"dutywire/pkg/platform/sentinel"
)

type TenantStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *TenantStoreSuite) SetupTest() {
	s.store = NewInMemory(DomainClaimReject)
	s.ctx = context.Background()
}

func TestTenantStoreSuite(t *testing.T) {
	suite.Run(t, new(TenantStoreSuite))
}

func (s *TenantStoreSuite) newTenant(id, orgKey string, domains ...string) *models.TenantRecord {
	now := time.Now().UTC()
	return &models.TenantRecord{
		ID:              id,
		OrgKey:          orgKey,
		DisplayName:     "Tenant " + id,
		VerifiedDomains: domains,
		Status:          models.StatusReady,
		Lexicon:         models.StandardLexicon(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// TestUpsertAndLookups verifies the store creates records and serves all
// three point lookups case-insensitively.
func (s *TenantStoreSuite) TestUpsertAndLookups() {
	tenant := s.newTenant("demo-pd", "DEMO-PD", "demopd.example")
	s.Require().NoError(s.store.Upsert(s.ctx, tenant))

	s.Run("finds by organization key regardless of case", func() {
		for _, key := range []string{"DEMO-PD", "demo-pd", "Demo-Pd"} {
			found, err := s.store.FindByOrgKey(s.ctx, key)
			s.Require().NoError(err)
			s.Equal("demo-pd", found.ID)
		}
	})

	s.Run("finds by internal id regardless of case", func() {
		found, err := s.store.FindByID(s.ctx, "DEMO-PD")
		s.Require().NoError(err)
		s.Equal("DEMO-PD", found.OrgKey)
	})

	s.Run("finds by verified domain regardless of case", func() {
		found, err := s.store.FindByDomain(s.ctx, "DEMOPD.EXAMPLE")
		s.Require().NoError(err)
		s.Equal("demo-pd", found.ID)
	})

	s.Run("returns ErrNotFound for unknown key", func() {
		_, err := s.store.FindByOrgKey(s.ctx, "NOPE-XYZ")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestUpsertSemantics verifies idempotence and replace-then-rebuild behavior.
func (s *TenantStoreSuite) TestUpsertSemantics() {
	s.Run("upserting the same record twice leaves lookups unchanged", func() {
		tenant := s.newTenant("demo-pd", "DEMO-PD", "demopd.example")
		s.Require().NoError(s.store.Upsert(s.ctx, tenant))
		s.Require().NoError(s.store.Upsert(s.ctx, tenant))

		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)

		found, err := s.store.FindByOrgKey(s.ctx, "DEMO-PD")
		s.Require().NoError(err)
		s.Equal("demo-pd", found.ID)
	})

	s.Run("a changed record is immediately visible and prior index entries go away", func() {
		tenant := s.newTenant("demo-pd", "DEMO-PD", "demopd.example")
		s.Require().NoError(s.store.Upsert(s.ctx, tenant))

		changed := tenant.Clone()
		changed.OrgKey = "DEMO-NEW"
		changed.VerifiedDomains = []string{"new.example"}
		s.Require().NoError(s.store.Upsert(s.ctx, changed))

		found, err := s.store.FindByOrgKey(s.ctx, "demo-new")
		s.Require().NoError(err)
		s.Equal("demo-pd", found.ID)

		_, err = s.store.FindByOrgKey(s.ctx, "DEMO-PD")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByDomain(s.ctx, "demopd.example")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		byDomain, err := s.store.FindByDomain(s.ctx, "new.example")
		s.Require().NoError(err)
		s.Equal("demo-pd", byDomain.ID)
	})

	s.Run("stored records are detached from the caller's copy", func() {
		tenant := s.newTenant("gamma", "GAMMA", "gamma.example")
		s.Require().NoError(s.store.Upsert(s.ctx, tenant))

		tenant.VerifiedDomains[0] = "mutated.example"
		found, err := s.store.FindByID(s.ctx, "gamma")
		s.Require().NoError(err)
		s.Equal([]string{"gamma.example"}, found.VerifiedDomains)
	})
}

// TestDomainClaimPolicy verifies conflict handling for contested domains.
func (s *TenantStoreSuite) TestDomainClaimPolicy() {
	s.Run("reject policy fails the later claim and leaves the store unchanged", func() {
		first := s.newTenant("first", "FIRST", "shared.example")
		s.Require().NoError(s.store.Upsert(s.ctx, first))

		second := s.newTenant("second", "SECOND", "shared.example")
		err := s.store.Upsert(s.ctx, second)
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		owner, err := s.store.FindByDomain(s.ctx, "shared.example")
		s.Require().NoError(err)
		s.Equal("first", owner.ID)

		_, err = s.store.FindByID(s.ctx, "second")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("overwrite policy lets the most recent writer take the domain", func() {
		overwriteStore := NewInMemory(DomainClaimOverwrite)

		first := s.newTenant("first", "FIRST", "shared.example")
		s.Require().NoError(overwriteStore.Upsert(s.ctx, first))
		second := s.newTenant("second", "SECOND", "shared.example")
		s.Require().NoError(overwriteStore.Upsert(s.ctx, second))

		owner, err := overwriteStore.FindByDomain(s.ctx, "shared.example")
		s.Require().NoError(err)
		s.Equal("second", owner.ID)
	})
}

// TestResolve verifies the permissive key → id → email-domain fallback.
func (s *TenantStoreSuite) TestResolve() {
	keyed := s.newTenant("demo-pd", "DEMO-PD", "demopd.example")
	other := s.newTenant("alpha-sheriff", "ALPHA-SO", "alphaso.example")
	s.Require().NoError(s.store.Upsert(s.ctx, keyed))
	s.Require().NoError(s.store.Upsert(s.ctx, other))

	s.Run("organization key wins first", func() {
		// Key and email point at different tenants; no cross-check happens.
		found, err := s.store.Resolve(s.ctx, "ALPHA-SO", "", "officer@demopd.example")
		s.Require().NoError(err)
		s.Equal("alpha-sheriff", found.ID)
	})

	s.Run("falls back to internal id", func() {
		found, err := s.store.Resolve(s.ctx, "UNKNOWN", "demo-pd", "")
		s.Require().NoError(err)
		s.Equal("demo-pd", found.ID)
	})

	s.Run("falls back to the email's domain", func() {
		found, err := s.store.Resolve(s.ctx, "", "", "officer@alphaso.example")
		s.Require().NoError(err)
		s.Equal("alpha-sheriff", found.ID)
	})

	s.Run("email without an at-sign never resolves", func() {
		_, err := s.store.Resolve(s.ctx, "", "", "not-an-email")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("nothing supplied resolves nothing", func() {
		_, err := s.store.Resolve(s.ctx, "", "", "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestLoadInitial verifies the startup bulk load path with the sample set.
func (s *TenantStoreSuite) TestLoadInitial() {
	s.Require().NoError(s.store.LoadInitial(s.ctx, SampleTenants(time.Now().UTC())))

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)

	tenants, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tenants, 3)
	s.Equal("ALPHA-SO", tenants[0].OrgKey)

	found, err := s.store.FindByOrgKey(s.ctx, "demo-pd")
	s.Require().NoError(err)
	s.Equal("Demo Police Department", found.DisplayName)
	s.True(found.OwnsDomain("OPS.DEMOPD.EXAMPLE"))
}
