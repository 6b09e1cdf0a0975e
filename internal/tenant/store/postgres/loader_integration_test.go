//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dutywire/internal/tenant/models"
	"dutywire/internal/tenant/store"
	"dutywire/internal/tenant/store/postgres"
	"dutywire/pkg/testutil/containers"
)

type LoaderSuite struct {
	suite.Suite
	loader *postgres.Loader
	ctx    context.Context
}

func TestLoaderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pool := containers.StartPostgres(t)
	s := new(LoaderSuite)
	s.loader = postgres.NewLoader(pool)
	suite.Run(t, s)
}

func (s *LoaderSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.loader.EnsureSchema(s.ctx))
}

func (s *LoaderSuite) TestRoundTrip() {
	seed := store.SampleTenants(time.Now().UTC().Truncate(time.Microsecond))
	for _, record := range seed {
		s.Require().NoError(s.loader.UpsertOne(s.ctx, record))
	}

	loaded, err := s.loader.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 3)

	// Ordered by org key: ALPHA-SO, BETA-CAMPUS, DEMO-PD.
	s.Equal("alpha-sheriff", loaded[0].ID)
	s.Equal(models.StatusPendingOwnerBootstrap, loaded[0].Status)
	s.Equal("Platoon", loaded[0].Lexicon.SquadSingular)
	s.Equal(12*time.Hour, loaded[0].Policy.InviteExpiry)

	demo := loaded[2]
	s.Equal("DEMO-PD", demo.OrgKey)
	s.ElementsMatch([]string{"demopd.example", "ops.demopd.example", "gmail.com"}, demo.VerifiedDomains)
}

func (s *LoaderSuite) TestUpsertReplaces() {
	record := store.SampleTenants(time.Now().UTC())[0]
	s.Require().NoError(s.loader.UpsertOne(s.ctx, record))

	changed := record.Clone()
	changed.Status = models.StatusSuspended
	changed.VerifiedDomains = []string{"changed.example"}
	changed.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.loader.UpsertOne(s.ctx, changed))

	loaded, err := s.loader.LoadAll(s.ctx)
	s.Require().NoError(err)

	var found *models.TenantRecord
	for _, t := range loaded {
		if t.ID == record.ID {
			found = t
		}
	}
	s.Require().NotNil(found)
	s.Equal(models.StatusSuspended, found.Status)
	s.Equal([]string{"changed.example"}, found.VerifiedDomains)
}
