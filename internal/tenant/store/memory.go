// Package store holds the authoritative in-memory set of tenant records and
// the point-lookup indexes the onboarding gate reads on every sign-in attempt.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dutywire/internal/tenant/models"
	dErrors "dutywire/pkg/domain-errors"
	"dutywire/pkg/platform/sentinel"
)

// DomainClaimPolicy decides what happens when an upserted record claims a
// verified domain already owned by a different tenant.
type DomainClaimPolicy string

const (
	// DomainClaimReject fails the upsert naming the contested domain. Default.
	DomainClaimReject DomainClaimPolicy = "reject"
	// DomainClaimOverwrite lets the later writer take the domain silently.
	DomainClaimOverwrite DomainClaimPolicy = "overwrite"
)

// ParseDomainClaimPolicy constructs a policy from external configuration.
func ParseDomainClaimPolicy(s string) (DomainClaimPolicy, error) {
	switch DomainClaimPolicy(s) {
	case DomainClaimReject, DomainClaimOverwrite:
		return DomainClaimPolicy(s), nil
	case "":
		return DomainClaimReject, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown domain claim policy %q", s))
	}
}

// snapshot is one complete, immutable view of the store: the record set plus
// the three derived indexes. Readers always see a whole snapshot, never a
// partially rebuilt one.
type snapshot struct {
	records  map[string]*models.TenantRecord // keyed by lowercased internal id
	byOrgKey map[string]*models.TenantRecord
	byID     map[string]*models.TenantRecord
	byDomain map[string]*models.TenantRecord
}

func emptySnapshot() *snapshot {
	return &snapshot{
		records:  map[string]*models.TenantRecord{},
		byOrgKey: map[string]*models.TenantRecord{},
		byID:     map[string]*models.TenantRecord{},
		byDomain: map[string]*models.TenantRecord{},
	}
}

// InMemory is the tenant store. Writes are serialized by a mutex and publish
// a fresh snapshot with a single atomic swap, so lookups on the sign-in path
// never block on a writer.
//
// Returned records are shared snapshots and must be treated as immutable;
// mutate a copy and Upsert it.
type InMemory struct {
	writeMu sync.Mutex
	policy  DomainClaimPolicy
	snap    atomic.Pointer[snapshot]
}

func NewInMemory(policy DomainClaimPolicy) *InMemory {
	s := &InMemory{policy: policy}
	s.snap.Store(emptySnapshot())
	return s
}

// Upsert inserts record or replaces the record with the same internal id
// (case-insensitive), then rebuilds and publishes all indexes. Under the
// reject policy it fails with sentinel.ErrConflict when the record claims a
// domain owned by another tenant, leaving the store unchanged.
func (s *InMemory) Upsert(_ context.Context, record *models.TenantRecord) error {
	if record == nil || strings.TrimSpace(record.ID) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant record must have an id")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.snap.Load()
	records := make(map[string]*models.TenantRecord, len(cur.records)+1)
	for k, v := range cur.records {
		records[k] = v
	}
	stored := record.Clone()
	stored.UpdatedAt = time.Now().UTC()
	records[strings.ToLower(stored.ID)] = stored

	next, err := s.build(records)
	if err != nil {
		return err
	}
	s.snap.Store(next)
	return nil
}

// LoadInitial replaces the entire record set. Called once at process start
// with whatever the persistence collaborator loaded.
func (s *InMemory) LoadInitial(_ context.Context, records []*models.TenantRecord) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	set := make(map[string]*models.TenantRecord, len(records))
	for _, r := range records {
		if r == nil || strings.TrimSpace(r.ID) == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "tenant record must have an id")
		}
		set[strings.ToLower(r.ID)] = r.Clone()
	}

	next, err := s.build(set)
	if err != nil {
		return err
	}
	s.snap.Store(next)
	return nil
}

// FindByOrgKey looks up a tenant by organization key, case-insensitively.
func (s *InMemory) FindByOrgKey(_ context.Context, key string) (*models.TenantRecord, error) {
	if t, ok := s.snap.Load().byOrgKey[strings.ToLower(key)]; ok {
		return t, nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByID looks up a tenant by internal id, case-insensitively.
func (s *InMemory) FindByID(_ context.Context, id string) (*models.TenantRecord, error) {
	if t, ok := s.snap.Load().byID[strings.ToLower(id)]; ok {
		return t, nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByDomain looks up the tenant owning a verified email domain.
func (s *InMemory) FindByDomain(_ context.Context, domain string) (*models.TenantRecord, error) {
	if t, ok := s.snap.Load().byDomain[strings.ToLower(domain)]; ok {
		return t, nil
	}
	return nil, sentinel.ErrNotFound
}

// Resolve tries organization key, then internal id, then the domain after the
// last '@' of email, returning the first hit. The three means are not
// cross-checked for agreement when more than one is supplied; the first
// successful lookup short-circuits.
func (s *InMemory) Resolve(ctx context.Context, orgKey, id, email string) (*models.TenantRecord, error) {
	if orgKey != "" {
		if t, err := s.FindByOrgKey(ctx, orgKey); err == nil {
			return t, nil
		}
	}
	if id != "" {
		if t, err := s.FindByID(ctx, id); err == nil {
			return t, nil
		}
	}
	if email != "" {
		if at := strings.LastIndexByte(email, '@'); at >= 0 && at < len(email)-1 {
			if t, err := s.FindByDomain(ctx, email[at+1:]); err == nil {
				return t, nil
			}
		}
	}
	return nil, sentinel.ErrNotFound
}

// List returns all records sorted by organization key, for the admin API.
func (s *InMemory) List(_ context.Context) ([]*models.TenantRecord, error) {
	snap := s.snap.Load()
	out := make([]*models.TenantRecord, 0, len(snap.records))
	for _, t := range snap.records {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrgKey < out[j].OrgKey })
	return out, nil
}

// Count returns the number of tenants in the current snapshot.
func (s *InMemory) Count(_ context.Context) (int, error) {
	return len(s.snap.Load().records), nil
}

// build derives a complete snapshot from the record set. Rebuild is O(n) per
// write, which is fine for an administrative write rate; lookups stay O(1).
func (s *InMemory) build(records map[string]*models.TenantRecord) (*snapshot, error) {
	next := &snapshot{
		records:  records,
		byOrgKey: make(map[string]*models.TenantRecord, len(records)),
		byID:     make(map[string]*models.TenantRecord, len(records)),
		byDomain: make(map[string]*models.TenantRecord),
	}

	// Iterate oldest-update first so that under the overwrite policy the most
	// recently upserted tenant wins a contested domain (last write wins), and
	// conflict detection never depends on map order.
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := records[ids[i]], records[ids[j]]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		t := records[id]
		next.byID[id] = t
		next.byOrgKey[strings.ToLower(t.OrgKey)] = t
		for _, domain := range t.VerifiedDomains {
			d := strings.ToLower(domain)
			if owner, claimed := next.byDomain[d]; claimed && !strings.EqualFold(owner.ID, t.ID) {
				if s.policy == DomainClaimReject {
					return nil, fmt.Errorf("%w: domain %q claimed by both %q and %q",
						sentinel.ErrConflict, d, owner.ID, t.ID)
				}
			}
			next.byDomain[d] = t
		}
	}
	return next, nil
}
