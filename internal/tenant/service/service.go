package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"dutywire/internal/audit"
	tenantmetrics "dutywire/internal/tenant/metrics"
	"dutywire/internal/tenant/models"
	dErrors "dutywire/pkg/domain-errors"
	"dutywire/pkg/platform/sentinel"
)

// TenantStore is the slice of the in-memory store the service needs.
type TenantStore interface {
	Upsert(ctx context.Context, record *models.TenantRecord) error
	FindByID(ctx context.Context, id string) (*models.TenantRecord, error)
	FindByOrgKey(ctx context.Context, key string) (*models.TenantRecord, error)
	List(ctx context.Context) ([]*models.TenantRecord, error)
}

// Persistence is the pluggable write-behind collaborator. The in-memory store
// stays authoritative; persistence failures fail the admin operation so an
// operator notices, but the in-memory write has already been published.
type Persistence interface {
	UpsertOne(ctx context.Context, record *models.TenantRecord) error
}

// Service orchestrates tenant lifecycle administration.
type Service struct {
	tenants     TenantStore
	persistence Persistence
	sink        audit.Sink
	logger      *slog.Logger
	metrics     *tenantmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

func WithMetrics(m *tenantmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithPersistence(p Persistence) Option {
	return func(s *Service) { s.persistence = p }
}

// New constructs a Service.
func New(tenants TenantStore, opts ...Option) *Service {
	s := &Service{tenants: tenants, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertTenant creates or replaces a tenant record. Status transitions are
// driven through here: the caller submits the full desired record and the
// service validates the lifecycle move before publishing it.
func (s *Service) UpsertTenant(ctx context.Context, record *models.TenantRecord) (*models.TenantRecord, error) {
	if record == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant record is required")
	}
	if strings.TrimSpace(record.ID) == "" || strings.TrimSpace(record.OrgKey) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "tenant id and organization key are required")
	}
	if !record.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown onboarding status")
	}

	now := time.Now().UTC()
	stored := record.Clone()
	stored.UpdatedAt = now

	created := false
	prior, err := s.tenants.FindByID(ctx, stored.ID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		created = true
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant")
	default:
		stored.CreatedAt = prior.CreatedAt
		if prior.Status != stored.Status && !prior.Status.CanTransitionTo(stored.Status) {
			return nil, dErrors.New(dErrors.CodeConflict, "onboarding status transition not allowed")
		}
	}

	if err := s.tenants.Upsert(ctx, stored); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "verified domain already claimed by another tenant")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store tenant")
	}

	if s.persistence != nil {
		if err := s.persistence.UpsertOne(ctx, stored); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist tenant")
		}
	}

	s.audit(ctx, stored.ID, "Tenant record upserted", map[string]string{
		"organization_key": stored.OrgKey,
		"status":           stored.Status.String(),
	})
	if s.metrics != nil {
		s.metrics.IncrementUpserted()
	}
	s.logger.InfoContext(ctx, "tenant upserted",
		"tenant_id", stored.ID,
		"organization_key", stored.OrgKey,
		"created", created)
	return stored, nil
}

// GetTenant fetches a tenant by internal id.
func (s *Service) GetTenant(ctx context.Context, id string) (*models.TenantRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	return tenant, nil
}

// GetTenantByOrgKey fetches a tenant by organization key (case-insensitive).
func (s *Service) GetTenantByOrgKey(ctx context.Context, key string) (*models.TenantRecord, error) {
	if strings.TrimSpace(key) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "organization key is required")
	}
	tenant, err := s.tenants.FindByOrgKey(ctx, key)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	return tenant, nil
}

// ListTenants returns every tenant for the admin roster view.
func (s *Service) ListTenants(ctx context.Context) ([]*models.TenantRecord, error) {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tenants")
	}
	return tenants, nil
}

// SuspendTenant moves a tenant to suspended, blocking its sign-ins until an
// explicit reinstate.
func (s *Service) SuspendTenant(ctx context.Context, id string) (*models.TenantRecord, error) {
	tenant, err := s.transition(ctx, id, models.StatusSuspended, "tenant is already suspended")
	if err != nil {
		return nil, err
	}
	s.audit(ctx, tenant.ID, "Tenant suspended", map[string]string{
		"organization_key": tenant.OrgKey,
	})
	if s.metrics != nil {
		s.metrics.IncrementSuspended()
	}
	return tenant, nil
}

// ReinstateTenant reverts a suspension to the given target status.
func (s *Service) ReinstateTenant(ctx context.Context, id string, target models.OnboardingStatus) (*models.TenantRecord, error) {
	if !target.IsValid() || target == models.StatusSuspended {
		return nil, dErrors.New(dErrors.CodeValidation, "reinstate target must be a non-suspended status")
	}
	tenant, err := s.transition(ctx, id, target, "tenant is not suspended")
	if err != nil {
		return nil, err
	}
	s.audit(ctx, tenant.ID, "Tenant reinstated", map[string]string{
		"organization_key": tenant.OrgKey,
		"status":           tenant.Status.String(),
	})
	return tenant, nil
}

func (s *Service) transition(ctx context.Context, id string, target models.OnboardingStatus, conflictMsg string) (*models.TenantRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	if !tenant.Status.CanTransitionTo(target) {
		return nil, dErrors.New(dErrors.CodeConflict, conflictMsg)
	}

	updated := tenant.Clone()
	updated.Status = target
	updated.UpdatedAt = time.Now().UTC()
	if err := s.tenants.Upsert(ctx, updated); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store tenant")
	}
	if s.persistence != nil {
		if err := s.persistence.UpsertOne(ctx, updated); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist tenant")
		}
	}
	return updated, nil
}

func (s *Service) audit(ctx context.Context, tenantID, message string, metadata map[string]string) {
	if s.sink == nil {
		return
	}
	s.sink.Record(ctx, audit.NewEvent(audit.CategorySystem, tenantID, message, metadata))
}

func wrapLookupErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant")
}
