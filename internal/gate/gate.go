// Package gate decides whether an authentication attempt may proceed for a
// given organization key and email, before any credential ever changes hands.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dutywire/internal/audit"
	gatemetrics "dutywire/internal/gate/metrics"
	"dutywire/internal/tenant/models"
)

// BlockCode identifies which check blocked an attempt. All codes are expected
// outcomes, not failures of the gate.
type BlockCode string

const (
	BlockEmptyOrganizationKey   BlockCode = "empty_organization_key"
	BlockEmptyEmail             BlockCode = "empty_email"
	BlockUnknownOrganizationKey BlockCode = "unknown_organization_key"
	BlockTenantNotReady         BlockCode = "tenant_not_ready"
	BlockDomainNotAuthorized    BlockCode = "domain_not_authorized"
)

// Decision is the outcome of one sign-in attempt evaluation. When Allowed is
// true, Tenant carries the resolved record; otherwise Reason is a complete
// sentence suitable for direct display and Code tells the caller which check
// failed.
type Decision struct {
	Allowed bool
	Tenant  *models.TenantRecord
	Reason  string
	Code    BlockCode
}

// TenantResolver is the slice of the tenant store the gate needs.
type TenantResolver interface {
	FindByOrgKey(ctx context.Context, key string) (*models.TenantRecord, error)
}

// Gate validates organization keys and duty emails before allowing
// authentication to proceed. Evaluation is synchronous and side-effect free
// over one store snapshot; the only dispatch is a fire-and-forget audit
// record, emitted on every exit path.
type Gate struct {
	tenants TenantResolver
	sink    audit.Sink
	logger  *slog.Logger
	metrics *gatemetrics.Metrics
	tracer  trace.Tracer
}

type Option func(g *Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

func WithMetrics(m *gatemetrics.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// New constructs a Gate. The sink must be non-blocking; the gate never waits
// on it.
func New(tenants TenantResolver, sink audit.Sink, opts ...Option) *Gate {
	g := &Gate{
		tenants: tenants,
		sink:    sink,
		logger:  slog.Default(),
		tracer:  otel.Tracer("dutywire/gate"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the decision protocol over a raw organization key and email.
// Checks run in a fixed order and the first failing check wins; the order is
// load-bearing for user-facing messaging and audit content. Every exit path,
// allowed or blocked, emits exactly one audit record before returning.
func (g *Gate) Evaluate(ctx context.Context, rawOrgKey, rawEmail string) Decision {
	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "gate.evaluate")
	defer span.End()

	orgKey := strings.ToUpper(strings.TrimSpace(rawOrgKey))
	email := strings.ToLower(strings.TrimSpace(rawEmail))

	if orgKey == "" {
		return g.blocked(ctx, span, start, BlockEmptyOrganizationKey,
			"Enter your organization key.",
			nil, map[string]string{"email": email})
	}

	if email == "" {
		return g.blocked(ctx, span, start, BlockEmptyEmail,
			"Enter your organization email address.",
			nil, map[string]string{"organization_key": orgKey})
	}

	metadata := map[string]string{"organization_key": orgKey, "email": email}

	tenant, err := g.tenants.FindByOrgKey(ctx, orgKey)
	if err != nil {
		return g.blocked(ctx, span, start, BlockUnknownOrganizationKey,
			"That organization key is not registered. Contact DutyWire Support to be added.",
			nil, metadata)
	}

	if !tenant.IsReady() {
		reason := fmt.Sprintf("%s is still onboarding (%s). Please try again later or contact DutyWire Support.",
			tenant.DisplayName, tenant.Status.Label())
		return g.blocked(ctx, span, start, BlockTenantNotReady, reason, tenant, metadata)
	}

	if !emailDomainAllowed(email, tenant) {
		reason := fmt.Sprintf("This email domain is not authorized for %s. Use your duty email or contact DutyWire Support to be provisioned.",
			tenant.DisplayName)
		return g.blocked(ctx, span, start, BlockDomainNotAuthorized, reason, tenant, metadata)
	}

	g.sink.Record(ctx, audit.NewEvent(audit.CategoryAuthentication, tenant.ID, "Login gate passed", metadata))
	span.SetAttributes(
		attribute.Bool("gate.allowed", true),
		attribute.String("gate.tenant_id", tenant.ID),
	)
	if g.metrics != nil {
		g.metrics.ObserveAllowed(start)
	}
	g.logger.InfoContext(ctx, "login gate passed",
		"tenant_id", tenant.ID,
		"organization_key", orgKey)
	return Decision{Allowed: true, Tenant: tenant}
}

// emailDomainAllowed checks the substring strictly after the last '@' against
// the tenant's verified domains. An email with no '@', or nothing after it,
// never matches.
func emailDomainAllowed(email string, tenant *models.TenantRecord) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	return tenant.OwnsDomain(email[at+1:])
}

func (g *Gate) blocked(ctx context.Context, span trace.Span, start time.Time, code BlockCode, reason string, tenant *models.TenantRecord, metadata map[string]string) Decision {
	tenantID := ""
	if tenant != nil {
		tenantID = tenant.ID
	}
	g.sink.Record(ctx, audit.NewEvent(audit.CategoryOnboarding, tenantID, reason, metadata))

	span.SetAttributes(
		attribute.Bool("gate.allowed", false),
		attribute.String("gate.block_code", string(code)),
	)
	if g.metrics != nil {
		g.metrics.ObserveBlocked(string(code), start)
	}
	g.logger.InfoContext(ctx, "login gate blocked",
		"code", string(code),
		"tenant_id", tenantID)
	return Decision{Reason: reason, Code: code}
}
