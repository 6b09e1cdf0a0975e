package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the tenant module.
type Metrics struct {
	TenantsUpserted  prometheus.Counter
	TenantsSuspended prometheus.Counter
}

// New creates a new Metrics instance with all tenant module metrics registered.
func New() *Metrics {
	return &Metrics{
		TenantsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dutywire_tenants_upserted_total",
			Help: "Total number of tenant records created or replaced",
		}),
		TenantsSuspended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dutywire_tenants_suspended_total",
			Help: "Total number of tenant suspensions",
		}),
	}
}

// IncrementUpserted records a successful tenant upsert.
func (m *Metrics) IncrementUpserted() {
	m.TenantsUpserted.Inc()
}

// IncrementSuspended records a tenant suspension.
func (m *Metrics) IncrementSuspended() {
	m.TenantsSuspended.Inc()
}
