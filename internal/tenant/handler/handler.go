// Package handler wires admin-facing tenant routes to the tenant service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dutywire/internal/audit"
	"dutywire/internal/tenant/models"
	"dutywire/internal/tenant/service"
	dErrors "dutywire/pkg/domain-errors"
)

// AuditLog is the read side of the audit pipeline exposed to operators.
type AuditLog interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
	ListByTenant(ctx context.Context, tenantID string) ([]audit.Event, error)
}

// Handler exposes tenant administration over HTTP.
type Handler struct {
	service  *service.Service
	auditLog AuditLog
	logger   *slog.Logger
}

func New(s *service.Service, auditLog AuditLog, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: s, auditLog: auditLog, logger: logger}
}

// Routes mounts the admin endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/tenants", h.UpsertTenant)
	r.Get("/tenants", h.ListTenants)
	r.Get("/tenants/{tenantID}", h.GetTenant)
	r.Post("/tenants/{tenantID}/suspend", h.SuspendTenant)
	r.Post("/tenants/{tenantID}/reinstate", h.ReinstateTenant)
	r.Get("/audit/events", h.ListAuditEvents)
	r.Get("/tenants/{tenantID}/audit/events", h.ListTenantAuditEvents)
}

func (h *Handler) UpsertTenant(w http.ResponseWriter, r *http.Request) {
	var req upsertTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	tenant, err := h.service.UpsertTenant(r.Context(), req.toModel())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, toTenantResponse(tenant))
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.service.GetTenant(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, toTenantResponse(tenant))
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.service.ListTenants(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]tenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"tenants": out})
}

func (h *Handler) SuspendTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.service.SuspendTenant(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, toTenantResponse(tenant))
}

func (h *Handler) ReinstateTenant(w http.ResponseWriter, r *http.Request) {
	var req reinstateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	tenant, err := h.service.ReinstateTenant(r.Context(), chi.URLParam(r, "tenantID"), models.OnboardingStatus(req.Status))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, toTenantResponse(tenant))
}

const defaultAuditListLimit = 100

func (h *Handler) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	events, err := h.auditLog.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) ListTenantAuditEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.auditLog.ListByTenant(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(r.Context(), "encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch dErrors.CodeOf(err) {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeConflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "admin request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
