// Package handler exposes the onboarding gate over HTTP. It stays thin:
// normalization and policy live in the gate, not here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"dutywire/internal/gate"
)

// Handler wires the gate to HTTP.
type Handler struct {
	gate   *gate.Gate
	logger *slog.Logger
}

func New(g *gate.Gate, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{gate: g, logger: logger}
}

type evaluateRequest struct {
	OrganizationKey string `json:"organization_key"`
	Email           string `json:"email"`
}

type tenantSummary struct {
	ID          string `json:"id"`
	OrgKey      string `json:"org_key"`
	DisplayName string `json:"display_name"`
}

type evaluateResponse struct {
	Allowed bool           `json:"allowed"`
	Tenant  *tenantSummary `json:"tenant,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Code    string         `json:"code,omitempty"`
}

// Evaluate handles POST /gate/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	decision := h.gate.Evaluate(r.Context(), req.OrganizationKey, req.Email)

	resp := evaluateResponse{Allowed: decision.Allowed}
	if decision.Allowed {
		resp.Tenant = &tenantSummary{
			ID:          decision.Tenant.ID,
			OrgKey:      decision.Tenant.OrgKey,
			DisplayName: decision.Tenant.DisplayName,
		}
	} else {
		resp.Reason = decision.Reason
		resp.Code = string(decision.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.ErrorContext(r.Context(), "encode evaluate response", "error", err)
	}
}
