package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dutywire/internal/audit"
	"dutywire/internal/gate"
	"dutywire/internal/tenant/store"
)

type noopSink struct{}

func (noopSink) Record(context.Context, audit.Event) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	tenants := store.NewInMemory(store.DomainClaimReject)
	if err := tenants.LoadInitial(context.Background(), store.SampleTenants(time.Now().UTC())); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return New(gate.New(tenants, noopSink{}), nil)
}

func evaluate(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, evaluateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/gate/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Evaluate(rec, req)

	var resp evaluateResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func TestEvaluateAllowed(t *testing.T) {
	h := newHandler(t)

	rec, resp := evaluate(t, h, `{"organization_key":"demo-pd","email":"officer@DEMOPD.EXAMPLE"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !resp.Allowed || resp.Tenant == nil || resp.Tenant.ID != "demo-pd" {
		t.Fatalf("expected allowed decision for demo-pd, got %+v", resp)
	}
	if resp.Reason != "" || resp.Code != "" {
		t.Fatalf("allowed decision must not carry a reason, got %+v", resp)
	}
}

func TestEvaluateBlocked(t *testing.T) {
	h := newHandler(t)

	rec, resp := evaluate(t, h, `{"organization_key":"DEMO-PD","email":"officer@other.example"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a blocked decision, got %d", rec.Code)
	}
	if resp.Allowed || resp.Tenant != nil {
		t.Fatalf("expected blocked decision, got %+v", resp)
	}
	if resp.Code != "domain_not_authorized" {
		t.Fatalf("unexpected block code %q", resp.Code)
	}
	if !strings.Contains(resp.Reason, "Demo Police Department") {
		t.Fatalf("reason should name the tenant, got %q", resp.Reason)
	}
}

func TestEvaluateRejectsBadJSON(t *testing.T) {
	h := newHandler(t)

	rec, _ := evaluate(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}
