package audit

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies audit events by the subsystem that produced them.
type Category string

const (
	// CategoryAuthentication covers sign-in attempts that passed the gate.
	CategoryAuthentication Category = "authentication"

	// CategoryOnboarding covers gate decisions blocked by tenant lifecycle
	// or domain-ownership policy.
	CategoryOnboarding Category = "onboarding"

	// CategoryRoster covers roster administration performed on behalf of a
	// tenant. Reserved for collaborators outside this core.
	CategoryRoster Category = "roster"

	// CategorySystem covers administrative actions such as tenant upserts
	// and suspensions.
	CategorySystem Category = "system"
)

// Event is an immutable record of a gate decision or administrative action.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Category  Category          `json:"category"`
	TenantID  string            `json:"tenant_id,omitempty"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewEvent stamps identity and time onto an event. Metadata is copied so the
// caller may reuse its map.
func NewEvent(category Category, tenantID, message string, metadata map[string]string) Event {
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	return Event{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Category:  category,
		TenantID:  tenantID,
		Message:   message,
		Metadata:  md,
	}
}
