// Package postgres implements the tenant persistence collaborator: load the
// full record set at startup, write one record per administrative upsert. The
// in-memory store remains the authority the gate reads from.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dutywire/internal/tenant/models"
)

type Loader struct {
	pool *pgxpool.Pool
}

func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS tenants (
	id                   TEXT PRIMARY KEY,
	org_key              TEXT NOT NULL,
	display_name         TEXT NOT NULL,
	verified_domains     TEXT[] NOT NULL DEFAULT '{}',
	owner_ids            TEXT[] NOT NULL DEFAULT '{}',
	security_officer_ids TEXT[] NOT NULL DEFAULT '{}',
	status               TEXT NOT NULL,
	policy               JSONB NOT NULL DEFAULT '{}',
	lexicon              JSONB NOT NULL DEFAULT '{}',
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the tenants table when missing.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure tenants schema: %w", err)
	}
	return nil
}

// LoadAll returns every persisted tenant record.
func (l *Loader) LoadAll(ctx context.Context) ([]*models.TenantRecord, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, org_key, display_name, verified_domains, owner_ids,
		       security_officer_ids, status, policy, lexicon, created_at, updated_at
		FROM tenants
		ORDER BY org_key`)
	if err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	defer rows.Close()

	var records []*models.TenantRecord
	for rows.Next() {
		var (
			t           models.TenantRecord
			status      string
			policyJSON  []byte
			lexiconJSON []byte
		)
		err := rows.Scan(&t.ID, &t.OrgKey, &t.DisplayName, &t.VerifiedDomains,
			&t.OwnerIDs, &t.SecurityOfficerIDs, &status, &policyJSON,
			&lexiconJSON, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan tenant row: %w", err)
		}
		t.Status = models.OnboardingStatus(status)
		if err := json.Unmarshal(policyJSON, &t.Policy); err != nil {
			return nil, fmt.Errorf("decode policy for tenant %s: %w", t.ID, err)
		}
		if err := json.Unmarshal(lexiconJSON, &t.Lexicon); err != nil {
			return nil, fmt.Errorf("decode lexicon for tenant %s: %w", t.ID, err)
		}
		records = append(records, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}
	return records, nil
}

// UpsertOne persists a single record, replacing any row with the same id.
func (l *Loader) UpsertOne(ctx context.Context, t *models.TenantRecord) error {
	policyJSON, err := json.Marshal(t.Policy)
	if err != nil {
		return fmt.Errorf("encode policy for tenant %s: %w", t.ID, err)
	}
	lexiconJSON, err := json.Marshal(t.Lexicon)
	if err != nil {
		return fmt.Errorf("encode lexicon for tenant %s: %w", t.ID, err)
	}

	_, err = l.pool.Exec(ctx, `
		INSERT INTO tenants (id, org_key, display_name, verified_domains, owner_ids,
			security_officer_ids, status, policy, lexicon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			org_key = EXCLUDED.org_key,
			display_name = EXCLUDED.display_name,
			verified_domains = EXCLUDED.verified_domains,
			owner_ids = EXCLUDED.owner_ids,
			security_officer_ids = EXCLUDED.security_officer_ids,
			status = EXCLUDED.status,
			policy = EXCLUDED.policy,
			lexicon = EXCLUDED.lexicon,
			updated_at = EXCLUDED.updated_at`,
		t.ID, t.OrgKey, t.DisplayName, t.VerifiedDomains, t.OwnerIDs,
		t.SecurityOfficerIDs, string(t.Status), policyJSON, lexiconJSON,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert tenant %s: %w", t.ID, err)
	}
	return nil
}
