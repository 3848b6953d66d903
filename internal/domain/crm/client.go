package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/udm"
)

// Client is the capability surface every vendor adapter implements.
//
// Vendor HTTP failures are reported as a SyncResult with Success=false and a
// nil error. A non-nil error means the call could not be completed at all.
type Client interface {
	System() System
	CheckAuth(ctx context.Context) (bool, error)
	RefreshAuth(ctx context.Context) (bool, error)
	UpsertCompany(ctx context.Context, payload *CompanyPayload, existingCRMID string) (*SyncResult, error)
	UpsertContact(ctx context.Context, payload *ContactPayload, existingCRMID string) (*SyncResult, error)
	UpsertDeal(ctx context.Context, payload *DealPayload, existingCRMID string) (*SyncResult, error)
	// GetDeal returns nil when the deal does not exist
	GetDeal(ctx context.Context, crmID string) (*DealPayload, error)
	CreateActivity(ctx context.Context, payload *ActivityPayload) (*SyncResult, error)
}

// BatchCompanyUpserter is implemented by clients with a native batch endpoint
type BatchCompanyUpserter interface {
	UpsertCompanies(ctx context.Context, payloads []*CompanyPayload) ([]*SyncResult, error)
}

// UpsertCompanies upserts companies in one batch call when the client supports it,
// otherwise one at a time. Per-item failures are returned as failed results.
func UpsertCompanies(ctx context.Context, client Client, payloads []*CompanyPayload) ([]*SyncResult, error) {
	if batch, ok := client.(BatchCompanyUpserter); ok {
		return batch.UpsertCompanies(ctx, payloads)
	}
	results := make([]*SyncResult, 0, len(payloads))
	for _, p := range payloads {
		res, err := client.UpsertCompany(ctx, p, "")
		if err != nil {
			res = NewSyncFailure(client.System(), ObjectTypeCompany, p.InternalID(), CodeClientError, err.Error(), nil)
		}
		results = append(results, res)
	}
	return results, nil
}

// ClientFactory builds a vendor client for a tenant's connection
type ClientFactory interface {
	NewClient(system System, conn *Connection) (Client, error)
}

// PropertyMapper builds the CRM property set of an internal record
type PropertyMapper interface {
	MapToCRM(ctx context.Context, tenantID uuid.UUID, system System, record udm.Record, extra map[string]any) (map[string]any, error)
}

// Token is an OAuth token response normalised across vendors
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	TokenType    string
	Scope        string
}

// ToConnection converts the token into a connection for the tenant
func (t *Token) ToConnection(tenantID uuid.UUID, system System, actor string, now time.Time) *Connection {
	conn := &Connection{
		TenantID:    tenantID,
		System:      system,
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		IsEnabled:   true,
		CreatedBy:   actor,
		ModifiedBy:  actor,
	}
	if t.RefreshToken != "" {
		rt := t.RefreshToken
		conn.RefreshToken = &rt
	}
	if t.ExpiresIn > 0 {
		exp := now.Add(t.ExpiresIn)
		conn.ExpiresAt = &exp
	}
	if t.Scope != "" {
		scope := t.Scope
		conn.Scope = &scope
	}
	conn.Normalize()
	return conn
}
