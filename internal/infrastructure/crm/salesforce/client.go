// Package salesforce provides the Salesforce CRM adapter.
// Writes are not implemented yet and report a not_implemented failure.
package salesforce

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"go.uber.org/zap"
)

// DefaultAPIVersion is the REST API version used when none is configured
const DefaultAPIVersion = "v58.0"

// Config holds Salesforce settings shared by every tenant
type Config struct {
	// InstanceURL is the org base URL, e.g. https://acme.my.salesforce.com
	InstanceURL string
	APIVersion  string
}

// Client implements crm.Client for Salesforce
type Client struct {
	config Config
	conn   *crm.Connection
	logger *zap.Logger
}

// NewClient creates a Salesforce client bound to a tenant connection
func NewClient(config Config, conn *crm.Connection, logger *zap.Logger) *Client {
	config.InstanceURL = strings.TrimRight(strings.TrimSpace(config.InstanceURL), "/")
	if config.APIVersion == "" {
		config.APIVersion = DefaultAPIVersion
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if conn == nil {
		conn = &crm.Connection{System: crm.SystemSalesforce}
	}
	return &Client{config: config, conn: conn.Clone(), logger: logger}
}

var _ crm.Client = (*Client)(nil)

// System implements crm.Client
func (c *Client) System() crm.System {
	return crm.SystemSalesforce
}

// APIBaseURL returns the versioned REST base URL
func (c *Client) APIBaseURL() string {
	if c.config.InstanceURL == "" {
		return ""
	}
	return c.config.InstanceURL + "/services/data/" + c.config.APIVersion
}

// CheckAuth reports whether an access token and an instance URL are present.
// No request is made.
func (c *Client) CheckAuth(context.Context) (bool, error) {
	return c.conn.AccessToken != "" && c.config.InstanceURL != "", nil
}

// RefreshAuth is not supported and always reports false
func (c *Client) RefreshAuth(context.Context) (bool, error) {
	return false, nil
}

// UpsertCompany implements crm.Client
func (c *Client) UpsertCompany(_ context.Context, payload *crm.CompanyPayload, _ string) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeCompany, payload.InternalID(), "upsert company"), nil
}

// UpsertContact implements crm.Client
func (c *Client) UpsertContact(_ context.Context, payload *crm.ContactPayload, _ string) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeContact, payload.InternalID(), "upsert contact"), nil
}

// UpsertDeal implements crm.Client
func (c *Client) UpsertDeal(_ context.Context, payload *crm.DealPayload, _ string) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeOpportunity, payload.InternalID(), "upsert deal"), nil
}

// GetDeal always returns nil until opportunities are mapped back
func (c *Client) GetDeal(context.Context, string) (*crm.DealPayload, error) {
	return nil, nil
}

// CreateActivity implements crm.Client
func (c *Client) CreateActivity(_ context.Context, payload *crm.ActivityPayload) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeActivity, payload.InternalID(), "create activity"), nil
}

func (c *Client) notImplemented(objectType crm.ObjectType, internalID uuid.UUID, operation string) *crm.SyncResult {
	c.logger.Debug("Salesforce operation not implemented",
		zap.String("operation", operation),
		zap.String("tenant_id", c.conn.TenantID.String()))
	res := crm.NewNotImplemented(crm.SystemSalesforce, objectType, internalID, operation)
	res.Errors[0].Details = map[string]any{"tenant_id": c.conn.TenantID.String()}
	return res
}
