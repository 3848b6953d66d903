// Package sapb1 provides the SAP Business One adapter.
// The tenant's service layer session id is stored as the connection access token.
package sapb1

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"go.uber.org/zap"
)

// Config holds SAP B1 service layer settings
type Config struct {
	ServiceLayerURL string
	CompanyDB       string
}

// Client implements crm.Client for SAP Business One
type Client struct {
	config Config
	conn   *crm.Connection
	logger *zap.Logger
}

// NewClient creates an SAP B1 client bound to a tenant connection
func NewClient(config Config, conn *crm.Connection, logger *zap.Logger) *Client {
	config.ServiceLayerURL = strings.TrimRight(strings.TrimSpace(config.ServiceLayerURL), "/")
	if logger == nil {
		logger = zap.NewNop()
	}
	if conn == nil {
		conn = &crm.Connection{System: crm.SystemSAPB1}
	}
	return &Client{config: config, conn: conn.Clone(), logger: logger}
}

var _ crm.Client = (*Client)(nil)

// System implements crm.Client
func (c *Client) System() crm.System {
	return crm.SystemSAPB1
}

// CheckAuth reports whether the service layer URL, company database and
// session id are all present
func (c *Client) CheckAuth(context.Context) (bool, error) {
	return c.config.ServiceLayerURL != "" && c.config.CompanyDB != "" && c.conn.AccessToken != "", nil
}

// RefreshAuth would log in to the service layer again; it always reports false
func (c *Client) RefreshAuth(context.Context) (bool, error) {
	return false, nil
}

// UpsertCompany maps to a business partner
func (c *Client) UpsertCompany(_ context.Context, payload *crm.CompanyPayload, _ string) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeCompany, payload.InternalID(), "upsert company"), nil
}

// UpsertContact maps to a contact employee
func (c *Client) UpsertContact(_ context.Context, payload *crm.ContactPayload, _ string) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeContact, payload.InternalID(), "upsert contact"), nil
}

// UpsertDeal maps to a sales opportunity
func (c *Client) UpsertDeal(_ context.Context, payload *crm.DealPayload, _ string) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeOpportunity, payload.InternalID(), "upsert deal"), nil
}

// GetDeal returns nil
func (c *Client) GetDeal(context.Context, string) (*crm.DealPayload, error) {
	return nil, nil
}

// CreateActivity implements crm.Client
func (c *Client) CreateActivity(_ context.Context, payload *crm.ActivityPayload) (*crm.SyncResult, error) {
	return c.notImplemented(crm.ObjectTypeActivity, payload.InternalID(), "create activity"), nil
}

func (c *Client) notImplemented(objectType crm.ObjectType, internalID uuid.UUID, operation string) *crm.SyncResult {
	c.logger.Debug("SAP B1 operation not implemented",
		zap.String("operation", operation),
		zap.String("tenant_id", c.conn.TenantID.String()))
	res := crm.NewNotImplemented(crm.SystemSAPB1, objectType, internalID, operation)
	res.Errors[0].Details = map[string]any{"tenant_id": c.conn.TenantID.String()}
	return res
}
