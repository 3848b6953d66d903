// Package clients builds vendor CRM clients for tenant connections.
package clients

import (
	"fmt"
	"net/http"
	"time"

	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/crm/hubspot"
	"github.com/leadlane/backend/internal/infrastructure/crm/salesforce"
	"github.com/leadlane/backend/internal/infrastructure/crm/sapb1"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Factory implements crm.ClientFactory with a switch on the system tag
type Factory struct {
	hubspot      *hubspot.Config
	hubspotOAuth *hubspot.OAuthClient
	mapper       crm.PropertyMapper
	salesforce   salesforce.Config
	sapb1        sapb1.Config
	enabled      map[crm.System]bool
	httpClient   *http.Client
	logger       *zap.Logger
}

// FactoryConfig contains configuration for Factory
type FactoryConfig struct {
	HubSpot *hubspot.Config
	// HubSpotOAuth enables RefreshAuth on HubSpot clients; optional
	HubSpotOAuth *hubspot.OAuthClient
	Mapper       crm.PropertyMapper
	Salesforce   salesforce.Config
	SAPB1        sapb1.Config
	// Enabled lists the systems clients may be built for
	Enabled []crm.System
	// Timeout bounds every vendor HTTP call
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewFactory creates a client factory. Vendor HTTP calls share one traced client.
func NewFactory(cfg FactoryConfig) *Factory {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = hubspot.DefaultTimeout
	}
	enabled := make(map[crm.System]bool, len(cfg.Enabled))
	for _, s := range cfg.Enabled {
		enabled[s] = true
	}
	return &Factory{
		hubspot:      cfg.HubSpot,
		hubspotOAuth: cfg.HubSpotOAuth,
		mapper:       cfg.Mapper,
		salesforce:   cfg.Salesforce,
		sapb1:        cfg.SAPB1,
		enabled:      enabled,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

var _ crm.ClientFactory = (*Factory)(nil)

// NewClient builds the vendor client for conn. Pipedrive has no client and
// disabled systems are refused; both fail with crm.ErrUnknownSystem.
func (f *Factory) NewClient(system crm.System, conn *crm.Connection) (crm.Client, error) {
	if !f.enabled[system] {
		return nil, fmt.Errorf("%w: %s is not enabled", crm.ErrUnknownSystem, system)
	}
	logger := f.logger.With(zap.String("crm_system", string(system)))
	if conn != nil {
		logger = logger.With(zap.String("tenant_id", conn.TenantID.String()))
	}

	switch system {
	case crm.SystemHubSpot:
		if f.hubspot == nil {
			return nil, fmt.Errorf("%w: hubspot settings missing", crm.ErrClientNotConfig)
		}
		return hubspot.NewClient(hubspot.ClientConfig{
			Config:     f.hubspot,
			Connection: conn,
			Mapper:     f.mapper,
			OAuth:      f.hubspotOAuth,
			HTTPClient: f.httpClient,
			Logger:     logger,
		})
	case crm.SystemSalesforce:
		return salesforce.NewClient(f.salesforce, conn, logger), nil
	case crm.SystemSAPB1:
		return sapb1.NewClient(f.sapb1, conn, logger), nil
	default:
		return nil, fmt.Errorf("%w: no client for %s", crm.ErrUnknownSystem, system)
	}
}

// EnabledSystems returns the systems this factory builds clients for
func (f *Factory) EnabledSystems() []crm.System {
	out := make([]crm.System, 0, len(f.enabled))
	for _, s := range crm.AllSystems() {
		if f.enabled[s] {
			out = append(out, s)
		}
	}
	return out
}
