package clients

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/leadlane/backend/internal/infrastructure/crm/hubspot"
	"github.com/leadlane/backend/internal/infrastructure/crm/salesforce"
	"github.com/leadlane/backend/internal/infrastructure/crm/sapb1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMapper struct{}

func (nopMapper) MapToCRM(context.Context, uuid.UUID, crm.System, udm.Record, map[string]any) (map[string]any, error) {
	return map[string]any{}, nil
}

func newTestFactory(enabled ...crm.System) *Factory {
	return NewFactory(FactoryConfig{
		HubSpot:    hubspot.NewConfig("id", "secret", "https://app.leadlane.io/callback"),
		Mapper:     nopMapper{},
		Salesforce: salesforce.Config{InstanceURL: "https://acme.my.salesforce.com"},
		SAPB1:      sapb1.Config{ServiceLayerURL: "https://b1.example.com/b1s/v1", CompanyDB: "SBODEMO"},
		Enabled:    enabled,
	})
}

func TestFactory_NewClient(t *testing.T) {
	factory := newTestFactory(crm.SystemHubSpot, crm.SystemSalesforce, crm.SystemSAPB1, crm.SystemPipedrive)
	conn := &crm.Connection{TenantID: uuid.New(), AccessToken: "tok", IsEnabled: true}

	tests := []struct {
		system   crm.System
		expected any
	}{
		{crm.SystemHubSpot, &hubspot.Client{}},
		{crm.SystemSalesforce, &salesforce.Client{}},
		{crm.SystemSAPB1, &sapb1.Client{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.system), func(t *testing.T) {
			client, err := factory.NewClient(tt.system, conn)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, client)
			assert.Equal(t, tt.system, client.System())
		})
	}
}

func TestFactory_Refusals(t *testing.T) {
	conn := &crm.Connection{AccessToken: "tok"}

	t.Run("pipedrive has no client", func(t *testing.T) {
		_, err := newTestFactory(crm.SystemPipedrive).NewClient(crm.SystemPipedrive, conn)
		assert.ErrorIs(t, err, crm.ErrUnknownSystem)
	})

	t.Run("disabled system", func(t *testing.T) {
		_, err := newTestFactory(crm.SystemHubSpot).NewClient(crm.SystemSalesforce, conn)
		assert.ErrorIs(t, err, crm.ErrUnknownSystem)
	})

	t.Run("hubspot without token", func(t *testing.T) {
		_, err := newTestFactory(crm.SystemHubSpot).NewClient(crm.SystemHubSpot, &crm.Connection{})
		assert.ErrorIs(t, err, crm.ErrClientNotConfig)
	})

	t.Run("hubspot without settings", func(t *testing.T) {
		factory := NewFactory(FactoryConfig{Mapper: nopMapper{}, Enabled: []crm.System{crm.SystemHubSpot}})
		_, err := factory.NewClient(crm.SystemHubSpot, conn)
		assert.ErrorIs(t, err, crm.ErrClientNotConfig)
	})
}

func TestFactory_EnabledSystems(t *testing.T) {
	factory := newTestFactory(crm.SystemSAPB1, crm.SystemHubSpot)
	assert.Equal(t, []crm.System{crm.SystemHubSpot, crm.SystemSAPB1}, factory.EnabledSystems())
}
