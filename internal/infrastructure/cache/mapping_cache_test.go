package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingCache(t *testing.T) {
	cache := NewMappingCache(16, time.Minute)
	tenantID := uuid.New()

	cache.Put(tenantID, crm.SystemHubSpot, crm.ObjectTypeCompany, map[string]string{"city": "city"})
	cache.Put(tenantID, crm.SystemHubSpot, crm.ObjectTypeContact, map[string]string{"contact_email_1": "email"})
	cache.Put(tenantID, crm.SystemSalesforce, crm.ObjectTypeCompany, map[string]string{"city": "BillingCity"})

	t.Run("returns a copy isolated from the cache", func(t *testing.T) {
		got, ok := cache.Get(tenantID, crm.SystemHubSpot, crm.ObjectTypeCompany)
		require.True(t, ok)
		got["city"] = "mutated"

		again, _ := cache.Get(tenantID, crm.SystemHubSpot, crm.ObjectTypeCompany)
		assert.Equal(t, "city", again["city"])
	})

	t.Run("invalidate drops only the tenant and system", func(t *testing.T) {
		cache.Invalidate(tenantID, crm.SystemHubSpot)

		_, ok := cache.Get(tenantID, crm.SystemHubSpot, crm.ObjectTypeCompany)
		assert.False(t, ok)
		_, ok = cache.Get(tenantID, crm.SystemHubSpot, crm.ObjectTypeContact)
		assert.False(t, ok)
		_, ok = cache.Get(tenantID, crm.SystemSalesforce, crm.ObjectTypeCompany)
		assert.True(t, ok)
		assert.Equal(t, 1, cache.Len())
	})
}

func TestMappingCache_Expiry(t *testing.T) {
	cache := NewMappingCache(4, 20*time.Millisecond)
	tenantID := uuid.New()

	cache.Put(tenantID, crm.SystemHubSpot, crm.ObjectTypeCompany, map[string]string{"a": "b"})
	time.Sleep(60 * time.Millisecond)

	_, ok := cache.Get(tenantID, crm.SystemHubSpot, crm.ObjectTypeCompany)
	assert.False(t, ok)
}
