package cache

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/leadlane/backend/internal/domain/crm"
)

// MappingCache holds effective field mappings keyed by tenant, system and object type.
// Entries expire after the configured TTL and are dropped eagerly when a tenant
// edits its mappings.
type MappingCache struct {
	lru *expirable.LRU[string, map[string]string]
}

// NewMappingCache creates a cache bounded to size entries
func NewMappingCache(size int, ttl time.Duration) *MappingCache {
	if size <= 0 {
		size = 512
	}
	return &MappingCache{lru: expirable.NewLRU[string, map[string]string](size, nil, ttl)}
}

func mappingKey(tenantID uuid.UUID, system crm.System, objectType crm.ObjectType) string {
	return tenantID.String() + "|" + string(system) + "|" + string(objectType)
}

// Get returns a copy of the cached mapping
func (c *MappingCache) Get(tenantID uuid.UUID, system crm.System, objectType crm.ObjectType) (map[string]string, bool) {
	m, ok := c.lru.Get(mappingKey(tenantID, system, objectType))
	if !ok {
		return nil, false
	}
	return copyMapping(m), true
}

// Put stores a copy of mapping
func (c *MappingCache) Put(tenantID uuid.UUID, system crm.System, objectType crm.ObjectType, mapping map[string]string) {
	c.lru.Add(mappingKey(tenantID, system, objectType), copyMapping(mapping))
}

// Invalidate drops every object type cached for (tenant, system)
func (c *MappingCache) Invalidate(tenantID uuid.UUID, system crm.System) {
	prefix := tenantID.String() + "|" + string(system) + "|"
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
}

// Len returns the number of cached entries
func (c *MappingCache) Len() int {
	return c.lru.Len()
}

func copyMapping(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
