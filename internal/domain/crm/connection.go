package crm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultClockSkew is subtracted from a token's lifetime when checking expiry
const DefaultClockSkew = 60 * time.Second

// DefaultTokenType is used when a vendor does not report a token type
const DefaultTokenType = "bearer"

// SystemActor is recorded as modifier for changes not initiated by a user
const SystemActor = "system"

// Connection holds the OAuth credentials of one tenant for one CRM system.
// A connection is unique per (TenantID, System) and is never hard-deleted.
type Connection struct {
	TenantID         uuid.UUID
	System           System
	AccessToken      string
	RefreshToken     *string
	ExpiresAt        *time.Time
	TokenType        string
	Scope            *string
	IsEnabled        bool
	CreatedTime      time.Time
	LastModifiedTime time.Time
	CreatedBy        string
	ModifiedBy       string
}

// IsExpired reports whether the access token is expired at now, treating tokens
// that expire within skew as already expired. A connection without expiry never expires.
func (c *Connection) IsExpired(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now.Add(skew))
}

// HasRefreshToken reports whether the connection can be refreshed
func (c *Connection) HasRefreshToken() bool {
	return c.RefreshToken != nil && *c.RefreshToken != ""
}

// AuthorizationHeader renders the value of the HTTP Authorization header
func (c *Connection) AuthorizationHeader() string {
	return "Bearer " + c.AccessToken
}

// Normalize fills defaults for optional fields
func (c *Connection) Normalize() {
	c.TokenType = strings.ToLower(strings.TrimSpace(c.TokenType))
	if c.TokenType == "" {
		c.TokenType = DefaultTokenType
	}
	if c.CreatedBy == "" {
		c.CreatedBy = SystemActor
	}
	if c.ModifiedBy == "" {
		c.ModifiedBy = c.CreatedBy
	}
}

// Clone returns a deep copy of the connection
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	cp := *c
	if c.RefreshToken != nil {
		v := *c.RefreshToken
		cp.RefreshToken = &v
	}
	if c.ExpiresAt != nil {
		v := *c.ExpiresAt
		cp.ExpiresAt = &v
	}
	if c.Scope != nil {
		v := *c.Scope
		cp.Scope = &v
	}
	return &cp
}

// RefreshFunc exchanges an expired connection for a refreshed one.
// Implementations talk to the vendor's token endpoint; the store persists the result.
type RefreshFunc func(ctx context.Context, conn *Connection) (*Connection, error)

// ConnectionReader provides read access to stored connections
type ConnectionReader interface {
	// Get returns the connection or nil when none is stored
	Get(ctx context.Context, tenantID uuid.UUID, system System) (*Connection, error)
	// ListEnabledSystems returns the distinct systems with an enabled connection
	ListEnabledSystems(ctx context.Context, tenantID uuid.UUID) ([]System, error)
	// ListExpiring returns enabled connections of a system expiring before the given time
	ListExpiring(ctx context.Context, system System, before time.Time) ([]Connection, error)
}

// ConnectionWriter provides write access to stored connections
type ConnectionWriter interface {
	// Upsert inserts or updates on (tenant, system). CreatedTime and CreatedBy are
	// only written on insert.
	Upsert(ctx context.Context, conn *Connection) error
	// Disable marks the connection as disabled; it is a no-op when none exists
	Disable(ctx context.Context, tenantID uuid.UUID, system System, actor string) error
}

// ConnectionRepository combines connection reads and writes
type ConnectionRepository interface {
	ConnectionReader
	ConnectionWriter
}

// RefreshLocker serialises token refreshes per key across callers.
// Lock blocks until the key is held or ctx ends; the returned func releases it.
type RefreshLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// RefreshLockKey names the lock guarding refreshes of one connection
func RefreshLockKey(tenantID uuid.UUID, system System) string {
	return "crm:refresh:" + tenantID.String() + ":" + string(system)
}
