package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Connection Tests
// ---------------------------------------------------------------------------

func TestConnection_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name      string
		expiresAt *time.Time
		skew      time.Duration
		want      bool
	}{
		{name: "no expiry never expires", expiresAt: nil, skew: DefaultClockSkew, want: false},
		{name: "far future", expiresAt: at(time.Hour), skew: DefaultClockSkew, want: false},
		{name: "inside skew window", expiresAt: at(30 * time.Second), skew: DefaultClockSkew, want: true},
		{name: "exactly at skew boundary", expiresAt: at(DefaultClockSkew), skew: DefaultClockSkew, want: true},
		{name: "in the past", expiresAt: at(-time.Minute), skew: 0, want: true},
		{name: "zero skew future", expiresAt: at(time.Second), skew: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Connection{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, c.IsExpired(now, tt.skew))
		})
	}
}

func TestConnection_Normalize(t *testing.T) {
	c := &Connection{TokenType: "  Bearer "}
	c.Normalize()
	assert.Equal(t, "bearer", c.TokenType)
	assert.Equal(t, SystemActor, c.CreatedBy)
	assert.Equal(t, SystemActor, c.ModifiedBy)

	empty := &Connection{CreatedBy: "alice"}
	empty.Normalize()
	assert.Equal(t, DefaultTokenType, empty.TokenType)
	assert.Equal(t, "alice", empty.ModifiedBy)
}

func TestConnection_Clone(t *testing.T) {
	rt := "refresh"
	exp := time.Now()
	c := &Connection{TenantID: uuid.New(), AccessToken: "a", RefreshToken: &rt, ExpiresAt: &exp}

	cp := c.Clone()
	require.NotNil(t, cp)
	*cp.RefreshToken = "changed"
	assert.Equal(t, "refresh", *c.RefreshToken)
	assert.True(t, c.HasRefreshToken())
	assert.Equal(t, "Bearer a", c.AuthorizationHeader())
}

func TestToken_ToConnection(t *testing.T) {
	now := time.Now().UTC()
	tenantID := uuid.New()
	tok := &Token{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 30 * time.Minute, Scope: "crm.objects.contacts.read"}

	conn := tok.ToConnection(tenantID, SystemHubSpot, "bob", now)
	assert.Equal(t, tenantID, conn.TenantID)
	assert.Equal(t, SystemHubSpot, conn.System)
	assert.True(t, conn.IsEnabled)
	require.NotNil(t, conn.ExpiresAt)
	assert.Equal(t, now.Add(30*time.Minute), *conn.ExpiresAt)
	require.NotNil(t, conn.RefreshToken)
	assert.Equal(t, "rt", *conn.RefreshToken)
	assert.Equal(t, DefaultTokenType, conn.TokenType)
	assert.Equal(t, "bob", conn.CreatedBy)
}

// ---------------------------------------------------------------------------
// System / ObjectType Tests
// ---------------------------------------------------------------------------

func TestParseSystem(t *testing.T) {
	s, err := ParseSystem(" HubSpot ")
	require.NoError(t, err)
	assert.Equal(t, SystemHubSpot, s)

	s, err = ParseSystem("sap_b1")
	require.NoError(t, err)
	assert.Equal(t, SystemSAPB1, s)

	_, err = ParseSystem("zoho")
	assert.ErrorIs(t, err, ErrUnknownSystem)
}

func TestParseObjectType(t *testing.T) {
	ot, err := ParseObjectType("Company")
	require.NoError(t, err)
	assert.Equal(t, ObjectTypeCompany, ot)

	_, err = ParseObjectType("deal")
	assert.ErrorIs(t, err, ErrUnknownObjectType)
}
