package crmsync

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
)

// ---------------------------------------------------------------------------
// Field Mapping DTOs
// ---------------------------------------------------------------------------

// FieldMappingResponse represents a tenant field mapping in API responses
type FieldMappingResponse struct {
	ID               uuid.UUID      `json:"id"`
	TenantID         *uuid.UUID     `json:"tenant_id"`
	CRMSystem        crm.System     `json:"crm_system"`
	ObjectType       crm.ObjectType `json:"object_type"`
	UDMFieldName     string         `json:"udm_field_name"`
	CRMFieldName     string         `json:"crm_field_name"`
	IsActive         bool           `json:"is_active"`
	Direction        crm.Direction  `json:"direction"`
	CreatedTime      time.Time      `json:"created_time"`
	LastModifiedTime time.Time      `json:"last_modified_time"`
}

// ToFieldMappingResponse converts a domain mapping
func ToFieldMappingResponse(m *crm.FieldMapping) FieldMappingResponse {
	return FieldMappingResponse{
		ID:               m.ID,
		TenantID:         m.TenantID,
		CRMSystem:        m.System,
		ObjectType:       m.ObjectType,
		UDMFieldName:     m.UDMField,
		CRMFieldName:     m.CRMField,
		IsActive:         m.IsActive,
		Direction:        m.Direction,
		CreatedTime:      m.CreatedTime,
		LastModifiedTime: m.LastModifiedTime,
	}
}

// CreateFieldMappingRequest represents a request to create a tenant override
type CreateFieldMappingRequest struct {
	ObjectType   string `json:"object_type" binding:"required,oneof=company contact opportunity activity"`
	UDMFieldName string `json:"udm_field_name" binding:"required,max=200"`
	CRMFieldName string `json:"crm_field_name" binding:"required,max=200"`
	IsActive     *bool  `json:"is_active,omitempty"`
	Direction    string `json:"direction,omitempty" binding:"omitempty,oneof=outbound inbound bidirectional"`
}

// UpdateFieldMappingRequest changes the CRM field and/or the active flag
type UpdateFieldMappingRequest struct {
	CRMFieldName *string `json:"crm_field_name,omitempty" binding:"omitempty,max=200"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// ---------------------------------------------------------------------------
// Connection DTOs
// ---------------------------------------------------------------------------

// ConnectionResponse describes a stored connection without secrets
type ConnectionResponse struct {
	TenantID         uuid.UUID  `json:"tenant_id"`
	CRMSystem        crm.System `json:"crm_system"`
	IsEnabled        bool       `json:"is_enabled"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	TokenType        string     `json:"token_type"`
	Scope            *string    `json:"scope,omitempty"`
	HasRefreshToken  bool       `json:"has_refresh_token"`
	CreatedTime      time.Time  `json:"created_time"`
	LastModifiedTime time.Time  `json:"last_modified_time"`
	CreatedBy        string     `json:"created_by"`
	ModifiedBy       string     `json:"modified_by"`
}

// ToConnectionResponse converts a domain connection
func ToConnectionResponse(c *crm.Connection) ConnectionResponse {
	return ConnectionResponse{
		TenantID:         c.TenantID,
		CRMSystem:        c.System,
		IsEnabled:        c.IsEnabled,
		ExpiresAt:        c.ExpiresAt,
		TokenType:        c.TokenType,
		Scope:            c.Scope,
		HasRefreshToken:  c.HasRefreshToken(),
		CreatedTime:      c.CreatedTime,
		LastModifiedTime: c.LastModifiedTime,
		CreatedBy:        c.CreatedBy,
		ModifiedBy:       c.ModifiedBy,
	}
}

// UpsertCredentialsRequest is the admin override for a tenant's tokens
type UpsertCredentialsRequest struct {
	CRMSystem    string     `json:"crm_system" binding:"required"`
	AccessToken  string     `json:"access_token" binding:"required"`
	RefreshToken *string    `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	TokenType    string     `json:"token_type,omitempty"`
	Scope        *string    `json:"scope,omitempty"`
	IsEnabled    *bool      `json:"is_enabled,omitempty"`
	Actor        string     `json:"actor,omitempty"`
}

// ToConnection converts the request for the tenant
func (r *UpsertCredentialsRequest) ToConnection(tenantID uuid.UUID, system crm.System) *crm.Connection {
	enabled := true
	if r.IsEnabled != nil {
		enabled = *r.IsEnabled
	}
	actor := r.Actor
	if actor == "" {
		actor = "admin"
	}
	var expires *time.Time
	if r.ExpiresAt != nil {
		ts := r.ExpiresAt.UTC()
		expires = &ts
	}
	return &crm.Connection{
		TenantID:     tenantID,
		System:       system,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    expires,
		TokenType:    r.TokenType,
		Scope:        r.Scope,
		IsEnabled:    enabled,
		CreatedBy:    actor,
		ModifiedBy:   actor,
	}
}

// ---------------------------------------------------------------------------
// Link DTOs
// ---------------------------------------------------------------------------

// LinkResponse represents an entity link
type LinkResponse struct {
	ID               uuid.UUID  `json:"id"`
	CRMSystem        crm.System `json:"crm_system"`
	InternalID       uuid.UUID  `json:"leadlane_id"`
	CRMID            string     `json:"crm_id"`
	CreatedTime      time.Time  `json:"created_time"`
	LastModifiedTime time.Time  `json:"last_modified_time"`
}

// ToLinkResponses converts links
func ToLinkResponses(links []crm.Link) []LinkResponse {
	out := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, LinkResponse{
			ID:               l.ID,
			CRMSystem:        l.System,
			InternalID:       l.InternalID,
			CRMID:            l.CRMID,
			CreatedTime:      l.CreatedTime,
			LastModifiedTime: l.LastModifiedTime,
		})
	}
	return out
}
