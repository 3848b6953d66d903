package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
)

// CRMConnectionModel is the persistence model for crm.Connection
type CRMConnectionModel struct {
	TenantID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CRMSystem        string     `gorm:"type:varchar(32);primaryKey"`
	AccessToken      string     `gorm:"type:text;not null"`
	RefreshToken     *string    `gorm:"type:text"`
	ExpiresAt        *time.Time `gorm:"index:idx_crm_connections_expiry,priority:2"`
	TokenType        string     `gorm:"type:varchar(32);not null"`
	Scope            *string    `gorm:"type:text"`
	IsEnabled        bool       `gorm:"not null;index:idx_crm_connections_expiry,priority:1"`
	CreatedTime      time.Time  `gorm:"not null"`
	LastModifiedTime time.Time  `gorm:"not null"`
	CreatedBy        string     `gorm:"type:varchar(100);not null"`
	ModifiedBy       string     `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CRMConnectionModel) TableName() string {
	return "crm_connections"
}

// ToDomain converts the model to a domain connection
func (m *CRMConnectionModel) ToDomain() *crm.Connection {
	return &crm.Connection{
		TenantID:         m.TenantID,
		System:           crm.System(m.CRMSystem),
		AccessToken:      m.AccessToken,
		RefreshToken:     m.RefreshToken,
		ExpiresAt:        m.ExpiresAt,
		TokenType:        m.TokenType,
		Scope:            m.Scope,
		IsEnabled:        m.IsEnabled,
		CreatedTime:      m.CreatedTime,
		LastModifiedTime: m.LastModifiedTime,
		CreatedBy:        m.CreatedBy,
		ModifiedBy:       m.ModifiedBy,
	}
}

// FromDomain populates the model from a domain connection
func (m *CRMConnectionModel) FromDomain(c *crm.Connection) {
	m.TenantID = c.TenantID
	m.CRMSystem = string(c.System)
	m.AccessToken = c.AccessToken
	m.RefreshToken = c.RefreshToken
	m.ExpiresAt = c.ExpiresAt
	m.TokenType = c.TokenType
	m.Scope = c.Scope
	m.IsEnabled = c.IsEnabled
	m.CreatedTime = c.CreatedTime
	m.LastModifiedTime = c.LastModifiedTime
	m.CreatedBy = c.CreatedBy
	m.ModifiedBy = c.ModifiedBy
}

// CRMFieldMappingModel is the persistence model for crm.FieldMapping
type CRMFieldMappingModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID         *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_crm_field_mappings_scope,priority:1"`
	CRMSystem        string     `gorm:"type:varchar(32);not null;uniqueIndex:uq_crm_field_mappings_scope,priority:2"`
	ObjectType       string     `gorm:"type:varchar(32);not null;uniqueIndex:uq_crm_field_mappings_scope,priority:3"`
	UDMFieldName     string     `gorm:"column:udm_field_name;type:varchar(200);not null;uniqueIndex:uq_crm_field_mappings_scope,priority:4"`
	CRMFieldName     string     `gorm:"column:crm_field_name;type:varchar(200);not null"`
	IsActive         bool       `gorm:"not null"`
	Direction        string     `gorm:"type:varchar(16);not null"`
	CreatedTime      time.Time  `gorm:"not null"`
	LastModifiedTime time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CRMFieldMappingModel) TableName() string {
	return "crm_field_mappings"
}

// ToDomain converts the model to a domain field mapping
func (m *CRMFieldMappingModel) ToDomain() *crm.FieldMapping {
	return &crm.FieldMapping{
		ID:               m.ID,
		TenantID:         m.TenantID,
		System:           crm.System(m.CRMSystem),
		ObjectType:       crm.ObjectType(m.ObjectType),
		UDMField:         m.UDMFieldName,
		CRMField:         m.CRMFieldName,
		IsActive:         m.IsActive,
		Direction:        crm.Direction(m.Direction),
		CreatedTime:      m.CreatedTime,
		LastModifiedTime: m.LastModifiedTime,
	}
}

// FromDomain populates the model from a domain field mapping
func (m *CRMFieldMappingModel) FromDomain(f *crm.FieldMapping) {
	m.ID = f.ID
	m.TenantID = f.TenantID
	m.CRMSystem = string(f.System)
	m.ObjectType = string(f.ObjectType)
	m.UDMFieldName = f.UDMField
	m.CRMFieldName = f.CRMField
	m.IsActive = f.IsActive
	m.Direction = string(f.Direction)
	m.CreatedTime = f.CreatedTime
	m.LastModifiedTime = f.LastModifiedTime
}

// LinkTables maps each link kind to its table
var LinkTables = map[crm.LinkKind]string{
	crm.LinkKindAccount:     "crm_account_links",
	crm.LinkKindContact:     "crm_contact_links",
	crm.LinkKindOpportunity: "crm_opportunity_links",
}

// CRMLinkModel is the row shape shared by every link table.
// The table is chosen per query with db.Table; indexes are created per table
// by the migrations since index names must be unique per schema.
type CRMLinkModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"type:uuid;not null"`
	CRMSystem        string    `gorm:"type:varchar(32);not null"`
	InternalID       uuid.UUID `gorm:"type:uuid;not null"`
	CRMID            string    `gorm:"column:crm_id;type:varchar(100);not null"`
	CreatedTime      time.Time `gorm:"not null"`
	LastModifiedTime time.Time `gorm:"not null"`
}

// ToDomain converts the model to a domain link
func (m *CRMLinkModel) ToDomain() *crm.Link {
	return &crm.Link{
		ID:               m.ID,
		TenantID:         m.TenantID,
		System:           crm.System(m.CRMSystem),
		InternalID:       m.InternalID,
		CRMID:            m.CRMID,
		CreatedTime:      m.CreatedTime,
		LastModifiedTime: m.LastModifiedTime,
	}
}

// CRMWebhookEventModel is the persistence model of the webhook idempotency ledger
type CRMWebhookEventModel struct {
	CRMSystem   string    `gorm:"type:varchar(32);primaryKey"`
	EventID     string    `gorm:"type:varchar(200);primaryKey"`
	ReceivedAt  time.Time `gorm:"not null"`
	OccurredAt  *time.Time
	ProcessedAt *time.Time
	Status      string  `gorm:"type:varchar(32);not null;index"`
	LastError   *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CRMWebhookEventModel) TableName() string {
	return "crm_webhook_events"
}

// ToDomain converts the model to a domain ledger entry
func (m *CRMWebhookEventModel) ToDomain() *crm.WebhookEvent {
	return &crm.WebhookEvent{
		System:      crm.System(m.CRMSystem),
		EventID:     m.EventID,
		ReceivedAt:  m.ReceivedAt,
		OccurredAt:  m.OccurredAt,
		ProcessedAt: m.ProcessedAt,
		Status:      crm.WebhookEventStatus(m.Status),
		LastError:   m.LastError,
	}
}
