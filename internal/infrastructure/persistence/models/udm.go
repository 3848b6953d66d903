package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/shopspring/decimal"
)

// AuditColumns are shared by the internal entity tables
type AuditColumns struct {
	CreatedTime      time.Time `gorm:"not null"`
	LastModifiedTime time.Time `gorm:"not null"`
	CreatedBy        string    `gorm:"type:varchar(100)"`
	ModifiedBy       string    `gorm:"type:varchar(100)"`
}

// CompanyModel is the persistence model for udm.Company
type CompanyModel struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TenantID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	CompanyName         string           `gorm:"type:varchar(255);not null"`
	BusinessDescription *string          `gorm:"type:text"`
	AddressLine1        *string          `gorm:"column:address_line_1;type:varchar(255)"`
	City                *string          `gorm:"type:varchar(120)"`
	PostalCode          *string          `gorm:"type:varchar(32)"`
	StateOrProvince     *string          `gorm:"type:varchar(120)"`
	CountryRegion       *string          `gorm:"type:varchar(120)"`
	Website             *string          `gorm:"type:varchar(255)"`
	Domain              *string          `gorm:"type:varchar(255)"`
	Phone               *string          `gorm:"type:varchar(64)"`
	EmailAddress        *string          `gorm:"type:varchar(255)"`
	LinkedinAccount     *string          `gorm:"type:varchar(255)"`
	Industry            *string          `gorm:"type:varchar(120)"`
	EmployeesTotal      *int             `gorm:"type:integer"`
	SalesEUR            *decimal.Decimal `gorm:"column:sales_eur;type:numeric(18,2)"`
	YearFounded         *int             `gorm:"type:integer"`
	DunsNumber          *string          `gorm:"type:varchar(32)"`
	LifecyclePhase      string           `gorm:"type:varchar(64);not null"`
	LossReason          *string          `gorm:"type:varchar(255)"`
	ResponsibleSDRID    *string          `gorm:"column:responsible_sdr_id;type:varchar(64)"`
	AuditColumns
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the model to a domain company
func (m *CompanyModel) ToDomain() *udm.Company {
	return &udm.Company{
		ID:                  m.ID,
		TenantID:            m.TenantID,
		CompanyName:         m.CompanyName,
		BusinessDescription: m.BusinessDescription,
		AddressLine1:        m.AddressLine1,
		City:                m.City,
		PostalCode:          m.PostalCode,
		StateOrProvince:     m.StateOrProvince,
		CountryRegion:       m.CountryRegion,
		Website:             m.Website,
		Domain:              m.Domain,
		Phone:               m.Phone,
		EmailAddress:        m.EmailAddress,
		LinkedinAccount:     m.LinkedinAccount,
		Industry:            m.Industry,
		EmployeesTotal:      m.EmployeesTotal,
		SalesEUR:            m.SalesEUR,
		YearFounded:         m.YearFounded,
		DunsNumber:          m.DunsNumber,
		LifecyclePhase:      m.LifecyclePhase,
		LossReason:          m.LossReason,
		ResponsibleSDRID:    m.ResponsibleSDRID,
		CreatedTime:         m.CreatedTime,
		LastModifiedTime:    m.LastModifiedTime,
		CreatedBy:           m.CreatedBy,
		ModifiedBy:          m.ModifiedBy,
	}
}

// FromDomain populates the model from a domain company
func (m *CompanyModel) FromDomain(c *udm.Company) {
	m.ID = c.ID
	m.TenantID = c.TenantID
	m.CompanyName = c.CompanyName
	m.BusinessDescription = c.BusinessDescription
	m.AddressLine1 = c.AddressLine1
	m.City = c.City
	m.PostalCode = c.PostalCode
	m.StateOrProvince = c.StateOrProvince
	m.CountryRegion = c.CountryRegion
	m.Website = c.Website
	m.Domain = c.Domain
	m.Phone = c.Phone
	m.EmailAddress = c.EmailAddress
	m.LinkedinAccount = c.LinkedinAccount
	m.Industry = c.Industry
	m.EmployeesTotal = c.EmployeesTotal
	m.SalesEUR = c.SalesEUR
	m.YearFounded = c.YearFounded
	m.DunsNumber = c.DunsNumber
	m.LifecyclePhase = c.LifecyclePhase
	m.LossReason = c.LossReason
	m.ResponsibleSDRID = c.ResponsibleSDRID
	m.AuditColumns = AuditColumns{
		CreatedTime:      c.CreatedTime,
		LastModifiedTime: c.LastModifiedTime,
		CreatedBy:        c.CreatedBy,
		ModifiedBy:       c.ModifiedBy,
	}
}

// ContactModel is the persistence model for udm.Contact
type ContactModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID       *uuid.UUID `gorm:"type:uuid;index"`
	FirstName       *string    `gorm:"type:varchar(120)"`
	LastName        string     `gorm:"type:varchar(120);not null"`
	Email1          *string    `gorm:"column:email_1;type:varchar(255)"`
	Email2          *string    `gorm:"column:email_2;type:varchar(255)"`
	Phone1          *string    `gorm:"column:phone_1;type:varchar(64)"`
	Phone2          *string    `gorm:"column:phone_2;type:varchar(64)"`
	MobilePhone     *string    `gorm:"type:varchar(64)"`
	JobTitle        *string    `gorm:"type:varchar(255)"`
	Department      *string    `gorm:"type:varchar(120)"`
	Seniority       *string    `gorm:"type:varchar(64)"`
	LinkedinURL     *string    `gorm:"column:linkedin_url;type:varchar(255)"`
	LocationCity    *string    `gorm:"type:varchar(120)"`
	LocationCountry *string    `gorm:"type:varchar(120)"`
	LeadStatus      string     `gorm:"type:varchar(64);not null"`
	LossReason      *string    `gorm:"type:varchar(255)"`
	Notes           *string    `gorm:"type:text"`
	AuditColumns
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the model to a domain contact
func (m *ContactModel) ToDomain() *udm.Contact {
	return &udm.Contact{
		ID:               m.ID,
		TenantID:         m.TenantID,
		CompanyID:        m.CompanyID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email1:           m.Email1,
		Email2:           m.Email2,
		Phone1:           m.Phone1,
		Phone2:           m.Phone2,
		MobilePhone:      m.MobilePhone,
		JobTitle:         m.JobTitle,
		Department:       m.Department,
		Seniority:        m.Seniority,
		LinkedinURL:      m.LinkedinURL,
		LocationCity:     m.LocationCity,
		LocationCountry:  m.LocationCountry,
		LeadStatus:       m.LeadStatus,
		LossReason:       m.LossReason,
		Notes:            m.Notes,
		CreatedTime:      m.CreatedTime,
		LastModifiedTime: m.LastModifiedTime,
		CreatedBy:        m.CreatedBy,
		ModifiedBy:       m.ModifiedBy,
	}
}

// FromDomain populates the model from a domain contact
func (m *ContactModel) FromDomain(c *udm.Contact) {
	m.ID = c.ID
	m.TenantID = c.TenantID
	m.CompanyID = c.CompanyID
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email1 = c.Email1
	m.Email2 = c.Email2
	m.Phone1 = c.Phone1
	m.Phone2 = c.Phone2
	m.MobilePhone = c.MobilePhone
	m.JobTitle = c.JobTitle
	m.Department = c.Department
	m.Seniority = c.Seniority
	m.LinkedinURL = c.LinkedinURL
	m.LocationCity = c.LocationCity
	m.LocationCountry = c.LocationCountry
	m.LeadStatus = c.LeadStatus
	m.LossReason = c.LossReason
	m.Notes = c.Notes
	m.AuditColumns = AuditColumns{
		CreatedTime:      c.CreatedTime,
		LastModifiedTime: c.LastModifiedTime,
		CreatedBy:        c.CreatedBy,
		ModifiedBy:       c.ModifiedBy,
	}
}

// OpportunityModel is the persistence model for udm.Opportunity
type OpportunityModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CompanyID     *uuid.UUID       `gorm:"type:uuid;index"`
	ContactID     *uuid.UUID       `gorm:"type:uuid"`
	DealName      string           `gorm:"type:varchar(255);not null"`
	Amount        *decimal.Decimal `gorm:"type:numeric(18,2)"`
	Stage         *string          `gorm:"type:varchar(120)"`
	Pipeline      *string          `gorm:"type:varchar(120)"`
	CloseDate     *time.Time
	DemoDate      *time.Time
	DemoStatus    *string `gorm:"type:varchar(64)"`
	BANTBudget    string  `gorm:"column:bant_budget;type:varchar(32);not null"`
	BANTAuthority string  `gorm:"column:bant_authority;type:varchar(32);not null"`
	BANTNeed      string  `gorm:"column:bant_need;type:varchar(32);not null"`
	BANTTiming    string  `gorm:"column:bant_timing;type:varchar(32);not null"`
	LeadSource    *string `gorm:"type:varchar(120)"`
	AuditColumns
}

// TableName returns the table name for GORM
func (OpportunityModel) TableName() string {
	return "opportunities"
}

// ToDomain converts the model to a domain opportunity
func (m *OpportunityModel) ToDomain() *udm.Opportunity {
	return &udm.Opportunity{
		ID:               m.ID,
		TenantID:         m.TenantID,
		CompanyID:        m.CompanyID,
		ContactID:        m.ContactID,
		DealName:         m.DealName,
		Amount:           m.Amount,
		Stage:            m.Stage,
		Pipeline:         m.Pipeline,
		CloseDate:        m.CloseDate,
		DemoDate:         m.DemoDate,
		DemoStatus:       m.DemoStatus,
		BANTBudget:       m.BANTBudget,
		BANTAuthority:    m.BANTAuthority,
		BANTNeed:         m.BANTNeed,
		BANTTiming:       m.BANTTiming,
		LeadSource:       m.LeadSource,
		CreatedTime:      m.CreatedTime,
		LastModifiedTime: m.LastModifiedTime,
		CreatedBy:        m.CreatedBy,
		ModifiedBy:       m.ModifiedBy,
	}
}

// FromDomain populates the model from a domain opportunity
func (m *OpportunityModel) FromDomain(o *udm.Opportunity) {
	m.ID = o.ID
	m.TenantID = o.TenantID
	m.CompanyID = o.CompanyID
	m.ContactID = o.ContactID
	m.DealName = o.DealName
	m.Amount = o.Amount
	m.Stage = o.Stage
	m.Pipeline = o.Pipeline
	m.CloseDate = o.CloseDate
	m.DemoDate = o.DemoDate
	m.DemoStatus = o.DemoStatus
	m.BANTBudget = o.BANTBudget
	m.BANTAuthority = o.BANTAuthority
	m.BANTNeed = o.BANTNeed
	m.BANTTiming = o.BANTTiming
	m.LeadSource = o.LeadSource
	m.AuditColumns = AuditColumns{
		CreatedTime:      o.CreatedTime,
		LastModifiedTime: o.LastModifiedTime,
		CreatedBy:        o.CreatedBy,
		ModifiedBy:       o.ModifiedBy,
	}
}
