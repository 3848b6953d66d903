package udm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LifecycleNewNotContacted is the initial lifecycle phase and lead status
const LifecycleNewNotContacted = "new_not_contacted"

// ObjectTypeCompany is the field table name of Company
const ObjectTypeCompany = "company"

// Company is the internal representation of an account
type Company struct {
	ID                  uuid.UUID
	TenantID            uuid.UUID
	CompanyName         string
	BusinessDescription *string
	AddressLine1        *string
	City                *string
	PostalCode          *string
	StateOrProvince     *string
	CountryRegion       *string
	Website             *string
	Domain              *string
	Phone               *string
	EmailAddress        *string
	LinkedinAccount     *string
	Industry            *string
	EmployeesTotal      *int
	SalesEUR            *decimal.Decimal
	YearFounded         *int
	DunsNumber          *string
	LifecyclePhase      string
	LossReason          *string
	ResponsibleSDRID    *string
	CreatedTime         time.Time
	LastModifiedTime    time.Time
	CreatedBy           string
	ModifiedBy          string
}

// NewCompany creates a company with a generated ID and default lifecycle phase
func NewCompany(tenantID uuid.UUID, name string) *Company {
	now := time.Now().UTC()
	return &Company{
		ID:               uuid.New(),
		TenantID:         tenantID,
		CompanyName:      strings.TrimSpace(name),
		LifecyclePhase:   LifecycleNewNotContacted,
		CreatedTime:      now,
		LastModifiedTime: now,
	}
}

// Touch records a modification by actor
func (c *Company) Touch(actor string, at time.Time) {
	c.LastModifiedTime = at
	c.ModifiedBy = actor
}

// ObjectType implements Record
func (c *Company) ObjectType() string { return ObjectTypeCompany }

// GetField implements Record
func (c *Company) GetField(name string) (any, bool) { return CompanyFields.Get(c, name) }

// FieldNames implements Record
func (c *Company) FieldNames() []string { return CompanyFields.Names() }

// CompanyFields is the accessor table of Company
var CompanyFields = NewFieldTable(ObjectTypeCompany,
	func() *Company { return &Company{LifecyclePhase: LifecycleNewNotContacted} },
	cloneCompany,
	[]string{"company_name"},
	map[string]Field[Company]{
		"company_name":         requiredStringField(func(c *Company) *string { return &c.CompanyName }),
		"business_description": stringField(func(c *Company) **string { return &c.BusinessDescription }),
		"address_line_1":       stringField(func(c *Company) **string { return &c.AddressLine1 }),
		"city":                 stringField(func(c *Company) **string { return &c.City }),
		"postal_code":          stringField(func(c *Company) **string { return &c.PostalCode }),
		"state_or_province":    stringField(func(c *Company) **string { return &c.StateOrProvince }),
		"country_region":       stringField(func(c *Company) **string { return &c.CountryRegion }),
		"website":              stringField(func(c *Company) **string { return &c.Website }),
		"domain":               stringField(func(c *Company) **string { return &c.Domain }),
		"phone":                stringField(func(c *Company) **string { return &c.Phone }),
		"email_address":        stringField(func(c *Company) **string { return &c.EmailAddress }),
		"linkedin_account":     stringField(func(c *Company) **string { return &c.LinkedinAccount }),
		"industry":             stringField(func(c *Company) **string { return &c.Industry }),
		"employees_total":      intField(func(c *Company) **int { return &c.EmployeesTotal }),
		"sales_eur":            decimalField(func(c *Company) **decimal.Decimal { return &c.SalesEUR }),
		"year_founded":         intField(func(c *Company) **int { return &c.YearFounded }),
		"duns_number":          stringField(func(c *Company) **string { return &c.DunsNumber }),
		"lifecycle_phase":      requiredStringField(func(c *Company) *string { return &c.LifecyclePhase }),
		"loss_reason":          stringField(func(c *Company) **string { return &c.LossReason }),
		"responsible_sdr_id":   stringField(func(c *Company) **string { return &c.ResponsibleSDRID }),
	},
)

func cloneCompany(c *Company) *Company {
	if c == nil {
		return nil
	}
	cp := *c
	cp.BusinessDescription = cloneString(c.BusinessDescription)
	cp.AddressLine1 = cloneString(c.AddressLine1)
	cp.City = cloneString(c.City)
	cp.PostalCode = cloneString(c.PostalCode)
	cp.StateOrProvince = cloneString(c.StateOrProvince)
	cp.CountryRegion = cloneString(c.CountryRegion)
	cp.Website = cloneString(c.Website)
	cp.Domain = cloneString(c.Domain)
	cp.Phone = cloneString(c.Phone)
	cp.EmailAddress = cloneString(c.EmailAddress)
	cp.LinkedinAccount = cloneString(c.LinkedinAccount)
	cp.Industry = cloneString(c.Industry)
	cp.EmployeesTotal = cloneInt(c.EmployeesTotal)
	cp.SalesEUR = cloneDecimal(c.SalesEUR)
	cp.YearFounded = cloneInt(c.YearFounded)
	cp.DunsNumber = cloneString(c.DunsNumber)
	cp.LossReason = cloneString(c.LossReason)
	cp.ResponsibleSDRID = cloneString(c.ResponsibleSDRID)
	return &cp
}
