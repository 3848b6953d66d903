package udm

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectTypeContact is the field table name of Contact
const ObjectTypeContact = "contact"

// Contact is the internal representation of a person at a company
type Contact struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	CompanyID        *uuid.UUID
	FirstName        *string
	LastName         string
	Email1           *string
	Email2           *string
	Phone1           *string
	Phone2           *string
	MobilePhone      *string
	JobTitle         *string
	Department       *string
	Seniority        *string
	LinkedinURL      *string
	LocationCity     *string
	LocationCountry  *string
	LeadStatus       string
	LossReason       *string
	Notes            *string
	CreatedTime      time.Time
	LastModifiedTime time.Time
	CreatedBy        string
	ModifiedBy       string
}

// NewContact creates a contact with a generated ID and default lead status
func NewContact(tenantID uuid.UUID, lastName string) *Contact {
	now := time.Now().UTC()
	return &Contact{
		ID:               uuid.New(),
		TenantID:         tenantID,
		LastName:         strings.TrimSpace(lastName),
		LeadStatus:       LifecycleNewNotContacted,
		CreatedTime:      now,
		LastModifiedTime: now,
	}
}

// Touch records a modification by actor
func (c *Contact) Touch(actor string, at time.Time) {
	c.LastModifiedTime = at
	c.ModifiedBy = actor
}

// ObjectType implements Record
func (c *Contact) ObjectType() string { return ObjectTypeContact }

// GetField implements Record
func (c *Contact) GetField(name string) (any, bool) { return ContactFields.Get(c, name) }

// FieldNames implements Record
func (c *Contact) FieldNames() []string { return ContactFields.Names() }

// ContactFields is the accessor table of Contact
var ContactFields = NewFieldTable(ObjectTypeContact,
	func() *Contact { return &Contact{LeadStatus: LifecycleNewNotContacted} },
	cloneContact,
	[]string{"contact_last_name"},
	map[string]Field[Contact]{
		"contact_first_name":   stringField(func(c *Contact) **string { return &c.FirstName }),
		"contact_last_name":    requiredStringField(func(c *Contact) *string { return &c.LastName }),
		"contact_email_1":      stringField(func(c *Contact) **string { return &c.Email1 }),
		"contact_email_2":      stringField(func(c *Contact) **string { return &c.Email2 }),
		"contact_phone_1":      stringField(func(c *Contact) **string { return &c.Phone1 }),
		"contact_phone_2":      stringField(func(c *Contact) **string { return &c.Phone2 }),
		"contact_mobile_phone": stringField(func(c *Contact) **string { return &c.MobilePhone }),
		"contact_job_title":    stringField(func(c *Contact) **string { return &c.JobTitle }),
		"contact_department":   stringField(func(c *Contact) **string { return &c.Department }),
		"contact_seniority":    stringField(func(c *Contact) **string { return &c.Seniority }),
		"linkedin_url":         stringField(func(c *Contact) **string { return &c.LinkedinURL }),
		"location_city":        stringField(func(c *Contact) **string { return &c.LocationCity }),
		"location_country":     stringField(func(c *Contact) **string { return &c.LocationCountry }),
		"leadstatus":           requiredStringField(func(c *Contact) *string { return &c.LeadStatus }),
		"loss_reason":          stringField(func(c *Contact) **string { return &c.LossReason }),
		"notes":                stringField(func(c *Contact) **string { return &c.Notes }),
	},
)

func cloneContact(c *Contact) *Contact {
	if c == nil {
		return nil
	}
	cp := *c
	if c.CompanyID != nil {
		id := *c.CompanyID
		cp.CompanyID = &id
	}
	cp.FirstName = cloneString(c.FirstName)
	cp.Email1 = cloneString(c.Email1)
	cp.Email2 = cloneString(c.Email2)
	cp.Phone1 = cloneString(c.Phone1)
	cp.Phone2 = cloneString(c.Phone2)
	cp.MobilePhone = cloneString(c.MobilePhone)
	cp.JobTitle = cloneString(c.JobTitle)
	cp.Department = cloneString(c.Department)
	cp.Seniority = cloneString(c.Seniority)
	cp.LinkedinURL = cloneString(c.LinkedinURL)
	cp.LocationCity = cloneString(c.LocationCity)
	cp.LocationCountry = cloneString(c.LocationCountry)
	cp.LossReason = cloneString(c.LossReason)
	cp.Notes = cloneString(c.Notes)
	return &cp
}
