package udm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObjectTypeOpportunity is the field table name of Opportunity
const ObjectTypeOpportunity = "opportunity"

// BANTUnknown is the default value of every BANT qualification field
const BANTUnknown = "unknown"

// Opportunity is the internal representation of a deal, created from a booked demo
type Opportunity struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	CompanyID        *uuid.UUID
	ContactID        *uuid.UUID
	DealName         string
	Amount           *decimal.Decimal
	Stage            *string
	Pipeline         *string
	CloseDate        *time.Time
	DemoDate         *time.Time
	DemoStatus       *string
	BANTBudget       string
	BANTAuthority    string
	BANTNeed         string
	BANTTiming       string
	LeadSource       *string
	CreatedTime      time.Time
	LastModifiedTime time.Time
	CreatedBy        string
	ModifiedBy       string
}

// NewOpportunity creates an opportunity with a generated ID and unknown BANT values
func NewOpportunity(tenantID uuid.UUID, dealName string) *Opportunity {
	now := time.Now().UTC()
	o := newOpportunityDefaults()
	o.ID = uuid.New()
	o.TenantID = tenantID
	o.DealName = strings.TrimSpace(dealName)
	o.CreatedTime = now
	o.LastModifiedTime = now
	return o
}

func newOpportunityDefaults() *Opportunity {
	return &Opportunity{
		BANTBudget:    BANTUnknown,
		BANTAuthority: BANTUnknown,
		BANTNeed:      BANTUnknown,
		BANTTiming:    BANTUnknown,
	}
}

// Touch records a modification by actor
func (o *Opportunity) Touch(actor string, at time.Time) {
	o.LastModifiedTime = at
	o.ModifiedBy = actor
}

// ObjectType implements Record
func (o *Opportunity) ObjectType() string { return ObjectTypeOpportunity }

// GetField implements Record
func (o *Opportunity) GetField(name string) (any, bool) { return OpportunityFields.Get(o, name) }

// FieldNames implements Record
func (o *Opportunity) FieldNames() []string { return OpportunityFields.Names() }

// OpportunityFields is the accessor table of Opportunity
var OpportunityFields = NewFieldTable(ObjectTypeOpportunity,
	newOpportunityDefaults,
	cloneOpportunity,
	[]string{"deal_name"},
	map[string]Field[Opportunity]{
		"deal_name":      requiredStringField(func(o *Opportunity) *string { return &o.DealName }),
		"deal_amount":    decimalField(func(o *Opportunity) **decimal.Decimal { return &o.Amount }),
		"deal_stage":     stringField(func(o *Opportunity) **string { return &o.Stage }),
		"deal_pipeline":  stringField(func(o *Opportunity) **string { return &o.Pipeline }),
		"close_date":     timeField(func(o *Opportunity) **time.Time { return &o.CloseDate }),
		"demo_date":      timeField(func(o *Opportunity) **time.Time { return &o.DemoDate }),
		"demo_status":    stringField(func(o *Opportunity) **string { return &o.DemoStatus }),
		"bant_budget":    requiredStringField(func(o *Opportunity) *string { return &o.BANTBudget }),
		"bant_authority": requiredStringField(func(o *Opportunity) *string { return &o.BANTAuthority }),
		"bant_need":      requiredStringField(func(o *Opportunity) *string { return &o.BANTNeed }),
		"bant_timing":    requiredStringField(func(o *Opportunity) *string { return &o.BANTTiming }),
		"lead_source":    stringField(func(o *Opportunity) **string { return &o.LeadSource }),
	},
)

func cloneOpportunity(o *Opportunity) *Opportunity {
	if o == nil {
		return nil
	}
	cp := *o
	if o.CompanyID != nil {
		id := *o.CompanyID
		cp.CompanyID = &id
	}
	if o.ContactID != nil {
		id := *o.ContactID
		cp.ContactID = &id
	}
	cp.Amount = cloneDecimal(o.Amount)
	cp.Stage = cloneString(o.Stage)
	cp.Pipeline = cloneString(o.Pipeline)
	cp.CloseDate = cloneTime(o.CloseDate)
	cp.DemoDate = cloneTime(o.DemoDate)
	cp.DemoStatus = cloneString(o.DemoStatus)
	cp.LeadSource = cloneString(o.LeadSource)
	return &cp
}
