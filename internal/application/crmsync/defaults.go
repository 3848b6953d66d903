package crmsync

import "github.com/leadlane/backend/internal/domain/crm"

// defaultMappings holds the built-in internal field -> CRM property tables.
// Tenant and global mapping records are layered on top of these.
var defaultMappings = map[crm.System]map[crm.ObjectType]map[string]string{
	crm.SystemHubSpot: {
		crm.ObjectTypeCompany: {
			"company_name":         "name",
			"domain":               "domain",
			"website":              "website",
			"industry":             "industry",
			"employees_total":      "numberofemployees",
			"city":                 "city",
			"country_region":       "country",
			"state_or_province":    "state",
			"postal_code":          "zip",
			"address_line_1":       "address",
			"phone":                "phone",
			"business_description": "description",
		},
		crm.ObjectTypeContact: {
			"contact_first_name":   "firstname",
			"contact_last_name":    "lastname",
			"contact_email_1":      "email",
			"contact_phone_1":      "phone",
			"contact_job_title":    "jobtitle",
			"contact_mobile_phone": "mobilephone",
			"linkedin_url":         "linkedinbio",
		},
		crm.ObjectTypeOpportunity: {
			"deal_name":     "dealname",
			"deal_amount":   "amount",
			"deal_stage":    "dealstage",
			"deal_pipeline": "pipeline",
			"close_date":    "closedate",
		},
		crm.ObjectTypeActivity: {
			"activity_body":      "hs_note_body",
			"activity_timestamp": "hs_timestamp",
		},
	},
	crm.SystemSalesforce: {
		crm.ObjectTypeCompany: {
			"company_name":    "Name",
			"website":         "Website",
			"industry":        "Industry",
			"employees_total": "NumberOfEmployees",
			"city":            "BillingCity",
			"country_region":  "BillingCountry",
		},
		crm.ObjectTypeContact: {
			"contact_first_name":   "FirstName",
			"contact_last_name":    "LastName",
			"contact_email_1":      "Email",
			"contact_phone_1":      "Phone",
			"contact_mobile_phone": "MobilePhone",
			"contact_job_title":    "Title",
		},
		crm.ObjectTypeOpportunity: {
			"deal_name":   "Name",
			"deal_amount": "Amount",
			"deal_stage":  "StageName",
			"close_date":  "CloseDate",
			"lead_source": "LeadSource",
		},
		crm.ObjectTypeActivity: {
			"activity_subject":   "Subject",
			"activity_type":      "Type",
			"activity_timestamp": "ActivityDate",
			"activity_body":      "Description",
		},
	},
	crm.SystemSAPB1: {
		crm.ObjectTypeCompany: {
			"company_name":   "CardName",
			"website":        "Website",
			"industry":       "Industry",
			"city":           "MailCity",
			"country_region": "MailCountry",
		},
		crm.ObjectTypeContact: {
			"contact_first_name":   "FirstName",
			"contact_last_name":    "LastName",
			"contact_email_1":      "E_Mail",
			"contact_phone_1":      "Phone1",
			"contact_mobile_phone": "MobilePhone",
			"contact_job_title":    "Position",
		},
		crm.ObjectTypeOpportunity: {
			"deal_name":   "Name",
			"deal_amount": "MaxLocalTotal",
			"deal_stage":  "CurrentStageNumber",
			"close_date":  "ClosingDate",
		},
		crm.ObjectTypeActivity: {
			"activity_subject":   "Details",
			"activity_type":      "ActivityType",
			"activity_timestamp": "StartDate",
		},
	},
}

// DefaultMapping returns a copy of the built-in table for (system, objectType).
// Systems without defaults yield an empty map.
func DefaultMapping(system crm.System, objectType crm.ObjectType) map[string]string {
	src := defaultMappings[system][objectType]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
