package crm

import (
	"fmt"
	"strings"
)

// System identifies an external CRM vendor
type System string

const (
	SystemHubSpot    System = "hubspot"
	SystemSalesforce System = "salesforce"
	SystemPipedrive  System = "pipedrive"
	SystemSAPB1      System = "sap_b1"
)

// AllSystems returns every known CRM system
func AllSystems() []System {
	return []System{SystemHubSpot, SystemSalesforce, SystemPipedrive, SystemSAPB1}
}

// IsValid returns true if the system is known
func (s System) IsValid() bool {
	switch s {
	case SystemHubSpot, SystemSalesforce, SystemPipedrive, SystemSAPB1:
		return true
	default:
		return false
	}
}

// String returns the string representation of System
func (s System) String() string {
	return string(s)
}

// ParseSystem parses a CRM system tag, ignoring case and surrounding whitespace
func ParseSystem(raw string) (System, error) {
	s := System(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSystem, raw)
	}
	return s, nil
}

// ObjectType is the kind of internal object a mapping or sync applies to
type ObjectType string

const (
	ObjectTypeCompany     ObjectType = "company"
	ObjectTypeContact     ObjectType = "contact"
	ObjectTypeOpportunity ObjectType = "opportunity"
	ObjectTypeActivity    ObjectType = "activity"
)

// AllObjectTypes returns every supported object type
func AllObjectTypes() []ObjectType {
	return []ObjectType{ObjectTypeCompany, ObjectTypeContact, ObjectTypeOpportunity, ObjectTypeActivity}
}

// IsValid returns true if the object type is supported
func (t ObjectType) IsValid() bool {
	switch t {
	case ObjectTypeCompany, ObjectTypeContact, ObjectTypeOpportunity, ObjectTypeActivity:
		return true
	default:
		return false
	}
}

// String returns the string representation of ObjectType
func (t ObjectType) String() string {
	return string(t)
}

// ParseObjectType parses an object type, lowercasing the input
func ParseObjectType(raw string) (ObjectType, error) {
	t := ObjectType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownObjectType, raw)
	}
	return t, nil
}
