package udm

import (
	"fmt"
	"strings"
)

// Record is a UDM entity readable by field name.
// Implementations delegate to their FieldTable.
type Record interface {
	ObjectType() string
	GetField(name string) (any, bool)
	FieldNames() []string
}

var (
	_ Record = (*Company)(nil)
	_ Record = (*Contact)(nil)
	_ Record = (*Opportunity)(nil)
	_ Record = (*Activity)(nil)
)

// CanonicalFieldName resolves a field of objectType, matched case-insensitively
// after trimming, to the spelling its accessor table uses.
func CanonicalFieldName(objectType, name string) (string, error) {
	var lookup func(string) (string, bool)
	switch objectType {
	case ObjectTypeCompany:
		lookup = CompanyFields.Lookup
	case ObjectTypeContact:
		lookup = ContactFields.Lookup
	case ObjectTypeOpportunity:
		lookup = OpportunityFields.Lookup
	case ObjectTypeActivity:
		lookup = ActivityFields.Lookup
	default:
		return "", fmt.Errorf("%w: unknown object type %q", ErrUnknownField, objectType)
	}
	name = strings.TrimSpace(name)
	if canonical, ok := lookup(name); ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, objectType, name)
}
