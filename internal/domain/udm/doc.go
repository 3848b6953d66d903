// Package udm contains the Unified Data Model: the vendor-independent internal
// representation of companies, contacts, opportunities and activities.
//
// Every entity exposes an explicit field accessor table (FieldTable) so that
// generic mapping code can read and write fields by name without reflection.
package udm
