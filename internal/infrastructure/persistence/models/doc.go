// Package models contains GORM persistence models for the CRM sync tables and
// the internal entities they reference. Models are kept separate from domain
// types; each model converts with ToDomain and FromDomain.
//
// Files:
// - crm.go: connections, field mappings, link tables, webhook ledger
// - udm.go: companies, contacts, opportunities
package models
