// Package crm contains the CRM synchronization bounded context.
// It describes how tenant data is mirrored into external CRM systems.
//
// Key concepts:
//   - Connection: per-tenant OAuth credentials for one CRM system
//   - FieldMapping: a single internal-field to CRM-field translation
//   - Link: association between an internal entity ID and a CRM object ID
//   - SyncResult: outcome of one outbound sync attempt
//   - WebhookEvent: ledger entry for an inbound CRM event
//   - Client: port implemented by every vendor adapter
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package crm
