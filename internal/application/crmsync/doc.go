// Package crmsync implements the CRM synchronization use cases: credential
// lifecycle, field mapping, outbound sync fan-out and inbound webhook processing.
package crmsync
