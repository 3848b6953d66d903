package crm

import "github.com/google/uuid"

// Sync error codes shared by every vendor
const (
	CodeMissingInternalID  = "missing_leadlane_id"
	CodeMissingCredentials = "missing_credentials"
	CodeConnectionDisabled = "connection_disabled"
	CodeTokenExpired       = "token_expired"
	CodeTokenRefreshFailed = "token_refresh_failed"
	CodeClientError        = "crm_client_error"
	CodeMappingError       = "mapping_error"
	CodeNotImplemented     = "not_implemented"
)

// Vendor error code suffixes, prefixed with the system tag (e.g. hubspot_auth_error)
const (
	suffixAuthError       = "_auth_error"
	suffixNotFound        = "_not_found"
	suffixRateLimited     = "_rate_limited"
	suffixValidationError = "_validation_error"
	suffixServerError     = "_server_error"
)

// VendorErrorCode classifies an HTTP status from a vendor API into the shared taxonomy
func VendorErrorCode(system System, status int) string {
	prefix := string(system)
	switch {
	case status == 401 || status == 403:
		return prefix + suffixAuthError
	case status == 404:
		return prefix + suffixNotFound
	case status == 429:
		return prefix + suffixRateLimited
	case status >= 400 && status < 500:
		return prefix + suffixValidationError
	default:
		return prefix + suffixServerError
	}
}

// SyncError is a structured failure reason inside a SyncResult
type SyncError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SyncResult is the outcome of one sync attempt against one CRM system.
// It is returned to the caller and never persisted.
type SyncResult struct {
	Success     bool        `json:"success"`
	System      System      `json:"crm_system"`
	ObjectType  ObjectType  `json:"crm_object_type"`
	CRMID       string      `json:"crm_id,omitempty"`
	InternalID  string      `json:"leadlane_id,omitempty"`
	Errors      []SyncError `json:"errors,omitempty"`
	RawResponse any         `json:"raw_response,omitempty"`
}

// NewSyncSuccess builds a successful result
func NewSyncSuccess(system System, objectType ObjectType, internalID uuid.UUID, crmID string, raw any) *SyncResult {
	return &SyncResult{
		Success:     true,
		System:      system,
		ObjectType:  objectType,
		CRMID:       crmID,
		InternalID:  formatInternalID(internalID),
		RawResponse: raw,
	}
}

// NewSyncFailure builds a failed result with a single error
func NewSyncFailure(system System, objectType ObjectType, internalID uuid.UUID, code, message string, details map[string]any) *SyncResult {
	return &SyncResult{
		Success:    false,
		System:     system,
		ObjectType: objectType,
		InternalID: formatInternalID(internalID),
		Errors:     []SyncError{{Code: code, Message: message, Details: details}},
	}
}

// NewNotImplemented builds the result returned by vendor stubs
func NewNotImplemented(system System, objectType ObjectType, internalID uuid.UUID, operation string) *SyncResult {
	return NewSyncFailure(system, objectType, internalID, CodeNotImplemented,
		string(system)+" "+operation+" is not implemented yet", nil)
}

// FirstErrorCode returns the code of the first error or an empty string
func (r *SyncResult) FirstErrorCode() string {
	if r == nil || len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Code
}

func formatInternalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
