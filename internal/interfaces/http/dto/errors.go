package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeNotImplemented is used for features not available for a CRM system
	ErrCodeNotImplemented = "ERR_NOT_IMPLEMENTED"
	// ErrCodeUpstream is used when a CRM vendor call fails on behalf of the client
	ErrCodeUpstream = "ERR_UPSTREAM"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeTenantMismatch is used when the path tenant differs from the token tenant
	ErrCodeTenantMismatch = "ERR_TENANT_MISMATCH"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodePayloadTooLarge is used when the request body exceeds its limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// CRM error codes
const (
	// ErrCodeCRMNotConnected is used when the tenant has no connection for the system
	ErrCodeCRMNotConnected = "ERR_CRM_NOT_CONNECTED"
	// ErrCodeCRMUnknownSystem is used for an unsupported crm_system path value
	ErrCodeCRMUnknownSystem = "ERR_CRM_UNKNOWN_SYSTEM"
	// ErrCodeOAuthState is used when an OAuth state cannot be verified
	ErrCodeOAuthState = "ERR_OAUTH_STATE"
	// ErrCodeWebhookSignature is used for invalid or stale webhook signatures
	ErrCodeWebhookSignature = "ERR_WEBHOOK_SIGNATURE"
	// ErrCodeWebhookSecretMissing is used when no webhook secret is configured
	ErrCodeWebhookSecretMissing = "ERR_WEBHOOK_SECRET_MISSING"
	// ErrCodeMappingConflict is returned verbatim to clients of the field mapping API
	ErrCodeMappingConflict = "udm_field_name_already_mapped_for_object_type"
	// ErrCodeMappingNotFound is returned verbatim to clients of the field mapping API
	ErrCodeMappingNotFound = "mapping_not_found_for_tenant_and_crm"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:        http.StatusInternalServerError,
	ErrCodeInternal:       http.StatusInternalServerError,
	ErrCodeNotImplemented: http.StatusNotImplemented,
	ErrCodeUpstream:       http.StatusBadGateway,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	ErrCodeTokenExpired:   http.StatusUnauthorized,
	ErrCodeTokenInvalid:   http.StatusUnauthorized,
	ErrCodeTenantMismatch: http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	// CRM errors
	ErrCodeCRMNotConnected:      http.StatusNotFound,
	ErrCodeCRMUnknownSystem:     http.StatusBadRequest,
	ErrCodeOAuthState:           http.StatusBadRequest,
	ErrCodeWebhookSignature:     http.StatusUnauthorized,
	ErrCodeWebhookSecretMissing: http.StatusInternalServerError,
	ErrCodeMappingConflict:      http.StatusConflict,
	ErrCodeMappingNotFound:      http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps short domain error codes to the standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":      ErrCodeAlreadyExists,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"VALIDATION_ERROR":    ErrCodeValidation,
	"BAD_REQUEST":         ErrCodeBadRequest,
	"INTERNAL_ERROR":      ErrCodeInternal,
	"NOT_IMPLEMENTED":     ErrCodeNotImplemented,
	"NOT_CONNECTED":       ErrCodeCRMNotConnected,
	"UPSTREAM_ERROR":      ErrCodeUpstream,
	"INVALID_OAUTH_STATE": ErrCodeOAuthState,
	"UNKNOWN_CRM_SYSTEM":  ErrCodeCRMUnknownSystem,
}

// NormalizeErrorCode converts a short domain code to the standardized format.
// Codes that are already standardized or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
