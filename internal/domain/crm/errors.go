package crm

import "errors"

var (
	// Credential errors
	ErrNotConnected       = errors.New("crm: no enabled connection for tenant")
	ErrTokenExpired       = errors.New("crm: access token expired and no refresher available")
	ErrTokenRefreshFailed = errors.New("crm: token refresh failed")
	ErrNoRefreshToken     = errors.New("crm: no refresh token available")

	// Payload and mapping errors
	ErrMissingInternalID = errors.New("crm: payload is missing the internal id")
	ErrInvalidObject     = errors.New("crm: mapped properties do not cover required fields")
	ErrUnknownSystem     = errors.New("crm: unknown crm system")
	ErrUnknownObjectType = errors.New("crm: unknown object type")
	ErrUnknownLinkKind   = errors.New("crm: unknown link kind")
	ErrMappingNotFound   = errors.New("crm: field mapping not found")
	ErrMappingConflict   = errors.New("crm: udm field already mapped for object type")
	ErrInvalidMapping    = errors.New("crm: invalid field mapping")

	// Vendor errors
	ErrNotImplemented  = errors.New("crm: operation not implemented for crm system")
	ErrVendorRequest   = errors.New("crm: vendor request failed")
	ErrVendorResponse  = errors.New("crm: invalid vendor response")
	ErrClientNotConfig = errors.New("crm: crm client not configured")

	// Webhook errors
	ErrInvalidSignature = errors.New("crm: invalid webhook signature")
	ErrStaleSignature   = errors.New("crm: webhook timestamp outside tolerance")
	ErrMissingSecret    = errors.New("crm: webhook secret not configured")
	ErrMissingEventID   = errors.New("crm: webhook event has no event id")
	ErrDuplicateEvent   = errors.New("crm: webhook event already received")
)
