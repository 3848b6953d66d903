package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// OAuth state errors
var (
	ErrMissingState          = errors.New("missing oauth state")
	ErrInvalidStateFormat    = errors.New("invalid state format")
	ErrInvalidStateSignature = errors.New("invalid state signature")
	ErrInvalidStatePayload   = errors.New("invalid state payload")
	ErrMissingStateSecret    = errors.New("oauth state secret is not configured")
)

// statePayload is the signed body of an OAuth state
type statePayload struct {
	TenantID string `json:"tenant_id"`
}

// OAuthStateSigner binds an OAuth connect flow to the tenant that started it.
// A state is base64url(body "." hmac_sha256(secret, body)) without padding.
type OAuthStateSigner struct {
	secret []byte
}

// NewOAuthStateSigner creates a signer keyed with secret
func NewOAuthStateSigner(secret string) *OAuthStateSigner {
	return &OAuthStateSigner{secret: []byte(secret)}
}

// Encode signs a state for tenantID
func (s *OAuthStateSigner) Encode(tenantID uuid.UUID) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingStateSecret
	}
	body, err := json.Marshal(statePayload{TenantID: tenantID.String()})
	if err != nil {
		return "", err
	}
	token := make([]byte, 0, len(body)+1+sha256.Size)
	token = append(token, body...)
	token = append(token, '.')
	token = append(token, s.sign(body)...)
	return base64.RawURLEncoding.EncodeToString(token), nil
}

// Decode verifies a state and returns the tenant it was issued for
func (s *OAuthStateSigner) Decode(state string) (uuid.UUID, error) {
	if state == "" {
		return uuid.Nil, ErrMissingState
	}
	if len(s.secret) == 0 {
		return uuid.Nil, ErrMissingStateSecret
	}
	data, err := base64.RawURLEncoding.DecodeString(trimPadding(state))
	if err != nil {
		return uuid.Nil, ErrInvalidStateFormat
	}
	// the MAC may itself contain '.', so the separator sits at a fixed offset from the end
	sep := len(data) - sha256.Size - 1
	if sep < 0 || data[sep] != '.' {
		return uuid.Nil, ErrInvalidStateFormat
	}
	body, sig := data[:sep], data[sep+1:]
	if !hmac.Equal(s.sign(body), sig) {
		return uuid.Nil, ErrInvalidStateSignature
	}

	var payload statePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return uuid.Nil, ErrInvalidStatePayload
	}
	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return uuid.Nil, ErrInvalidStatePayload
	}
	return tenantID, nil
}

func (s *OAuthStateSigner) sign(body []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return mac.Sum(nil)
}

// trimPadding accepts states that were re-padded by a client
func trimPadding(state string) string {
	for len(state) > 0 && state[len(state)-1] == '=' {
		state = state[:len(state)-1]
	}
	return state
}
