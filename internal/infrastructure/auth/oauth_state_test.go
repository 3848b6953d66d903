package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthStateSigner_RoundTrip(t *testing.T) {
	signer := NewOAuthStateSigner("client-secret")
	tenantID := uuid.New()

	state, err := signer.Encode(tenantID)
	require.NoError(t, err)
	assert.NotContains(t, state, "=")
	assert.NotContains(t, state, "+")
	assert.NotContains(t, state, "/")

	decoded, err := signer.Decode(state)
	require.NoError(t, err)
	assert.Equal(t, tenantID, decoded)
}

func TestOAuthStateSigner_WireFormat(t *testing.T) {
	tenantID := uuid.MustParse("0b7e4b5e-8a53-4c63-9a53-5d7c8f1a2b3c")
	state, err := NewOAuthStateSigner("client-secret").Encode(tenantID)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(state)
	require.NoError(t, err)

	body := `{"tenant_id":"0b7e4b5e-8a53-4c63-9a53-5d7c8f1a2b3c"}`
	mac := hmac.New(sha256.New, []byte("client-secret"))
	mac.Write([]byte(body))
	assert.Equal(t, append([]byte(body+"."), mac.Sum(nil)...), raw)
}

func TestOAuthStateSigner_AcceptsPaddedState(t *testing.T) {
	signer := NewOAuthStateSigner("client-secret")
	tenantID := uuid.New()
	state, err := signer.Encode(tenantID)
	require.NoError(t, err)

	padded := state + strings.Repeat("=", (4-len(state)%4)%4)
	decoded, err := signer.Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, tenantID, decoded)
}

func TestOAuthStateSigner_Errors(t *testing.T) {
	signer := NewOAuthStateSigner("client-secret")
	valid, err := signer.Encode(uuid.New())
	require.NoError(t, err)

	forge := func(body string, key string) string {
		mac := hmac.New(sha256.New, []byte(key))
		mac.Write([]byte(body))
		return base64.RawURLEncoding.EncodeToString(append([]byte(body+"."), mac.Sum(nil)...))
	}

	tests := []struct {
		name  string
		state string
		err   error
	}{
		{"empty", "", ErrMissingState},
		{"not base64", "!!!", ErrInvalidStateFormat},
		{"no separator", base64.RawURLEncoding.EncodeToString([]byte("nodot")), ErrInvalidStateFormat},
		{"other secret", forge(`{"tenant_id":"`+uuid.NewString()+`"}`, "other"), ErrInvalidStateSignature},
		{"tampered", valid[:len(valid)-2] + "AA", ErrInvalidStateSignature},
		{"not json", forge("plain", "client-secret"), ErrInvalidStatePayload},
		{"bad tenant", forge(`{"tenant_id":"acme"}`, "client-secret"), ErrInvalidStatePayload},
		{"no tenant", forge(`{}`, "client-secret"), ErrInvalidStatePayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Decode(tt.state)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestOAuthStateSigner_MissingSecret(t *testing.T) {
	signer := NewOAuthStateSigner("")

	_, err := signer.Encode(uuid.New())
	assert.ErrorIs(t, err, ErrMissingStateSecret)

	_, err = signer.Decode("abc")
	assert.ErrorIs(t, err, ErrMissingStateSecret)
}
