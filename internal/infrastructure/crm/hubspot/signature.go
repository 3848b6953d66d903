package hubspot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leadlane/backend/internal/domain/crm"
)

// Webhook signature headers
const (
	HeaderSignatureVersion = "X-HubSpot-Signature-Version"
	HeaderSignature        = "X-HubSpot-Signature"
	HeaderSignatureV3      = "X-HubSpot-Signature-v3"
	HeaderRequestTimestamp = "X-HubSpot-Request-Timestamp"
)

// DefaultSignatureTolerance is the maximum age of a v3 signed request
const DefaultSignatureTolerance = 5 * time.Minute

// SignatureVerifier validates HubSpot webhook signatures (v1, v2 and v3)
type SignatureVerifier struct {
	secret        string
	publicBaseURL string
	tolerance     time.Duration
	now           func() time.Time
}

// NewSignatureVerifier creates a verifier. publicBaseURL is prefixed to the
// request URI for v2/v3 since HubSpot signs the full URL it called.
func NewSignatureVerifier(secret, publicBaseURL string, tolerance time.Duration) *SignatureVerifier {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	return &SignatureVerifier{
		secret:        secret,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		tolerance:     tolerance,
		now:           time.Now,
	}
}

// RequestURI renders path plus the raw query as seen by HubSpot
func (v *SignatureVerifier) RequestURI(path, rawQuery string) string {
	uri := path
	if rawQuery != "" {
		uri += "?" + rawQuery
	}
	return v.publicBaseURL + uri
}

// Verify checks the signature of one delivery.
// It returns crm.ErrMissingSecret when no secret is configured,
// crm.ErrStaleSignature for v3 timestamps outside the tolerance and
// crm.ErrInvalidSignature for any other mismatch.
func (v *SignatureVerifier) Verify(method, requestURI string, header http.Header, body []byte) error {
	if v.secret == "" {
		return crm.ErrMissingSecret
	}
	method = strings.ToUpper(method)

	switch strings.ToLower(strings.TrimSpace(header.Get(HeaderSignatureVersion))) {
	case "v3":
		return v.verifyV3(method, requestURI, header, body)
	case "v2":
		expected := sha256Hex(v.secret + method + requestURI + string(body))
		return compare(expected, header.Get(HeaderSignature), "v2")
	default:
		expected := sha256Hex(v.secret + string(body))
		return compare(expected, header.Get(HeaderSignature), "v1")
	}
}

func (v *SignatureVerifier) verifyV3(method, requestURI string, header http.Header, body []byte) error {
	signature := header.Get(HeaderSignatureV3)
	if signature == "" {
		return fmt.Errorf("%w: missing v3 signature header", crm.ErrInvalidSignature)
	}
	rawTS := strings.TrimSpace(header.Get(HeaderRequestTimestamp))
	if rawTS == "" {
		return fmt.Errorf("%w: missing timestamp header", crm.ErrInvalidSignature)
	}
	tsMillis, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid timestamp header", crm.ErrInvalidSignature)
	}
	age := v.now().Sub(time.UnixMilli(tsMillis))
	if age < 0 {
		age = -age
	}
	if age > v.tolerance {
		return crm.ErrStaleSignature
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(method + requestURI + string(body) + rawTS))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return compare(expected, signature, "v3")
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func compare(expected, got, version string) error {
	if !hmac.Equal([]byte(expected), []byte(got)) {
		return fmt.Errorf("%w: %s signature mismatch", crm.ErrInvalidSignature, version)
	}
	return nil
}
