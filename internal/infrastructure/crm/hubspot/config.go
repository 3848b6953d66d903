package hubspot

import (
	"errors"
	"strings"
	"time"
)

const (
	// ProductionAPIURL is the HubSpot API endpoint
	ProductionAPIURL = "https://api.hubapi.com"
	// AuthorizeURL is the HubSpot OAuth consent page
	AuthorizeURL = "https://app.hubspot.com/oauth/authorize"
	// TokenURL is the HubSpot OAuth token endpoint
	TokenURL = "https://api.hubapi.com/oauth/v1/token"
	// DefaultScopes are requested when none are configured
	DefaultScopes = "crm.objects.contacts.read crm.objects.contacts.write"
	// UserAgent identifies LeadLane to HubSpot
	UserAgent = "LeadLane-CRM-Integration/1.0"
	// DefaultTimeout bounds every HubSpot call
	DefaultTimeout = 10 * time.Second

	// maxResponseSize limits the response body size read from HubSpot
	maxResponseSize = 4 * 1024 * 1024
)

// Errors for HubSpot configuration and OAuth
var (
	ErrConfigMissingClientID     = errors.New("hubspot: client id is required")
	ErrConfigMissingClientSecret = errors.New("hubspot: client secret is required")
	ErrConfigMissingRedirectURI  = errors.New("hubspot: redirect uri is required")
	ErrTokenRequest              = errors.New("hubspot: oauth token request failed")
)

// Config holds HubSpot API and OAuth settings shared by every tenant
type Config struct {
	// BaseURL is the API base URL
	BaseURL string
	// AuthorizeURL is the OAuth consent page URL
	AuthorizeURL string
	// TokenURL is the OAuth token endpoint
	TokenURL string
	// ClientID and ClientSecret identify the LeadLane app
	ClientID     string
	ClientSecret string
	// RedirectURI receives the authorization code
	RedirectURI string
	// Scopes is a space separated scope list
	Scopes string
	// Timeout is the per-call HTTP timeout
	Timeout time.Duration
}

// NewConfig creates a configuration with production endpoints
func NewConfig(clientID, clientSecret, redirectURI string) *Config {
	return &Config{
		BaseURL:      ProductionAPIURL,
		AuthorizeURL: AuthorizeURL,
		TokenURL:     TokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Scopes:       DefaultScopes,
		Timeout:      DefaultTimeout,
	}
}

// applyDefaults fills empty fields with production values
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = ProductionAPIURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.AuthorizeURL == "" {
		c.AuthorizeURL = AuthorizeURL
	}
	if c.TokenURL == "" {
		c.TokenURL = TokenURL
	}
	if c.Scopes == "" {
		c.Scopes = DefaultScopes
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// ValidateOAuth checks the settings required by the OAuth flows
func (c *Config) ValidateOAuth() error {
	if c.ClientID == "" {
		return ErrConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrConfigMissingClientSecret
	}
	if c.RedirectURI == "" {
		return ErrConfigMissingRedirectURI
	}
	return nil
}
