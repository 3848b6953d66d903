package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leadlane/backend/internal/domain/crm"
)

// OAuthClient runs the HubSpot OAuth authorization code and refresh flows
type OAuthClient struct {
	config     *Config
	httpClient *http.Client
	now        func() time.Time
}

// NewOAuthClient creates an OAuth client. httpClient is optional.
func NewOAuthClient(config *Config, httpClient *http.Client) (*OAuthClient, error) {
	if config == nil {
		return nil, ErrConfigMissingClientID
	}
	cfg := *config
	cfg.applyDefaults()
	if err := cfg.ValidateOAuth(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &OAuthClient{
		config:     &cfg,
		httpClient: httpClient,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// AuthorizationURL builds the consent page URL carrying state
func (o *OAuthClient) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", o.config.ClientID)
	q.Set("redirect_uri", o.config.RedirectURI)
	q.Set("scope", o.config.Scopes)
	q.Set("response_type", "code")
	q.Set("state", state)

	sep := "?"
	if strings.Contains(o.config.AuthorizeURL, "?") {
		sep = "&"
	}
	return o.config.AuthorizeURL + sep + q.Encode()
}

// ExchangeCode trades an authorization code for tokens
func (o *OAuthClient) ExchangeCode(ctx context.Context, code string) (*crm.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", o.config.ClientID)
	form.Set("client_secret", o.config.ClientSecret)
	form.Set("redirect_uri", o.config.RedirectURI)
	form.Set("code", code)
	return o.requestToken(ctx, form)
}

// Refresh exchanges the connection's refresh token for a new access token.
// HubSpot may omit the refresh token in the response; the previous one is kept then.
func (o *OAuthClient) Refresh(ctx context.Context, conn *crm.Connection) (*crm.Connection, error) {
	if conn == nil || !conn.HasRefreshToken() {
		return nil, crm.ErrNoRefreshToken
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", o.config.ClientID)
	form.Set("client_secret", o.config.ClientSecret)
	form.Set("redirect_uri", o.config.RedirectURI)
	form.Set("refresh_token", *conn.RefreshToken)

	token, err := o.requestToken(ctx, form)
	if err != nil {
		return nil, err
	}

	out := conn.Clone()
	out.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		rt := token.RefreshToken
		out.RefreshToken = &rt
	}
	if token.ExpiresIn > 0 {
		exp := o.now().Add(token.ExpiresIn)
		out.ExpiresAt = &exp
	} else {
		out.ExpiresAt = nil
	}
	if token.TokenType != "" {
		out.TokenType = token.TokenType
	}
	if token.Scope != "" {
		scope := token.Scope
		out.Scope = &scope
	}
	out.Normalize()
	return out, nil
}

// RefreshFunc adapts Refresh to the credentials store
func (o *OAuthClient) RefreshFunc() crm.RefreshFunc {
	return o.Refresh
}

func (o *OAuthClient) requestToken(ctx context.Context, form url.Values) (*crm.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("hubspot: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTokenRequest, err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrTokenRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrTokenRequest, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: response has no access token", ErrTokenRequest)
	}
	return &crm.Token{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresIn:    time.Duration(tr.ExpiresIn) * time.Second,
		TokenType:    tr.TokenType,
		Scope:        tr.Scope,
	}, nil
}
