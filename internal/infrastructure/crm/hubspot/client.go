package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"go.uber.org/zap"
)

// HubSpot object endpoints
const (
	companiesPath = "/crm/v3/objects/companies"
	contactsPath  = "/crm/v3/objects/contacts"
	dealsPath     = "/crm/v3/objects/deals"
	notesPath     = "/crm/v3/objects/notes"
)

// dealProperties are requested when reading a deal back
const dealProperties = "dealname,amount,pipeline,dealstage"

// Client implements crm.Client against the HubSpot v3 API for one tenant connection
type Client struct {
	config     *Config
	httpClient *http.Client
	mapper     crm.PropertyMapper
	oauth      *OAuthClient
	logger     *zap.Logger

	mu   sync.RWMutex // Protects conn
	conn *crm.Connection
}

// ClientConfig contains the dependencies of Client
type ClientConfig struct {
	Config     *Config
	Connection *crm.Connection
	Mapper     crm.PropertyMapper
	// OAuth is optional; without it RefreshAuth fails
	OAuth *OAuthClient
	// HTTPClient is optional; the default honours Config.Timeout
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a HubSpot client bound to a tenant connection
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Connection == nil || cfg.Connection.AccessToken == "" {
		return nil, fmt.Errorf("%w: hubspot connection has no access token", crm.ErrClientNotConfig)
	}
	if cfg.Mapper == nil {
		return nil, fmt.Errorf("%w: hubspot client needs a property mapper", crm.ErrClientNotConfig)
	}
	config := &Config{}
	if cfg.Config != nil {
		*config = *cfg.Config
	}
	config.applyDefaults()

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		mapper:     cfg.Mapper,
		oauth:      cfg.OAuth,
		logger:     logger,
		conn:       cfg.Connection.Clone(),
	}, nil
}

var _ crm.Client = (*Client)(nil)

// System implements crm.Client
func (c *Client) System() crm.System {
	return crm.SystemHubSpot
}

func (c *Client) connection() *crm.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

// CheckAuth performs a minimal authenticated read. Rejected credentials yield
// (false, nil); any other failure is returned as an error.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, companiesPath, url.Values{"limit": {"1"}}, nil)
	if err != nil {
		return false, err
	}
	switch {
	case resp.status < 300:
		return true, nil
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("%w: auth check returned HTTP %d", crm.ErrVendorResponse, resp.status)
	}
}

// RefreshAuth exchanges the refresh token and switches this client to the new
// access token. Persisting the new token is up to the caller.
func (c *Client) RefreshAuth(ctx context.Context) (bool, error) {
	if c.oauth == nil {
		return false, fmt.Errorf("%w: hubspot oauth client", crm.ErrClientNotConfig)
	}
	refreshed, err := c.oauth.Refresh(ctx, c.connection())
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	c.conn = refreshed
	c.mu.Unlock()
	return true, nil
}

// UpsertCompany creates a company, or updates it when existingCRMID is set
func (c *Client) UpsertCompany(ctx context.Context, payload *crm.CompanyPayload, existingCRMID string) (*crm.SyncResult, error) {
	return c.upsert(ctx, crm.ObjectTypeCompany, companiesPath, payload.InternalID(), payload.Company, payload.Properties, existingCRMID, nil)
}

// UpsertContact creates or updates a contact. New contacts are associated with
// their company when its CRM id is known.
func (c *Client) UpsertContact(ctx context.Context, payload *crm.ContactPayload, existingCRMID string) (*crm.SyncResult, error) {
	var assoc []association
	if payload.CompanyCRMID != "" {
		assoc = []association{{
			To:    associationTarget{ID: payload.CompanyCRMID},
			Types: []associationType{{Category: "HUBSPOT_DEFINED", TypeID: contactToCompanyAssociation}},
		}}
	}
	return c.upsert(ctx, crm.ObjectTypeContact, contactsPath, payload.InternalID(), payload.Contact, payload.Properties, existingCRMID, assoc)
}

// UpsertDeal creates or updates a deal
func (c *Client) UpsertDeal(ctx context.Context, payload *crm.DealPayload, existingCRMID string) (*crm.SyncResult, error) {
	return c.upsert(ctx, crm.ObjectTypeOpportunity, dealsPath, payload.InternalID(), payload.Opportunity, payload.Properties, existingCRMID, nil)
}

// GetDeal reads a deal's core properties. A missing deal yields (nil, nil).
func (c *Client) GetDeal(ctx context.Context, crmID string) (*crm.DealPayload, error) {
	resp, err := c.do(ctx, http.MethodGet, dealsPath+"/"+url.PathEscape(crmID), url.Values{"properties": {dealProperties}}, nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return nil, nil
	}
	if resp.status >= 300 {
		return nil, fmt.Errorf("%w: get deal %s returned HTTP %d", crm.ErrVendorResponse, crmID, resp.status)
	}
	var obj objectResponse
	if err := json.Unmarshal(resp.body, &obj); err != nil {
		return nil, fmt.Errorf("%w: decode deal: %w", crm.ErrVendorResponse, err)
	}
	id := string(obj.ID)
	if id == "" {
		id = crmID
	}
	return &crm.DealPayload{CRMID: id, Properties: obj.Properties}, nil
}

// CreateActivity logs the activity as a note. Activities are never updated.
func (c *Client) CreateActivity(ctx context.Context, payload *crm.ActivityPayload) (*crm.SyncResult, error) {
	internalID := payload.InternalID()
	if payload.Activity == nil {
		return crm.NewSyncFailure(crm.SystemHubSpot, crm.ObjectTypeActivity, internalID, crm.CodeMissingInternalID,
			"activity payload is empty", nil), nil
	}
	props, err := c.mapper.MapToCRM(ctx, c.connection().TenantID, crm.SystemHubSpot, payload.Activity, payload.Properties)
	if err != nil {
		return mappingFailure(crm.ObjectTypeActivity, internalID, err), nil
	}
	if _, ok := props["hs_timestamp"]; !ok {
		ts := time.Now().UTC()
		if payload.Activity.Timestamp != nil {
			ts = payload.Activity.Timestamp.UTC()
		}
		props["hs_timestamp"] = strconv.FormatInt(ts.UnixMilli(), 10)
	}
	if _, ok := props["hs_note_body"]; !ok && payload.Activity.Subject != nil {
		props["hs_note_body"] = *payload.Activity.Subject
	}
	return c.send(ctx, crm.ObjectTypeActivity, http.MethodPost, notesPath, internalID, "", objectRequest{Properties: props})
}

func (c *Client) upsert(
	ctx context.Context,
	objectType crm.ObjectType,
	path string,
	internalID uuid.UUID,
	record udm.Record,
	extra map[string]any,
	existingCRMID string,
	assoc []association,
) (*crm.SyncResult, error) {
	if internalID == uuid.Nil {
		return crm.NewSyncFailure(crm.SystemHubSpot, objectType, internalID, crm.CodeMissingInternalID,
			"payload is missing the internal id", nil), nil
	}
	props, err := c.mapper.MapToCRM(ctx, c.connection().TenantID, crm.SystemHubSpot, record, extra)
	if err != nil {
		return mappingFailure(objectType, internalID, err), nil
	}

	if existingCRMID != "" {
		return c.send(ctx, objectType, http.MethodPatch, path+"/"+url.PathEscape(existingCRMID), internalID, existingCRMID,
			objectRequest{Properties: props})
	}
	return c.send(ctx, objectType, http.MethodPost, path, internalID, "", objectRequest{Properties: props, Associations: assoc})
}

// send performs a write and converts the response into a SyncResult
func (c *Client) send(
	ctx context.Context,
	objectType crm.ObjectType,
	method, path string,
	internalID uuid.UUID,
	existingCRMID string,
	body objectRequest,
) (*crm.SyncResult, error) {
	resp, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	raw := decodeBody(resp.body)
	if resp.status >= 300 {
		c.logger.Warn("HubSpot request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.status))
		return statusFailure(objectType, internalID, resp.status, raw), nil
	}

	crmID := existingCRMID
	if crmID == "" {
		var obj objectResponse
		if err := json.Unmarshal(resp.body, &obj); err == nil {
			crmID = string(obj.ID)
		}
	}
	return crm.NewSyncSuccess(crm.SystemHubSpot, objectType, internalID, crmID, raw), nil
}

// apiResponse is a fully read HTTP response
type apiResponse struct {
	status int
	body   []byte
}

// do sends one request. Transport failures are returned as errors; HTTP error
// statuses are returned in the response for the caller to classify.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*apiResponse, error) {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("hubspot: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("hubspot: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.connection().AuthorizationHeader())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", crm.ErrVendorRequest, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("hubspot: failed to read response: %w", err)
	}
	return &apiResponse{status: resp.StatusCode, body: data}, nil
}

// decodeBody returns the parsed JSON body, or the raw text when it is not JSON
func decodeBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}
	return parsed
}

func statusFailure(objectType crm.ObjectType, internalID uuid.UUID, status int, body any) *crm.SyncResult {
	code := crm.VendorErrorCode(crm.SystemHubSpot, status)
	res := crm.NewSyncFailure(crm.SystemHubSpot, objectType, internalID, code,
		failureMessage(objectType, status),
		map[string]any{"status_code": status, "body": body})
	res.RawResponse = body
	return res
}

func failureMessage(objectType crm.ObjectType, status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Sprintf("HubSpot %s request failed due to invalid or missing credentials", objectType)
	case status == http.StatusNotFound:
		return fmt.Sprintf("HubSpot %s not found", objectType)
	case status == http.StatusTooManyRequests:
		return fmt.Sprintf("HubSpot rate limit exceeded for %s", objectType)
	case status >= 400 && status < 500:
		return fmt.Sprintf("HubSpot rejected the %s payload", objectType)
	default:
		return fmt.Sprintf("HubSpot %s request failed with server error", objectType)
	}
}

func mappingFailure(objectType crm.ObjectType, internalID uuid.UUID, err error) *crm.SyncResult {
	return crm.NewSyncFailure(crm.SystemHubSpot, objectType, internalID, crm.CodeMappingError,
		"failed to build hubspot properties", map[string]any{"exception": err.Error()})
}
