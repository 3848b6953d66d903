package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMapper copies every non-null field under its internal name and merges extra
type stubMapper struct {
	err error
}

func (m stubMapper) MapToCRM(_ context.Context, _ uuid.UUID, _ crm.System, record udm.Record, extra map[string]any) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	props := map[string]any{}
	for _, name := range record.FieldNames() {
		if v, ok := record.GetField(name); ok && v != nil {
			props[name] = v
		}
	}
	for k, v := range extra {
		props[k] = v
	}
	return props, nil
}

type recordedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   map[string]any
}

// newTestServer answers every request with status and body and records what it received
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, header: r.Header.Clone()}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.body))
		}
		requests = append(requests, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestClient(t *testing.T, baseURL string, mapper crm.PropertyMapper) *Client {
	t.Helper()
	if mapper == nil {
		mapper = stubMapper{}
	}
	client, err := NewClient(ClientConfig{
		Config:     &Config{BaseURL: baseURL, Timeout: 2 * time.Second},
		Connection: &crm.Connection{TenantID: uuid.New(), System: crm.SystemHubSpot, AccessToken: "tok-123", IsEnabled: true},
		Mapper:     mapper,
	})
	require.NoError(t, err)
	return client
}

func companyPayload() *crm.CompanyPayload {
	company := udm.NewCompany(uuid.New(), "Acme")
	company.City = udm.StringPtr("Berlin")
	return &crm.CompanyPayload{Company: company, Properties: map[string]any{"lifecyclestage": "lead"}}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(ClientConfig{Mapper: stubMapper{}})
	assert.ErrorIs(t, err, crm.ErrClientNotConfig)

	_, err = NewClient(ClientConfig{Connection: &crm.Connection{AccessToken: "x"}})
	assert.ErrorIs(t, err, crm.ErrClientNotConfig)
}

func TestClient_UpsertCompany_Create(t *testing.T) {
	server, requests := newTestServer(t, http.StatusCreated, `{"id":"9001","properties":{"name":"Acme"}}`)
	client := newTestClient(t, server.URL, nil)
	payload := companyPayload()

	res, err := client.UpsertCompany(context.Background(), payload, "")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "9001", res.CRMID)
	assert.Equal(t, payload.Company.ID.String(), res.InternalID)
	assert.Equal(t, crm.ObjectTypeCompany, res.ObjectType)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/crm/v3/objects/companies", req.path)
	assert.Equal(t, "Bearer tok-123", req.header.Get("Authorization"))
	assert.Equal(t, "application/json", req.header.Get("Accept"))
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	assert.Equal(t, UserAgent, req.header.Get("User-Agent"))

	props := req.body["properties"].(map[string]any)
	assert.Equal(t, "Acme", props["company_name"])
	assert.Equal(t, "Berlin", props["city"])
	assert.Equal(t, "lead", props["lifecyclestage"])
	assert.NotContains(t, req.body, "associations")
}

func TestClient_UpsertCompany_UpdateKeepsExistingID(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"id":"777"}`)
	client := newTestClient(t, server.URL, nil)

	res, err := client.UpsertCompany(context.Background(), companyPayload(), "777")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "777", res.CRMID)
	assert.Equal(t, http.MethodPatch, (*requests)[0].method)
	assert.Equal(t, "/crm/v3/objects/companies/777", (*requests)[0].path)
}

func TestClient_StatusTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, "hubspot_auth_error"},
		{http.StatusForbidden, "hubspot_auth_error"},
		{http.StatusNotFound, "hubspot_not_found"},
		{http.StatusTooManyRequests, "hubspot_rate_limited"},
		{http.StatusBadRequest, "hubspot_validation_error"},
		{http.StatusConflict, "hubspot_validation_error"},
		{http.StatusInternalServerError, "hubspot_server_error"},
		{http.StatusBadGateway, "hubspot_server_error"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, `{"message":"nope"}`)
			client := newTestClient(t, server.URL, nil)

			res, err := client.UpsertDeal(context.Background(),
				&crm.DealPayload{Opportunity: udm.NewOpportunity(uuid.New(), "Deal")}, "")
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, tt.code, res.FirstErrorCode())
			details := res.Errors[0].Details
			assert.Equal(t, tt.status, details["status_code"])
			assert.Equal(t, map[string]any{"message": "nope"}, details["body"])
		})
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadGateway, `upstream down`)
	client := newTestClient(t, server.URL, nil)

	res, err := client.UpsertCompany(context.Background(), companyPayload(), "")
	require.NoError(t, err)
	assert.Equal(t, "upstream down", res.Errors[0].Details["body"])
}

func TestClient_TransportErrorIsReturned(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL, nil)
	server.Close()

	res, err := client.UpsertCompany(context.Background(), companyPayload(), "")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, crm.ErrVendorRequest)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{
		Config:     &Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond},
		Connection: &crm.Connection{AccessToken: "t"},
		Mapper:     stubMapper{},
	})
	require.NoError(t, err)

	_, err = client.UpsertCompany(context.Background(), companyPayload(), "")
	assert.ErrorIs(t, err, crm.ErrVendorRequest)
}

func TestClient_MappingFailure(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL, stubMapper{err: errors.New("db down")})

	res, err := client.UpsertCompany(context.Background(), companyPayload(), "")
	require.NoError(t, err)
	assert.Equal(t, crm.CodeMappingError, res.FirstErrorCode())
	assert.Empty(t, *requests)
}

func TestClient_UpsertContact_AssociatesCompany(t *testing.T) {
	server, requests := newTestServer(t, http.StatusCreated, `{"id":12}`)
	client := newTestClient(t, server.URL, nil)

	res, err := client.UpsertContact(context.Background(), &crm.ContactPayload{
		Contact:      udm.NewContact(uuid.New(), "Doe"),
		CompanyCRMID: "9001",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "12", res.CRMID)

	req := (*requests)[0]
	assert.Equal(t, "/crm/v3/objects/contacts", req.path)
	assoc := req.body["associations"].([]any)
	require.Len(t, assoc, 1)
	first := assoc[0].(map[string]any)
	assert.Equal(t, "9001", first["to"].(map[string]any)["id"])
}

func TestClient_GetDeal(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		server, requests := newTestServer(t, http.StatusOK,
			`{"id":"55","properties":{"dealname":"Big","amount":"100","dealstage":"won"}}`)
		client := newTestClient(t, server.URL, nil)

		deal, err := client.GetDeal(context.Background(), "55")
		require.NoError(t, err)
		require.NotNil(t, deal)
		assert.Equal(t, "55", deal.CRMID)
		assert.Equal(t, "Big", deal.Properties["dealname"])
		assert.Nil(t, deal.Opportunity)

		req := (*requests)[0]
		assert.Equal(t, http.MethodGet, req.method)
		assert.Equal(t, "/crm/v3/objects/deals/55", req.path)
		assert.Equal(t, "properties=dealname%2Camount%2Cpipeline%2Cdealstage", req.query)
	})

	t.Run("missing", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusNotFound, `{}`)
		deal, err := newTestClient(t, server.URL, nil).GetDeal(context.Background(), "55")
		assert.NoError(t, err)
		assert.Nil(t, deal)
	})

	t.Run("server error", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusInternalServerError, `{}`)
		_, err := newTestClient(t, server.URL, nil).GetDeal(context.Background(), "55")
		assert.ErrorIs(t, err, crm.ErrVendorResponse)
	})
}

func TestClient_CreateActivity(t *testing.T) {
	server, requests := newTestServer(t, http.StatusCreated, `{"id":"n-1"}`)
	client := newTestClient(t, server.URL, nil)

	activity := udm.NewActivity(uuid.New(), udm.ActivityTypeCall)
	ts := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	activity.Timestamp = &ts
	activity.Subject = udm.StringPtr("Intro call")

	res, err := client.CreateActivity(context.Background(), &crm.ActivityPayload{Activity: activity})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "n-1", res.CRMID)

	req := (*requests)[0]
	assert.Equal(t, "/crm/v3/objects/notes", req.path)
	props := req.body["properties"].(map[string]any)
	assert.Equal(t, "1777896000000", props["hs_timestamp"])
	assert.Equal(t, "Intro call", props["hs_note_body"])
}

func TestClient_CheckAuth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server, requests := newTestServer(t, http.StatusOK, `{"results":[]}`)
		ok, err := newTestClient(t, server.URL, nil).CheckAuth(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/crm/v3/objects/companies", (*requests)[0].path)
		assert.Equal(t, "limit=1", (*requests)[0].query)
	})

	t.Run("unauthorized", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusUnauthorized, `{}`)
		ok, err := newTestClient(t, server.URL, nil).CheckAuth(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server error", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusServiceUnavailable, `{}`)
		ok, err := newTestClient(t, server.URL, nil).CheckAuth(context.Background())
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestClient_RefreshAuthWithoutOAuth(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{}`)
	ok, err := newTestClient(t, server.URL, nil).RefreshAuth(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, crm.ErrClientNotConfig)
}

func TestUpsertCompanies_DefaultsToOneAtATime(t *testing.T) {
	server, requests := newTestServer(t, http.StatusCreated, `{"id":"1"}`)
	client := newTestClient(t, server.URL, nil)

	results, err := crm.UpsertCompanies(context.Background(), client, []*crm.CompanyPayload{companyPayload(), companyPayload()})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, *requests, 2)
	for _, r := range results {
		assert.True(t, r.Success)
	}
}
