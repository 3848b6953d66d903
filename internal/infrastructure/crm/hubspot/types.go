package hubspot

import (
	"encoding/json"
	"strings"
)

// objectRequest is the body of a create or update call
type objectRequest struct {
	Properties   map[string]any `json:"properties"`
	Associations []association  `json:"associations,omitempty"`
}

type association struct {
	To    associationTarget `json:"to"`
	Types []associationType `json:"types"`
}

type associationTarget struct {
	ID string `json:"id"`
}

type associationType struct {
	Category string `json:"associationCategory"`
	TypeID   int    `json:"associationTypeId"`
}

// contactToCompanyAssociation is HubSpot's primary contact -> company association type
const contactToCompanyAssociation = 279

// objectResponse is the relevant part of a CRM object returned by HubSpot
type objectResponse struct {
	ID         objectID       `json:"id"`
	Properties map[string]any `json:"properties"`
}

// objectID accepts ids encoded as JSON strings or numbers
type objectID string

// UnmarshalJSON implements json.Unmarshaler
func (id *objectID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = objectID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = objectID(n.String())
	return nil
}

// tokenResponse is the OAuth token endpoint response
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}
