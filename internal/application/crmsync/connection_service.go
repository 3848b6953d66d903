package crmsync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Error codes returned by the connection service
const (
	CodeNotConnected      = "NOT_CONNECTED"
	CodeInvalidOAuthState = "INVALID_OAUTH_STATE"
	CodeUpstream          = "UPSTREAM_ERROR"
	CodeUnknownSystem     = "UNKNOWN_CRM_SYSTEM"
	CodeOAuthNotConfig    = "INTERNAL_ERROR"
)

// OAuthAuthorizer runs a vendor authorization code flow
type OAuthAuthorizer interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*crm.Token, error)
}

// StateCodec signs and verifies the OAuth state parameter
type StateCodec interface {
	Encode(tenantID uuid.UUID) (string, error)
	Decode(state string) (uuid.UUID, error)
}

// ConnectionService backs the connect, status and admin credential endpoints
type ConnectionService struct {
	store  *CredentialsStore
	oauth  OAuthAuthorizer
	states StateCodec
	logger *zap.Logger
	now    func() time.Time
}

// ConnectionServiceConfig contains configuration for ConnectionService
type ConnectionServiceConfig struct {
	Store *CredentialsStore
	// HubSpotOAuth is nil when the HubSpot app credentials are not configured
	HubSpotOAuth OAuthAuthorizer
	States       StateCodec
	Logger       *zap.Logger
	Now          func() time.Time
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(cfg ConnectionServiceConfig) *ConnectionService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ConnectionService{
		store:  cfg.Store,
		oauth:  cfg.HubSpotOAuth,
		states: cfg.States,
		logger: logger,
		now:    now,
	}
}

// InitiateHubSpot returns the consent URL carrying a signed state for the tenant
func (s *ConnectionService) InitiateHubSpot(ctx context.Context, tenantID uuid.UUID) (string, error) {
	if s.oauth == nil || s.states == nil {
		return "", shared.WrapDomainError(CodeOAuthNotConfig, "HubSpot OAuth is not configured", crm.ErrClientNotConfig)
	}
	state, err := s.states.Encode(tenantID)
	if err != nil {
		return "", shared.WrapDomainError(CodeOAuthNotConfig, "Failed to sign OAuth state", err)
	}
	return s.oauth.AuthorizationURL(state), nil
}

// CompleteHubSpot verifies the state, exchanges the code and stores an
// enabled connection for the tenant
func (s *ConnectionService) CompleteHubSpot(ctx context.Context, tenantID uuid.UUID, code, state, actor string) error {
	if s.oauth == nil || s.states == nil {
		return shared.WrapDomainError(CodeOAuthNotConfig, "HubSpot OAuth is not configured", crm.ErrClientNotConfig)
	}
	stateTenant, err := s.states.Decode(state)
	if err != nil {
		return shared.WrapDomainError(CodeInvalidOAuthState, "Invalid OAuth state", err)
	}
	if stateTenant != tenantID {
		return shared.NewDomainError(CodeInvalidOAuthState, "OAuth state was issued for another tenant")
	}

	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Warn("HubSpot code exchange failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return shared.WrapDomainError(CodeUpstream, "HubSpot token exchange failed", err)
	}

	if actor == "" {
		actor = crm.SystemActor
	}
	conn := token.ToConnection(tenantID, crm.SystemHubSpot, actor, s.now())
	if err := s.store.Upsert(ctx, conn); err != nil {
		return err
	}
	s.logger.Info("HubSpot connected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("actor", actor))
	return nil
}

// Status returns the stored connection without secrets
func (s *ConnectionService) Status(ctx context.Context, tenantID uuid.UUID, system crm.System) (*ConnectionResponse, error) {
	conn, err := s.store.Get(ctx, tenantID, system)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, shared.WrapDomainError(CodeNotConnected, "CRM connection not found", crm.ErrNotConnected)
	}
	resp := ToConnectionResponse(conn)
	return &resp, nil
}

// Disconnect disables the connection; the row is kept for audit
func (s *ConnectionService) Disconnect(ctx context.Context, tenantID uuid.UUID, system crm.System) error {
	return s.store.Disable(ctx, tenantID, system)
}

// ListConnected returns the tenant's enabled systems
func (s *ConnectionService) ListConnected(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error) {
	return s.store.ListConnectedSystems(ctx, tenantID)
}

// AdminUpsert stores credentials supplied by an operator
func (s *ConnectionService) AdminUpsert(ctx context.Context, tenantID uuid.UUID, req UpsertCredentialsRequest) error {
	system, err := crm.ParseSystem(req.CRMSystem)
	if err != nil {
		return shared.WrapDomainError(CodeUnknownSystem, "Unknown CRM system", err)
	}
	conn := req.ToConnection(tenantID, system)
	if err := s.store.Upsert(ctx, conn); err != nil {
		if errors.Is(err, crm.ErrUnknownSystem) {
			return shared.WrapDomainError(CodeUnknownSystem, "Unknown CRM system", err)
		}
		return err
	}
	s.logger.Info("CRM credentials set by admin",
		zap.String("tenant_id", tenantID.String()),
		zap.String("crm_system", string(system)),
		zap.String("actor", conn.ModifiedBy))
	return nil
}
