package crmsync

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/leadlane/backend/internal/domain/udm"
)

// Error codes returned by the resync service
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnknownLinkKind = "INVALID_INPUT"
)

// ResyncService backs the manual resync and link listing endpoints
type ResyncService struct {
	companies udm.CompanyRepository
	listener  *SyncListener
	links     map[crm.LinkKind]crm.LinkRepository
}

// NewResyncService creates a new ResyncService. Link repositories are keyed by their Kind.
func NewResyncService(companies udm.CompanyRepository, listener *SyncListener, links ...crm.LinkRepository) *ResyncService {
	byKind := make(map[crm.LinkKind]crm.LinkRepository, len(links))
	for _, repo := range links {
		byKind[repo.Kind()] = repo
	}
	return &ResyncService{companies: companies, listener: listener, links: byKind}
}

// ResyncCompany pushes the stored company to every connected system
func (s *ResyncService) ResyncCompany(ctx context.Context, tenantID, companyID uuid.UUID) (map[crm.System]*crm.SyncResult, error) {
	company, err := s.companies.FindByID(ctx, tenantID, companyID)
	if err != nil {
		if errors.Is(err, udm.ErrNotFound) {
			return nil, shared.WrapDomainError(CodeNotFound, "Company not found", err)
		}
		return nil, err
	}
	return s.listener.OnCompanyChanged(ctx, tenantID, BuildCompanyPayload(company, nil))
}

// ListLinks pages through one link table for the tenant and system
func (s *ResyncService) ListLinks(ctx context.Context, tenantID uuid.UUID, kind crm.LinkKind, system crm.System, limit, offset int) ([]LinkResponse, error) {
	repo, ok := s.links[kind]
	if !ok {
		return nil, shared.WrapDomainError(CodeUnknownLinkKind, "Unknown link kind", crm.ErrUnknownLinkKind)
	}
	links, err := repo.ListForTenantAndSystem(ctx, tenantID, system, limit, offset)
	if err != nil {
		return nil, err
	}
	return ToLinkResponses(links), nil
}
