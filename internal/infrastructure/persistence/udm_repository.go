package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/leadlane/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements udm.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company within a tenant
func (r *GormCompanyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*udm.Company, error) {
	var model models.CompanyModel
	if err := findTenantScoped(ctx, r.db, &model, tenantID, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *udm.Company) error {
	var model models.CompanyModel
	model.FromDomain(company)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormContactRepository implements udm.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact within a tenant
func (r *GormContactRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*udm.Contact, error) {
	var model models.ContactModel
	if err := findTenantScoped(ctx, r.db, &model, tenantID, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *udm.Contact) error {
	var model models.ContactModel
	model.FromDomain(contact)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormOpportunityRepository implements udm.OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db *gorm.DB
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

// FindByID finds an opportunity within a tenant
func (r *GormOpportunityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*udm.Opportunity, error) {
	var model models.OpportunityModel
	if err := findTenantScoped(ctx, r.db, &model, tenantID, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts or updates an opportunity
func (r *GormOpportunityRepository) Save(ctx context.Context, opportunity *udm.Opportunity) error {
	var model models.OpportunityModel
	model.FromDomain(opportunity)
	return r.db.WithContext(ctx).Save(&model).Error
}

func findTenantScoped(ctx context.Context, db *gorm.DB, dest any, tenantID, id uuid.UUID) error {
	err := db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return udm.ErrNotFound
	}
	return err
}

var (
	_ udm.CompanyRepository     = (*GormCompanyRepository)(nil)
	_ udm.ContactRepository     = (*GormContactRepository)(nil)
	_ udm.OpportunityRepository = (*GormOpportunityRepository)(nil)
)
