package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/partner"
	"github.com/pharma/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByCode finds a customer by its code within a tenant
func (r *GormCustomerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAllForTenant finds all customers for a tenant with pagination
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	if err := applyFilter(r.db.WithContext(ctx).Where("tenant_id = ?", tenantID), filter).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// GormInsurerRepository implements InsurerRepository using GORM
type GormInsurerRepository struct {
	db *gorm.DB
}

// NewGormInsurerRepository creates a new GormInsurerRepository
func NewGormInsurerRepository(db *gorm.DB) *GormInsurerRepository {
	return &GormInsurerRepository{db: db}
}

// FindByIDForTenant finds an insurer by ID within a tenant
func (r *GormInsurerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Insurer, error) {
	var insurer partner.Insurer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&insurer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &insurer, nil
}

// FindAllForTenant finds all insurers for a tenant with pagination
func (r *GormInsurerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Insurer, error) {
	var insurers []partner.Insurer
	if err := applyFilter(r.db.WithContext(ctx).Where("tenant_id = ?", tenantID), filter).
		Find(&insurers).Error; err != nil {
		return nil, err
	}
	return insurers, nil
}

// Save creates or updates an insurer
func (r *GormInsurerRepository) Save(ctx context.Context, insurer *partner.Insurer) error {
	return r.db.WithContext(ctx).Save(insurer).Error
}
