package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Insurer represents an insurance company whose members buy at the pharmacy
type Insurer struct {
	shared.TenantEntity
	Code                string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_insurer_tenant_code,priority:2"`
	Name                string          `gorm:"type:varchar(200);not null"`
	ContactName         string          `gorm:"type:varchar(100)"`
	Phone               string          `gorm:"type:varchar(50)"`
	Email               string          `gorm:"type:varchar(200)"`
	DefaultCoverageRate decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	Active              bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Insurer) TableName() string {
	return "insurers"
}

// NewInsurer creates a new insurer with required fields
func NewInsurer(tenantID uuid.UUID, code, name string) (*Insurer, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INSURER_CODE", "Insurer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INSURER_NAME", "Insurer name cannot be empty")
	}

	return &Insurer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Code:         code,
		Name:         name,
		Active:       true,
	}, nil
}
