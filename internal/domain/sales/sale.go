package sales

import (
	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMode is how the customer settles their share of a sale
type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "CASH"
	PaymentModeDeposit PaymentMode = "DEPOSIT"
	PaymentModeVoucher PaymentMode = "VOUCHER"
)

// IsValid checks if the mode is a valid PaymentMode
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeDeposit, PaymentModeVoucher:
		return true
	}
	return false
}

// String returns the string representation of PaymentMode
func (m PaymentMode) String() string {
	return string(m)
}

// Sale is a finalized point-of-sale transaction. The amount columns mirror
// the PricingResult captured at the moment the sale was recorded.
type Sale struct {
	shared.TenantEntity
	SaleNumber             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_tenant_number,priority:2"`
	CustomerID             *uuid.UUID      `gorm:"type:uuid;index"`
	InsurerID              *uuid.UUID      `gorm:"type:uuid;index"`
	TotalExTax             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalTax               decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalSurcharge         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SubtotalTaxIncl        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CoverageRate           decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	InsurerShare           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CustomerShare          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TicketModerateurAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	FinalPayable           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMode            PaymentMode     `gorm:"type:varchar(20);not null"`
	Lines                  []SaleLine      `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is one product line of a recorded sale
type SaleLine struct {
	shared.BaseEntity
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceExTax  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_lines"
}

// NewSale builds a sale from a priced cart. The pricing result must have
// been computed from the same cart the caller passes in.
func NewSale(tenantID uuid.UUID, saleNumber string, customerID, insurerID *uuid.UUID, cart []CartLine, pricing PricingResult, mode PaymentMode) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(cart) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Sale requires at least one line")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Unknown payment mode: "+mode.String())
	}
	if mode == PaymentModeDeposit && !pricing.CanPayFromDeposit {
		return nil, shared.ErrInsufficientFunds
	}
	if mode == PaymentModeVoucher && !pricing.CanUseVoucher {
		return nil, shared.NewDomainError("VOUCHER_NOT_ELIGIBLE", "Customer is not eligible for voucher payment")
	}

	sale := &Sale{
		TenantEntity:           shared.NewTenantEntity(tenantID),
		SaleNumber:             saleNumber,
		CustomerID:             customerID,
		InsurerID:              insurerID,
		TotalExTax:             pricing.TotalExTax,
		TotalTax:               pricing.TotalTax,
		TotalSurcharge:         pricing.TotalSurcharge,
		SubtotalTaxIncl:        pricing.SubtotalTaxIncl,
		CoverageRate:           pricing.CoverageRate,
		InsurerShare:           pricing.InsurerShare,
		CustomerShare:          pricing.CustomerShare,
		TicketModerateurAmount: pricing.TicketModerateurAmount,
		DiscountAmount:         pricing.DiscountAmount,
		FinalPayable:           pricing.FinalPayable,
		PaymentMode:            mode,
	}

	for _, line := range cart {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
		}
		sale.Lines = append(sale.Lines, SaleLine{
			BaseEntity:  shared.NewBaseEntity(),
			SaleID:      sale.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceExTax:  line.PriceExTax,
			LineTotal:   line.LineTotal,
		})
	}

	return sale, nil
}
