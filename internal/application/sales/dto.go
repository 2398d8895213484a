package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// CartLineRequest is one cart line as submitted by the point of sale.
// Amounts are per unit; LineTotal is the tax-inclusive total for the whole
// line and is derived from PriceTaxIncl when omitted.
type CartLineRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	ProductName     string    `json:"product_name"`
	Quantity        float64   `json:"quantity" binding:"required,gt=0"`
	PriceExTax      float64   `json:"price_ex_tax"`
	PriceTaxIncl    float64   `json:"price_tax_incl"`
	TaxAmount       float64   `json:"tax_amount"`
	TaxRate         float64   `json:"tax_rate"`
	SurchargeAmount float64   `json:"surcharge_amount"`
	SurchargeRate   float64   `json:"surcharge_rate"`
	LineTotal       float64   `json:"line_total"`
}

// ToCartLine converts the request line to the domain cart line
func (r CartLineRequest) ToCartLine() sales.CartLine {
	quantity := decimal.NewFromFloat(r.Quantity)
	lineTotal := decimal.NewFromFloat(r.LineTotal)
	if lineTotal.IsZero() {
		lineTotal = decimal.NewFromFloat(r.PriceTaxIncl).Mul(quantity)
	}
	return sales.CartLine{
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		Quantity:        quantity,
		PriceExTax:      decimal.NewFromFloat(r.PriceExTax),
		PriceTaxIncl:    decimal.NewFromFloat(r.PriceTaxIncl),
		TaxAmount:       decimal.NewFromFloat(r.TaxAmount),
		TaxRate:         decimal.NewFromFloat(r.TaxRate),
		SurchargeAmount: decimal.NewFromFloat(r.SurchargeAmount),
		SurchargeRate:   decimal.NewFromFloat(r.SurchargeRate),
		LineTotal:       lineTotal,
	}
}

// CoverageRequest carries inline coverage attributes for quotes that are not
// tied to a stored customer
type CoverageRequest struct {
	InsurerID            *uuid.UUID `json:"insurer_id"`
	CoverageRate         float64    `json:"coverage_rate" binding:"omitempty,gte=0,lte=100"`
	TicketModerateurRate float64    `json:"ticket_moderateur_rate" binding:"omitempty,gte=0,lte=100"`
	DiscountRate         float64    `json:"discount_rate" binding:"omitempty,gte=0,lte=100"`
	DepositBalance       float64    `json:"deposit_balance" binding:"omitempty,gte=0"`
	UseDeposit           bool       `json:"use_deposit"`
	VoucherEligible      bool       `json:"voucher_eligible"`
}

// ToCoverage converts the request coverage to the domain coverage
func (r CoverageRequest) ToCoverage() sales.CustomerCoverage {
	return sales.CustomerCoverage{
		InsurerID:            r.InsurerID,
		CoverageRate:         decimal.NewFromFloat(r.CoverageRate),
		TicketModerateurRate: decimal.NewFromFloat(r.TicketModerateurRate),
		DiscountRate:         decimal.NewFromFloat(r.DiscountRate),
		DepositBalance:       decimal.NewFromFloat(r.DepositBalance),
		UseDeposit:           r.UseDeposit,
		VoucherEligible:      r.VoucherEligible,
	}
}

// QuoteRequest asks for a pricing breakdown without recording anything.
// Coverage comes from the stored customer when CustomerID is set, from the
// inline Coverage block otherwise.
type QuoteRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id"`
	Coverage   *CoverageRequest  `json:"coverage"`
	Lines      []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RecordSaleRequest finalizes a cart into a sale
type RecordSaleRequest struct {
	CustomerID  *uuid.UUID        `json:"customer_id"`
	SaleNumber  string            `json:"sale_number"`
	PaymentMode string            `json:"payment_mode" binding:"required"`
	Lines       []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PricingResponse is the API shape of a pricing breakdown
type PricingResponse struct {
	TotalExTax             decimal.Decimal `json:"total_ex_tax"`
	TotalTax               decimal.Decimal `json:"total_tax"`
	TotalSurcharge         decimal.Decimal `json:"total_surcharge"`
	SubtotalTaxIncl        decimal.Decimal `json:"subtotal_tax_incl"`
	Insured                bool            `json:"insured"`
	CoverageRate           decimal.Decimal `json:"coverage_rate"`
	InsurerShare           decimal.Decimal `json:"insurer_share"`
	CustomerShare          decimal.Decimal `json:"customer_share"`
	TicketModerateurRate   decimal.Decimal `json:"ticket_moderateur_rate"`
	TicketModerateurAmount decimal.Decimal `json:"ticket_moderateur_amount"`
	DiscountRate           decimal.Decimal `json:"discount_rate"`
	DiscountAmount         decimal.Decimal `json:"discount_amount"`
	FinalPayable           decimal.Decimal `json:"final_payable"`
	DepositAvailable       decimal.Decimal `json:"deposit_available"`
	DepositUsable          bool            `json:"deposit_usable"`
	CanPayFromDeposit      bool            `json:"can_pay_from_deposit"`
	CanUseVoucher          bool            `json:"can_use_voucher"`
}

// ToPricingResponse converts a pricing result to the API response shape
func ToPricingResponse(pricing sales.PricingResult) PricingResponse {
	return PricingResponse{
		TotalExTax:             pricing.TotalExTax,
		TotalTax:               pricing.TotalTax,
		TotalSurcharge:         pricing.TotalSurcharge,
		SubtotalTaxIncl:        pricing.SubtotalTaxIncl,
		Insured:                pricing.Insured,
		CoverageRate:           pricing.CoverageRate,
		InsurerShare:           pricing.InsurerShare,
		CustomerShare:          pricing.CustomerShare,
		TicketModerateurRate:   pricing.TicketModerateurRate,
		TicketModerateurAmount: pricing.TicketModerateurAmount,
		DiscountRate:           pricing.DiscountRate,
		DiscountAmount:         pricing.DiscountAmount,
		FinalPayable:           pricing.FinalPayable,
		DepositAvailable:       pricing.DepositAvailable,
		DepositUsable:          pricing.DepositUsable,
		CanPayFromDeposit:      pricing.CanPayFromDeposit,
		CanUseVoucher:          pricing.CanUseVoucher,
	}
}

// SaleLineResponse is one line of a recorded sale in API responses
type SaleLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	PriceExTax  decimal.Decimal `json:"price_ex_tax"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse is a recorded sale in API responses
type SaleResponse struct {
	ID              uuid.UUID          `json:"id"`
	SaleNumber      string             `json:"sale_number"`
	CustomerID      *uuid.UUID         `json:"customer_id,omitempty"`
	InsurerID       *uuid.UUID         `json:"insurer_id,omitempty"`
	SubtotalTaxIncl decimal.Decimal    `json:"subtotal_tax_incl"`
	InsurerShare    decimal.Decimal    `json:"insurer_share"`
	CustomerShare   decimal.Decimal    `json:"customer_share"`
	FinalPayable    decimal.Decimal    `json:"final_payable"`
	PaymentMode     string             `json:"payment_mode"`
	Lines           []SaleLineResponse `json:"lines"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ToSaleResponse converts a sale to the API response shape
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		lines = append(lines, SaleLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceExTax:  line.PriceExTax,
			LineTotal:   line.LineTotal,
		})
	}
	return SaleResponse{
		ID:              sale.ID,
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		InsurerID:       sale.InsurerID,
		SubtotalTaxIncl: sale.SubtotalTaxIncl,
		InsurerShare:    sale.InsurerShare,
		CustomerShare:   sale.CustomerShare,
		FinalPayable:    sale.FinalPayable,
		PaymentMode:     sale.PaymentMode.String(),
		Lines:           lines,
		CreatedAt:       sale.CreatedAt,
	}
}

// ListSalesQuery carries pagination for sale listings
type ListSalesQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
