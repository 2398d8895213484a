package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/partner"
	"github.com/pharma/backend/internal/domain/sales"
	"github.com/pharma/backend/internal/domain/shared"
)

// SaleService prices carts and records finalized sales. Quoting is a pure
// read; recording runs inside a transaction scope so stock deduction, the
// movement journal, the deposit debit and the sale row commit together.
type SaleService struct {
	customerRepo partner.CustomerRepository
	saleRepo     sales.SaleRepository
	txScope      TransactionScope
}

// NewSaleService creates a new SaleService
func NewSaleService(customerRepo partner.CustomerRepository, saleRepo sales.SaleRepository, txScope TransactionScope) *SaleService {
	return &SaleService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		txScope:      txScope,
	}
}

// QuoteCart prices a cart without recording anything. A stored customer's
// coverage wins over an inline coverage block; with neither the cart is
// priced as a walk-in.
func (s *SaleService) QuoteCart(ctx context.Context, tenantID uuid.UUID, req QuoteRequest) (sales.PricingResult, error) {
	var coverage sales.CustomerCoverage
	switch {
	case req.CustomerID != nil:
		resolved, _, err := s.resolveCoverage(ctx, s.customerRepo, tenantID, req.CustomerID)
		if err != nil {
			return sales.PricingResult{}, err
		}
		coverage = resolved
	case req.Coverage != nil:
		coverage = req.Coverage.ToCoverage()
	}
	return sales.ComputePricing(toCart(req.Lines), coverage), nil
}

// RecordSale finalizes a cart into a sale. It re-prices the cart, deducts
// stock from the oldest open lots first, journals the outbound movements,
// debits the customer's deposit for deposit payments and persists the sale,
// all within one transaction.
func (s *SaleService) RecordSale(ctx context.Context, tenantID uuid.UUID, req RecordSaleRequest) (*sales.Sale, error) {
	mode := sales.PaymentMode(req.PaymentMode)
	cart := toCart(req.Lines)

	saleNumber := req.SaleNumber
	if saleNumber == "" {
		count, err := s.saleRepo.CountForTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		saleNumber = fmt.Sprintf("SALE-%06d", count+1)
	}

	var sale *sales.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		coverage, customer, err := s.resolveCoverage(ctx, repos.CustomerRepo(), tenantID, req.CustomerID)
		if err != nil {
			return err
		}

		pricing := sales.ComputePricing(cart, coverage)

		var insurerID *uuid.UUID
		if pricing.Insured {
			insurerID = coverage.InsurerID
		}

		sale, err = sales.NewSale(tenantID, saleNumber, req.CustomerID, insurerID, cart, pricing, mode)
		if err != nil {
			return err
		}

		for _, line := range cart {
			if err := deductFromLots(ctx, repos, tenantID, line, saleNumber); err != nil {
				return err
			}
		}

		if mode == sales.PaymentModeDeposit && pricing.FinalPayable.IsPositive() {
			if err := customer.DebitDeposit(pricing.FinalPayable); err != nil {
				return err
			}
			if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
				return err
			}
		}

		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// resolveCoverage loads the customer's coverage profile. A nil customer ID
// yields an empty coverage and a nil customer.
func (s *SaleService) resolveCoverage(ctx context.Context, repo partner.CustomerRepository, tenantID uuid.UUID, customerID *uuid.UUID) (sales.CustomerCoverage, *partner.Customer, error) {
	if customerID == nil {
		return sales.CustomerCoverage{}, nil, nil
	}
	customer, err := repo.FindByIDForTenant(ctx, tenantID, *customerID)
	if err != nil {
		return sales.CustomerCoverage{}, nil, err
	}
	return customer.Coverage(), customer, nil
}

// deductFromLots consumes a line's quantity from the product's open lots,
// oldest receipt first, journaling one outbound movement per touched lot at
// that lot's own cost.
func deductFromLots(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, line sales.CartLine, reference string) error {
	lots, err := repos.LotRepo().FindAvailableByProduct(ctx, tenantID, line.ProductID)
	if err != nil {
		return err
	}

	remaining := line.Quantity
	for i := range lots {
		if !remaining.IsPositive() {
			break
		}
		lot := &lots[i]
		deducted := lot.Deduct(remaining)
		remaining = remaining.Sub(deducted)

		if err := repos.LotRepo().Save(ctx, lot); err != nil {
			return err
		}

		lotID := lot.ID
		movement, err := inventory.NewStockMovement(tenantID, line.ProductID, &lotID, inventory.MovementDirectionOut, deducted, lot.UnitCost, reference)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}
	}

	if remaining.IsPositive() {
		return fmt.Errorf("%w: product %s short by %s", shared.ErrInsufficientStock, line.ProductID, remaining)
	}
	return nil
}

// GetSale returns a sale by ID
func (s *SaleService) GetSale(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	return s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
}

// ListSales returns a page of the tenant's sales
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, query ListSalesQuery) (shared.Paginated[sales.Sale], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.OrderBy != "" {
		filter.OrderBy = query.OrderBy
	}
	if query.OrderDir != "" {
		filter.OrderDir = query.OrderDir
	}

	items, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[sales.Sale]{}, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return shared.Paginated[sales.Sale]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

func toCart(lines []CartLineRequest) []sales.CartLine {
	cart := make([]sales.CartLine, 0, len(lines))
	for _, line := range lines {
		cart = append(cart, line.ToCartLine())
	}
	return cart
}
