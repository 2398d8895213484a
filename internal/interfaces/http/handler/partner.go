package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/pharma/backend/internal/application/partner"
	"github.com/pharma/backend/internal/domain/shared"
)

// PartnerHandler handles customer and insurer API endpoints
type PartnerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(customerService *partnerapp.CustomerService) *PartnerHandler {
	return &PartnerHandler{customerService: customerService}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("/:id/insurer", h.AssignInsurer)
		customers.POST("/:id/deposit", h.CreditDeposit)
	}

	insurers := rg.Group("/insurers")
	{
		insurers.POST("", h.CreateInsurer)
		insurers.GET("", h.ListInsurers)
	}
}

// CreateCustomer registers a new customer
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, partnerapp.ToCustomerResponse(customer))
}

// GetCustomer returns a customer by ID
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, partnerapp.ToCustomerResponse(customer))
}

// ListCustomers returns the tenant's customers
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context(), getTenantID(c), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]partnerapp.CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, partnerapp.ToCustomerResponse(&customers[i]))
	}
	h.Success(c, responses)
}

// AssignInsurer links a customer to an insurer
func (h *PartnerHandler) AssignInsurer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req partnerapp.AssignInsurerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.AssignInsurer(c.Request.Context(), getTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, partnerapp.ToCustomerResponse(customer))
}

// CreditDeposit adds funds to a customer's deposit
func (h *PartnerHandler) CreditDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req partnerapp.CreditDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreditDeposit(c.Request.Context(), getTenantID(c), id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, partnerapp.ToCustomerResponse(customer))
}

// CreateInsurer registers a new insurer
func (h *PartnerHandler) CreateInsurer(c *gin.Context) {
	var req partnerapp.CreateInsurerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	insurer, err := h.customerService.CreateInsurer(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, partnerapp.ToInsurerResponse(insurer))
}

// ListInsurers returns the tenant's insurers
func (h *PartnerHandler) ListInsurers(c *gin.Context) {
	insurers, err := h.customerService.ListInsurers(c.Request.Context(), getTenantID(c), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]partnerapp.InsurerResponse, 0, len(insurers))
	for i := range insurers {
		responses = append(responses, partnerapp.ToInsurerResponse(&insurers[i]))
	}
	h.Success(c, responses)
}
