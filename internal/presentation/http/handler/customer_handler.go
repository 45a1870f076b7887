package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers, optionally matching name, phone or email
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Customers retrieved successfully", result)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// History returns a customer with their orders and visit analytics
func (h *CustomerHandler) History(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	history, err := h.customerService.GetHistory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer history retrieved successfully", history)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

func customerInput(req *request.CustomerRequest) *service.CustomerInput {
	return &service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}
