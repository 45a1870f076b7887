package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	filter := repository.OrderFilter{
		Search:        req.Search,
		Status:        enum.OrderStatus(req.Status),
		PaymentStatus: enum.PaymentStatus(req.PaymentStatus),
		Date:          req.OnDate(),
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Orders retrieved successfully", result)
}

// Get handles getting a single order with its customer
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Quote prices an order without saving it
func (h *OrderHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quote, err := h.orderService.Quote(c.Request.Context(), quoteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote calculated successfully", quote)
}

// Create handles creating an order. Prices are always computed server-side.
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), orderInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Update handles replacing an order's fields
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, orderInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// UpdateStatus moves an order along the wash workflow
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	var req request.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, enum.OrderStatus(req.Status), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// Delete handles deleting an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

func quoteInput(req *request.QuoteRequest) *service.QuoteInput {
	return &service.QuoteInput{
		ServiceID: req.ServiceID,
		Weight:    req.Weight,
		Items:     req.Items,
		Subtotal:  req.Subtotal,
		Discount:  req.Discount,
	}
}

func orderInput(c *gin.Context, req *request.OrderRequest) *service.OrderInput {
	return &service.OrderInput{
		QuoteInput:      *quoteInput(&req.QuoteRequest),
		CustomerID:      req.CustomerID,
		ServiceType:     req.ServiceType,
		OrderDate:       req.Date(),
		DiscountReason:  req.DiscountReason,
		PaymentStatus:   enum.PaymentStatus(req.PaymentStatus),
		Status:          enum.OrderStatus(req.Status),
		TransactionCode: req.TransactionCode,
		Notes:           req.Notes,
		ActorID:         actorID(c),
	}
}
