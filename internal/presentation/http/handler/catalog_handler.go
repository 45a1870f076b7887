package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles the laundry service price catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListActive returns the services offered to customers, as a plain list
func (h *CatalogHandler) ListActive(c *gin.Context) {
	services, err := h.catalogService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// ListAll returns every service, including disabled ones
func (h *CatalogHandler) ListAll(c *gin.Context) {
	services, err := h.catalogService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// Create handles creating a service
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), serviceInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// Update handles updating a service
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}

	var req request.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, serviceInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// Toggle flips whether a service is offered
func (h *CatalogHandler) Toggle(c *gin.Context) {
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}

	svc, err := h.catalogService.ToggleService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Service disabled successfully"
	if svc.IsActive {
		message = "Service enabled successfully"
	}
	response.OK(c, message, svc)
}

func serviceInput(req *request.ServiceRequest) *service.ServiceInput {
	return &service.ServiceInput{
		DisplayName:    req.DisplayName,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		PricePerItem:   req.PricePerItem,
		PricePerKg:     req.PricePerKg,
		RequiresWeight: req.RequiresWeight,
		RequiresItems:  req.RequiresItems,
		IsActive:       req.IsActive,
	}
}
