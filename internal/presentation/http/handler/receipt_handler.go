package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt generation and download
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Generate renders a receipt for a customer's orders on one date.
// With ?async=true it answers 202 with the queued job instead of waiting.
func (h *ReceiptHandler) Generate(c *gin.Context) {
	var req request.GenerateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	date, err := req.Date()
	if err != nil {
		response.BadRequest(c, "Invalid order date")
		return
	}
	async, _ := strconv.ParseBool(c.Query("async"))

	output, err := h.receiptService.Generate(c.Request.Context(), req.CustomerID, date, async)
	if err != nil {
		response.Error(c, err)
		return
	}

	if output.Job != nil {
		response.Accepted(c, "Receipt generation queued", output.Job)
		return
	}
	response.OK(c, "Receipt generated successfully", output.File)
}

// Job reports the state of a queued receipt
func (h *ReceiptHandler) Job(c *gin.Context) {
	id, ok := paramID(c, "id", "job")
	if !ok {
		return
	}

	job, err := h.receiptService.Job(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt job retrieved successfully", job)
}

// Download streams a generated receipt PDF
func (h *ReceiptHandler) Download(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.receiptService.Open(filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, filename)
}

// History lists the dates a customer has receipt-able orders on
func (h *ReceiptHandler) History(c *gin.Context) {
	id, ok := paramID(c, "customer_id", "customer")
	if !ok {
		return
	}

	entries, err := h.receiptService.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt history retrieved successfully", entries)
}
