package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles expense bookkeeping requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Categories returns the fixed expense category list
func (h *ExpenseHandler) Categories(c *gin.Context) {
	response.OK(c, "Expense categories retrieved successfully", h.expenseService.Categories())
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var req request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), service.ExpenseListQuery{
		Search:   req.Search,
		Category: enum.ExpenseCategory(req.Category),
		Month:    req.Month,
		Year:     req.Year,
	}, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Expenses retrieved successfully", result)
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), expenseInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "expense")
	if !ok {
		return
	}

	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, expenseInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}

func expenseInput(c *gin.Context, req *request.ExpenseRequest) *service.ExpenseInput {
	return &service.ExpenseInput{
		Category:        enum.ExpenseCategory(req.Category),
		Description:     req.Description,
		Amount:          req.Amount,
		Date:            req.ParsedDate(),
		TransactionCode: req.TransactionCode,
		ActorID:         actorID(c),
	}
}
