package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/labakery/backend/internal/application/finance"
	"github.com/labakery/backend/internal/interfaces/http/dto"
)

// ExpenseHandler handles expense bookkeeping endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List returns a page of expenses.
// GET /api/admin/expenses?category=&from=&to=&page=&pageSize=
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err, "fetch expenses")
		return
	}

	page, err := h.expenseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err, "fetch expenses")
		return
	}
	h.Success(c, page)
}

// GetByID returns one expense.
// GET /api/admin/expenses/:id
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err, "fetch expense")
		return
	}
	h.Success(c, expense)
}

// Create records an expense.
// POST /api/admin/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "create expense")
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "create expense")
		return
	}
	h.Success(c, expense)
}

// Update patches an expense.
// PATCH /api/admin/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "expense")
	if !ok {
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "update expense")
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err, "update expense")
		return
	}
	h.Success(c, expense)
}

// Delete removes an expense.
// DELETE /api/admin/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "expense")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err, "delete expense")
		return
	}
	h.Success(c, dto.DeletedResponse{ID: id.String(), Deleted: true})
}
