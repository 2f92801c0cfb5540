package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splitly/internal/models/request_models"
	"splitly/internal/services"
	"splitly/pkg/utils"
)

type ExpenseController struct {
	expenseService    services.ExpenseServiceInterface
	settlementService services.SettlementServiceInterface
}

func NewExpenseController(
	expenseService services.ExpenseServiceInterface,
	settlementService services.SettlementServiceInterface,
) *ExpenseController {
	return &ExpenseController{
		expenseService:    expenseService,
		settlementService: settlementService,
	}
}

// CreateExpense godoc
// @Summary Create an expense
// @Description Create an individual or group expense with split participants
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body request_models.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses [post]
func (e *ExpenseController) CreateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	expense, err := e.expenseService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"expense": expense}, "Expense created successfully")
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Partial edit; shares are re-validated against the amount
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense id"
// @Param request body request_models.UpdateExpenseRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (e *ExpenseController) UpdateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	expense, err := e.expenseService.UpdateExpense(c.Request.Context(), userID, expenseID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"expense": expense}, "Expense updated successfully")
}

// ListExpenses godoc
// @Summary List the caller's expenses with a summary
// @Tags Expenses
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses [get]
func (e *ExpenseController) ListExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := e.expenseService.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

// GetExpense godoc
// @Summary Get a single expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (e *ExpenseController) GetExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	expense, err := e.expenseService.GetExpense(c.Request.Context(), userID, expenseID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"expense": expense}, "")
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (e *ExpenseController) DeleteExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := e.expenseService.DeleteExpense(c.Request.Context(), userID, expenseID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Expense deleted successfully")
}

// SettleExpense godoc
// @Summary Settle a participant's share
// @Description Marks the share paid and records the founder fee atomically
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense id"
// @Param request body request_models.SettleExpenseRequest true "Settle payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses/{id}/settle [post]
func (e *ExpenseController) SettleExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.SettleExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid participantId")
		return
	}

	resp, err := e.settlementService.Settle(c.Request.Context(), expenseID, participantID, userID, req.Amount)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Payment settled successfully")
}
