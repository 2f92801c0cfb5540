package controllers

import (
	"github.com/gin-gonic/gin"

	"splitly/internal/services"
	"splitly/pkg/utils"
)

type TransactionController struct {
	transactionService services.TransactionServiceInterface
}

func NewTransactionController(transactionService services.TransactionServiceInterface) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// Revenue godoc
// @Summary Founder revenue summary
// @Description Fee totals per currency over the current month or year
// @Tags Transactions
// @Produce json
// @Param period query string false "month or year" default(month)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/revenue [get]
func (t *TransactionController) Revenue(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	stats, err := t.transactionService.Revenue(c.Request.Context(), period)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"revenue": stats}, "")
}

// History godoc
// @Summary The caller's transaction history
// @Description Latest 50 transactions, newest first
// @Tags Transactions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/history [get]
func (t *TransactionController) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	txns, err := t.transactionService.History(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"transactions": txns}, "")
}
