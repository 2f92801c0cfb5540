package response_models

import "splitly/internal/models/db_models"

type FeeBreakdown struct {
	SettlementAmount float64 `json:"settlementAmount"`
	FounderFee       float64 `json:"founderFee"`
	NetToPayee       float64 `json:"netToPayee"`
	FeePercentage    string  `json:"feePercentage"`
}

type SettleExpenseResponse struct {
	Expense      *db_models.Expense `json:"expense"`
	FeeBreakdown FeeBreakdown       `json:"feeBreakdown"`
}

type ExpenseSummary struct {
	TotalExpenses   float64            `json:"totalExpenses"`
	TotalCount      int                `json:"totalCount"`
	CategorySummary map[string]float64 `json:"categorySummary"`
}

type ExpenseListResponse struct {
	Expenses []db_models.Expense `json:"expenses"`
	Summary  ExpenseSummary      `json:"summary"`
}
