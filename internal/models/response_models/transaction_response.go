package response_models

import "splitly/internal/repositories"

type RevenueStats struct {
	TotalRevenue     float64                   `json:"totalRevenue"`
	TransactionCount int64                     `json:"transactionCount"`
	ByCurrency       []repositories.RevenueRow `json:"byCurrency"`
}

type SubscribeResponse struct {
	Message string `json:"message"`
	Trial   bool   `json:"trial"`
	Country string `json:"country"`
	Plan    string `json:"plan"`
}
