package models

import "time"

// SalesSummary is the derived rollup for one till over a closed time window.
// It is recomputed on every query and never persisted.
type SalesSummary struct {
	TillID             string    `json:"tillId"`
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	TotalIssued        int       `json:"totalIssued"`
	TotalValid         int       `json:"totalValid"`
	TotalVoided        int       `json:"totalVoided"`
	VoidedAmount       float64   `json:"voidedAmount"`
	WinnersUnpaidCount int       `json:"winnersUnpaidCount"`
	WinnersTotalCount  int       `json:"winnersTotalCount"`
	GrossSales         float64   `json:"grossSales"`
	PrizesPaid         float64   `json:"prizesPaid"`
	CommissionRate     float64   `json:"commissionRate"`
	Commission         float64   `json:"commission"`
	NetPayable         float64   `json:"netPayable"`
}
